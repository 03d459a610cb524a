package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/recipe-planner/internal/config"
	"github.com/vladimiradmaev/recipe-planner/internal/database/migrations"
	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	"github.com/vladimiradmaev/recipe-planner/internal/logger"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type User struct {
	ID        string `gorm:"primaryKey;type:text"`
	Plan      string `gorm:"type:text;not null;default:free"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Recipe struct {
	ID                uuid.UUID                                  `gorm:"type:uuid;primaryKey"`
	Title             string                                     `gorm:"not null"`
	Description       string                                     `gorm:"type:text"`
	Steps             datatypes.JSONSlice[string]                `gorm:"type:jsonb"`
	Images            datatypes.JSONSlice[string]                `gorm:"type:jsonb"`
	Ingredients       datatypes.JSONSlice[domain.IngredientItem] `gorm:"type:jsonb"`
	Servings          int                                        `gorm:"not null"`
	TotalTimeMinutes  *int
	Nutrition         datatypes.JSON `gorm:"type:jsonb"`
	CostEstimateCents *int64
	DietTags          datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Approved          bool                        `gorm:"not null;index"`
	AuthorID          *string                     `gorm:"type:text;index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Product struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Store      string    `gorm:"not null;uniqueIndex:idx_products_store_name"`
	Name       string    `gorm:"not null;uniqueIndex:idx_products_store_name"`
	Unit       string    `gorm:"not null"`
	SizeValue  float64   `gorm:"not null"`
	SizeUnit   string    `gorm:"not null"`
	PriceCents int64     `gorm:"not null"`
	UpdatedAt  time.Time
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type UserPreference struct {
	UserID      string                      `gorm:"primaryKey;type:text"`
	DietTags    datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	BudgetCents *int64
	UpdatedAt   time.Time
}

type CookHistory struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   string    `gorm:"type:text;not null;index:idx_cook_histories_user_cooked"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null"`
	CookedAt time.Time `gorm:"not null;index:idx_cook_histories_user_cooked"`
}

func (h *CookHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

type PlannedMeal struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   string    `gorm:"type:text;not null;index:idx_planned_meals_user_date"`
	Date     time.Time `gorm:"type:date;not null;index:idx_planned_meals_user_date"`
	Slot     string    `gorm:"type:text;not null"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null"`
	Servings *int
}

func (m *PlannedMeal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type Favorite struct {
	UserID    string    `gorm:"primaryKey;type:text"`
	RecipeID  uuid.UUID `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time
}

type Rating struct {
	UserID    string    `gorm:"primaryKey;type:text"`
	RecipeID  uuid.UUID `gorm:"primaryKey;type:uuid;index"`
	Score     int       `gorm:"not null"`
	UpdatedAt time.Time
}

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:text;not null"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Body      string    `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Models lists every table owned by AutoMigrate
func Models() []any {
	return []any{
		&User{}, &Recipe{}, &Product{}, &UserPreference{}, &CookHistory{},
		&PlannedMeal{}, &Favorite{}, &Rating{}, &Comment{},
	}
}

// slogWriter routes gorm's logger output into slog
type slogWriter struct {
	log *slog.Logger
}

func (w slogWriter) Printf(format string, args ...interface{}) {
	w.log.Warn(fmt.Sprintf(format, args...), "component", "gorm")
}

func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	return Open(postgres.Open(cfg.DSN()))
}

// Open connects through dialector and brings the schema up to date
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(slogWriter{log: logger.GetLogger()}, gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Tables first, then the SQL migrations that add constraints on top of them
	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	if err := migrations.LoadSQLMigrations(); err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database connection established and migrations completed")
	return db, nil
}
