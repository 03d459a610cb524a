package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/recipe-planner/internal/database"
	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	"gorm.io/gorm"
)

// batchSize bounds the rows per INSERT statement in bulk writes
const batchSize = 100

// Store implements domain.Store on top of GORM and Postgres
type Store struct {
	db *gorm.DB
}

var _ domain.Store = (*Store)(nil)

// New wraps an opened and migrated database
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying GORM database instance
func (s *Store) DB() *gorm.DB {
	return s.db
}

// translate maps driver-level constraint errors onto domain errors
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domain.ErrUnknownRecipe
	}
	return err
}

func parseID(id string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, false
	}
	return parsed, true
}

func parseIDs(ids []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if parsed, ok := parseID(id); ok {
			out = append(out, parsed)
		}
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func recipeToModel(r domain.Recipe) (database.Recipe, error) {
	id, _ := parseID(r.ID)
	m := database.Recipe{
		ID:                id,
		Title:             r.Title,
		Description:       r.Description,
		Steps:             nonNil(r.Steps),
		Images:            nonNil(r.Images),
		Ingredients:       nonNil(r.Ingredients),
		Servings:          r.Servings,
		TotalTimeMinutes:  r.TotalTimeMinutes,
		CostEstimateCents: r.CostEstimateCents,
		DietTags:          nonNil(domain.NormalizeDietTags(r.DietTags)),
		Approved:          r.Approved,
		AuthorID:          r.AuthorID,
	}
	if r.Nutrition != nil {
		raw, err := json.Marshal(r.Nutrition)
		if err != nil {
			return database.Recipe{}, fmt.Errorf("encode nutrition: %w", err)
		}
		m.Nutrition = raw
	}
	return m, nil
}

func recipeFromModel(m database.Recipe) domain.Recipe {
	r := domain.Recipe{
		ID:                m.ID.String(),
		Title:             m.Title,
		Description:       m.Description,
		Steps:             nonNil([]string(m.Steps)),
		Images:            nonNil([]string(m.Images)),
		Ingredients:       nonNil([]domain.IngredientItem(m.Ingredients)),
		Servings:          m.Servings,
		TotalTimeMinutes:  m.TotalTimeMinutes,
		CostEstimateCents: m.CostEstimateCents,
		DietTags:          nonNil([]string(m.DietTags)),
		Approved:          m.Approved,
		AuthorID:          m.AuthorID,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if len(m.Nutrition) > 0 && string(m.Nutrition) != "null" {
		var n domain.Nutrition
		if err := json.Unmarshal(m.Nutrition, &n); err == nil {
			r.Nutrition = &n
		}
	}
	return r
}

func recipesFromModels(models []database.Recipe) []domain.Recipe {
	out := make([]domain.Recipe, 0, len(models))
	for _, m := range models {
		out = append(out, recipeFromModel(m))
	}
	return out
}

func productFromModel(m database.Product) domain.Product {
	return domain.Product{
		ID:         m.ID.String(),
		Store:      m.Store,
		Name:       m.Name,
		Unit:       m.Unit,
		SizeValue:  m.SizeValue,
		SizeUnit:   m.SizeUnit,
		PriceCents: m.PriceCents,
		UpdatedAt:  m.UpdatedAt,
	}
}

func plannedMealFromModel(m database.PlannedMeal) domain.PlannedMeal {
	return domain.PlannedMeal{
		ID:       m.ID.String(),
		UserID:   m.UserID,
		Date:     m.Date.UTC(),
		Slot:     domain.MealSlot(m.Slot),
		RecipeID: m.RecipeID.String(),
		Servings: m.Servings,
	}
}

func commentFromModel(m database.Comment) domain.Comment {
	return domain.Comment{
		ID:        m.ID.String(),
		UserID:    m.UserID,
		RecipeID:  m.RecipeID.String(),
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}
