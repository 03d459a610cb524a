package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vladimiradmaev/recipe-planner/internal/database"
	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetPreferences returns the preferences row of a user, if one exists
func (s *Store) GetPreferences(ctx context.Context, userID string) (domain.UserPreferences, bool, error) {
	var model database.UserPreference
	if err := s.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserPreferences{}, false, nil
		}
		return domain.UserPreferences{}, false, err
	}
	return domain.UserPreferences{
		UserID:      model.UserID,
		DietTags:    nonNil([]string(model.DietTags)),
		BudgetCents: model.BudgetCents,
		UpdatedAt:   model.UpdatedAt,
	}, true, nil
}

// UpsertPreferences inserts or overwrites the preferences row of a user
func (s *Store) UpsertPreferences(ctx context.Context, prefs domain.UserPreferences) error {
	model := database.UserPreference{
		UserID:      prefs.UserID,
		DietTags:    nonNil(domain.NormalizeDietTags(prefs.DietTags)),
		BudgetCents: prefs.BudgetCents,
		UpdatedAt:   time.Now().UTC(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"diet_tags", "budget_cents", "updated_at"}),
	}).Create(&model).Error
}
