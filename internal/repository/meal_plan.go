package repository

import (
	"context"

	"github.com/vladimiradmaev/recipe-planner/internal/database"
	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	"github.com/vladimiradmaev/recipe-planner/internal/utils"
	"gorm.io/gorm"
)

// ReplaceRange deletes the user's planned meals in r and inserts meals, in one transaction.
// Any failure, including a foreign key violation on recipe_id, rolls back the delete too.
func (s *Store) ReplaceRange(ctx context.Context, userID string, r domain.DateRange, meals []domain.PlannedMeal) error {
	models := make([]database.PlannedMeal, 0, len(meals))
	for _, m := range meals {
		rid, ok := parseID(m.RecipeID)
		if !ok {
			return domain.ErrUnknownRecipe
		}
		models = append(models, database.PlannedMeal{
			UserID:   userID,
			Date:     utils.CalendarDate(m.Date),
			Slot:     string(m.Slot),
			RecipeID: rid,
			Servings: m.Servings,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND date BETWEEN ?::date AND ?::date", userID, utils.FormatDate(r.Start), utils.FormatDate(r.End)).
			Delete(&database.PlannedMeal{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.CreateInBatches(&models, batchSize).Error
	})
	return translate(err)
}

// ListRange returns the user's planned meals in r ordered by date then slot
func (s *Store) ListRange(ctx context.Context, userID string, r domain.DateRange) ([]domain.PlannedMeal, error) {
	var models []database.PlannedMeal
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ?::date AND ?::date", userID, utils.FormatDate(r.Start), utils.FormatDate(r.End)).
		Order("date, slot, id").
		Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.PlannedMeal, 0, len(models))
	for _, m := range models {
		out = append(out, plannedMealFromModel(m))
	}
	return out, nil
}
