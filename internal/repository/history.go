package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/recipe-planner/internal/database"
	"github.com/vladimiradmaev/recipe-planner/internal/domain"
)

// AddCookHistory appends an entry to the cook log
func (s *Store) AddCookHistory(ctx context.Context, entry domain.CookHistoryEntry) error {
	rid, ok := parseID(entry.RecipeID)
	if !ok {
		return domain.ErrUnknownRecipe
	}
	model := database.CookHistory{
		UserID:   entry.UserID,
		RecipeID: rid,
		CookedAt: entry.CookedAt.UTC(),
	}
	return translate(s.db.WithContext(ctx).Create(&model).Error)
}

// RecentRecipeIDs returns the distinct recipes a user cooked at or after since
func (s *Store) RecentRecipeIDs(ctx context.Context, userID string, since time.Time) ([]string, error) {
	var ids []uuid.UUID
	if err := s.db.WithContext(ctx).
		Model(&database.CookHistory{}).
		Where("user_id = ? AND cooked_at >= ?", userID, since.UTC()).
		Distinct("recipe_id").
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out, nil
}
