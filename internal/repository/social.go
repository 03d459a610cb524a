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

// AddFavorite saves a recipe for a user; saving twice is a no-op
func (s *Store) AddFavorite(ctx context.Context, userID, recipeID string) error {
	rid, ok := parseID(recipeID)
	if !ok {
		return domain.ErrUnknownRecipe
	}
	model := database.Favorite{UserID: userID, RecipeID: rid, CreatedAt: time.Now().UTC()}
	return translate(s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model).Error)
}

// RemoveFavorite drops a saved recipe; removing a missing favorite is not an error
func (s *Store) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	rid, ok := parseID(recipeID)
	if !ok {
		return nil
	}
	return s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, rid).
		Delete(&database.Favorite{}).Error
}

// ListFavorites returns a user's saved recipes, most recently saved first
func (s *Store) ListFavorites(ctx context.Context, userID string) ([]domain.Recipe, error) {
	var models []database.Recipe
	if err := s.db.WithContext(ctx).
		Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	return recipesFromModels(models), nil
}

// UpsertRating stores a user's score for a recipe, replacing any earlier score
func (s *Store) UpsertRating(ctx context.Context, rating domain.Rating) error {
	rid, ok := parseID(rating.RecipeID)
	if !ok {
		return domain.ErrUnknownRecipe
	}
	model := database.Rating{
		UserID:    rating.UserID,
		RecipeID:  rid,
		Score:     rating.Score,
		UpdatedAt: time.Now().UTC(),
	}
	return translate(s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
	}).Create(&model).Error)
}

// GetRating returns a user's own score for a recipe
func (s *Store) GetRating(ctx context.Context, userID, recipeID string) (domain.Rating, bool, error) {
	rid, ok := parseID(recipeID)
	if !ok {
		return domain.Rating{}, false, nil
	}
	var model database.Rating
	if err := s.db.WithContext(ctx).
		First(&model, "user_id = ? AND recipe_id = ?", userID, rid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Rating{}, false, nil
		}
		return domain.Rating{}, false, err
	}
	return domain.Rating{
		UserID:    model.UserID,
		RecipeID:  model.RecipeID.String(),
		Score:     model.Score,
		UpdatedAt: model.UpdatedAt,
	}, true, nil
}

// RatingSummary aggregates the scores of a recipe
func (s *Store) RatingSummary(ctx context.Context, recipeID string) (domain.RatingSummary, error) {
	summary := domain.RatingSummary{RecipeID: recipeID}
	rid, ok := parseID(recipeID)
	if !ok {
		return summary, nil
	}
	var row struct {
		Average float64
		Count   int64
	}
	if err := s.db.WithContext(ctx).
		Model(&database.Rating{}).
		Select("COALESCE(AVG(score), 0) AS average, COUNT(*) AS count").
		Where("recipe_id = ?", rid).
		Scan(&row).Error; err != nil {
		return summary, err
	}
	summary.Average = row.Average
	summary.Count = row.Count
	return summary, nil
}

// AddComment inserts comment and fills in its generated ID
func (s *Store) AddComment(ctx context.Context, comment *domain.Comment) error {
	rid, ok := parseID(comment.RecipeID)
	if !ok {
		return domain.ErrUnknownRecipe
	}
	model := database.Comment{
		UserID:   comment.UserID,
		RecipeID: rid,
		Body:     comment.Body,
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return translate(err)
	}
	*comment = commentFromModel(model)
	return nil
}

// ListComments returns the newest comments on a recipe
func (s *Store) ListComments(ctx context.Context, recipeID string, limit int) ([]domain.Comment, error) {
	rid, ok := parseID(recipeID)
	if !ok {
		return []domain.Comment{}, nil
	}
	var models []database.Comment
	q := s.db.WithContext(ctx).Where("recipe_id = ?", rid).Order("created_at DESC, id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Comment, 0, len(models))
	for _, m := range models {
		out = append(out, commentFromModel(m))
	}
	return out, nil
}
