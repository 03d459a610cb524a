package repository

import (
	"context"
	"errors"

	"github.com/vladimiradmaev/recipe-planner/internal/database"
	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	"gorm.io/gorm"
)

// CreateRecipe inserts recipe and fills in its generated ID and timestamps
func (s *Store) CreateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	model, err := recipeToModel(*recipe)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	*recipe = recipeFromModel(model)
	return nil
}

// GetRecipe returns a recipe by ID; malformed IDs are reported as not found
func (s *Store) GetRecipe(ctx context.Context, id string) (domain.Recipe, bool, error) {
	rid, ok := parseID(id)
	if !ok {
		return domain.Recipe{}, false, nil
	}
	var model database.Recipe
	if err := s.db.WithContext(ctx).First(&model, "id = ?", rid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Recipe{}, false, nil
		}
		return domain.Recipe{}, false, err
	}
	return recipeFromModel(model), true, nil
}

// ListApprovedRecipes pages through approved recipes, newest first
func (s *Store) ListApprovedRecipes(ctx context.Context, offset, limit int) ([]domain.Recipe, error) {
	var models []database.Recipe
	if err := s.db.WithContext(ctx).
		Where("approved = ?", true).
		Order("created_at DESC, id").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}
	return recipesFromModels(models), nil
}

// ListCandidates returns approved recipes matching filter in random order
func (s *Store) ListCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.Recipe, error) {
	q := s.db.WithContext(ctx).Model(&database.Recipe{}).Where("approved = ?", true)

	if len(filter.DietTags) > 0 {
		q = q.Where(
			"EXISTS (SELECT 1 FROM jsonb_array_elements_text(recipes.diet_tags) AS t(tag) WHERE t.tag IN ?)",
			filter.DietTags,
		)
	}
	if excluded := parseIDs(filter.ExcludeIDs); len(excluded) > 0 {
		q = q.Where("id NOT IN ?", excluded)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var models []database.Recipe
	if err := q.Order("RANDOM()").Find(&models).Error; err != nil {
		return nil, err
	}
	return recipesFromModels(models), nil
}
