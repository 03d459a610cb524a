package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	apperrors "github.com/vladimiradmaev/recipe-planner/internal/errors"
	"github.com/vladimiradmaev/recipe-planner/internal/logger"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type RecipeService struct {
	recipes domain.RecipeRepository
	history domain.CookHistoryRepository
	now     func() time.Time
}

func NewRecipeService(recipes domain.RecipeRepository, history domain.CookHistoryRepository) *RecipeService {
	return &RecipeService{
		recipes: recipes,
		history: history,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a user-submitted recipe. Submissions start unapproved.
func (s *RecipeService) Create(ctx context.Context, authorID string, in domain.Recipe) (domain.Recipe, error) {
	if err := validateRecipe(in); err != nil {
		return domain.Recipe{}, err
	}

	recipe := in
	recipe.ID = ""
	recipe.Title = strings.TrimSpace(in.Title)
	recipe.Approved = false
	recipe.CostEstimateCents = nil
	recipe.DietTags = domain.NormalizeDietTags(in.DietTags)
	if authorID != "" {
		recipe.AuthorID = &authorID
	}

	if err := s.recipes.CreateRecipe(ctx, &recipe); err != nil {
		return domain.Recipe{}, apperrors.NewDatabaseError(err)
	}
	logger.FromContext(ctx).Info("Recipe submitted", "recipe_id", recipe.ID)
	return recipe, nil
}

func validateRecipe(r domain.Recipe) error {
	if strings.TrimSpace(r.Title) == "" {
		return apperrors.NewValidationError("title is required")
	}
	if r.Servings < 1 {
		return apperrors.NewValidationError("servings must be at least 1")
	}
	if r.TotalTimeMinutes != nil && *r.TotalTimeMinutes < 0 {
		return apperrors.NewValidationError("total time must not be negative")
	}
	if n := r.Nutrition; n != nil {
		for _, v := range []float64{n.Calories, n.ProteinGrams, n.FatGrams, n.CarbsGrams} {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return apperrors.NewValidationError("nutrition values must be non-negative numbers")
			}
		}
	}
	for i, item := range r.Ingredients {
		if strings.TrimSpace(item.Name) == "" {
			return apperrors.NewValidationError("ingredient name is required").WithContext("index", i)
		}
		if item.Quantity < 0 || math.IsNaN(item.Quantity) || math.IsInf(item.Quantity, 0) {
			return apperrors.NewValidationError("ingredient quantity must be a non-negative number").WithContext("index", i)
		}
	}
	return nil
}

func (s *RecipeService) Get(ctx context.Context, id string) (domain.Recipe, error) {
	recipe, found, err := s.recipes.GetRecipe(ctx, id)
	if err != nil {
		return domain.Recipe{}, apperrors.NewDatabaseError(err).WithContext("recipe_id", id)
	}
	if !found {
		return domain.Recipe{}, apperrors.NewNotFoundError("recipe").WithContext("recipe_id", id)
	}
	return recipe, nil
}

// ListApproved pages through the public catalogue
func (s *RecipeService) ListApproved(ctx context.Context, offset, limit int) ([]domain.Recipe, error) {
	if offset < 0 {
		return nil, apperrors.NewValidationError("offset must not be negative")
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	recipes, err := s.recipes.ListApprovedRecipes(ctx, offset, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return recipes, nil
}

// Scaled returns the recipe with its ingredients rescaled to servings
func (s *RecipeService) Scaled(ctx context.Context, id string, servings int) (domain.Recipe, error) {
	if servings < 1 {
		return domain.Recipe{}, apperrors.NewValidationError("servings must be at least 1")
	}
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return domain.Recipe{}, err
	}
	recipe.Ingredients = ScaleIngredients(recipe.Ingredients, recipe.Servings, servings)
	if recipe.Servings > 0 {
		recipe.Servings = servings
	}
	return recipe, nil
}

// LogCooked appends a cook history entry stamped with the current time
func (s *RecipeService) LogCooked(ctx context.Context, userID, recipeID string) (domain.CookHistoryEntry, error) {
	if _, err := s.Get(ctx, recipeID); err != nil {
		return domain.CookHistoryEntry{}, err
	}
	entry := domain.CookHistoryEntry{UserID: userID, RecipeID: recipeID, CookedAt: s.now()}
	if err := s.history.AddCookHistory(ctx, entry); err != nil {
		return domain.CookHistoryEntry{}, writeError(err, recipeID)
	}
	return entry, nil
}
