package domain

import (
	"context"
	"time"
)

// Lookups return (value, found, err): a missing row is found=false with a nil error.

// UserRepository persists accounts
type UserRepository interface {
	EnsureUser(ctx context.Context, id string) (User, error)
	GetUser(ctx context.Context, id string) (User, bool, error)
	SetPlan(ctx context.Context, id string, plan Plan) (User, error)
}

// RecipeRepository persists recipes
type RecipeRepository interface {
	CreateRecipe(ctx context.Context, recipe *Recipe) error
	GetRecipe(ctx context.Context, id string) (Recipe, bool, error)
	ListApprovedRecipes(ctx context.Context, offset, limit int) ([]Recipe, error)
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]Recipe, error)
}

// ProductRepository persists grocery products
type ProductRepository interface {
	SearchProducts(ctx context.Context, nameContains string) ([]Product, error)
	ReplaceStoreProducts(ctx context.Context, store string, products []Product) error
}

// PreferenceRepository persists user preferences, one row per user
type PreferenceRepository interface {
	GetPreferences(ctx context.Context, userID string) (UserPreferences, bool, error)
	UpsertPreferences(ctx context.Context, prefs UserPreferences) error
}

// CookHistoryRepository is an append-only log of cooked recipes
type CookHistoryRepository interface {
	AddCookHistory(ctx context.Context, entry CookHistoryEntry) error
	RecentRecipeIDs(ctx context.Context, userID string, since time.Time) ([]string, error)
}

// MealPlanRepository persists planned meals.
// ReplaceRange is all-or-nothing: on any error the prior rows in range are left intact.
type MealPlanRepository interface {
	ReplaceRange(ctx context.Context, userID string, r DateRange, meals []PlannedMeal) error
	ListRange(ctx context.Context, userID string, r DateRange) ([]PlannedMeal, error)
}

// FavoriteRepository persists favorites; adding twice is a no-op
type FavoriteRepository interface {
	AddFavorite(ctx context.Context, userID, recipeID string) error
	RemoveFavorite(ctx context.Context, userID, recipeID string) error
	ListFavorites(ctx context.Context, userID string) ([]Recipe, error)
}

// RatingRepository persists ratings; rating again replaces the score
type RatingRepository interface {
	UpsertRating(ctx context.Context, rating Rating) error
	GetRating(ctx context.Context, userID, recipeID string) (Rating, bool, error)
	RatingSummary(ctx context.Context, recipeID string) (RatingSummary, error)
}

// CommentRepository persists comments
type CommentRepository interface {
	AddComment(ctx context.Context, comment *Comment) error
	ListComments(ctx context.Context, recipeID string, limit int) ([]Comment, error)
}

// Store bundles every repository behind one backend
type Store interface {
	UserRepository
	RecipeRepository
	ProductRepository
	PreferenceRepository
	CookHistoryRepository
	MealPlanRepository
	FavoriteRepository
	RatingRepository
	CommentRepository
}
