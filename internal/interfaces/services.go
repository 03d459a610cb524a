package interfaces

import (
	"context"
	"time"

	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	"github.com/vladimiradmaev/recipe-planner/internal/services"
)

// UserServiceInterface defines the contract for account operations
type UserServiceInterface interface {
	EnsureUser(ctx context.Context, userID string) (domain.User, error)
	Get(ctx context.Context, userID string) (domain.User, error)
	Upgrade(ctx context.Context, userID string) (domain.User, error)
}

// RecipeServiceInterface defines the contract for recipe catalogue operations
type RecipeServiceInterface interface {
	Create(ctx context.Context, authorID string, in domain.Recipe) (domain.Recipe, error)
	Get(ctx context.Context, id string) (domain.Recipe, error)
	ListApproved(ctx context.Context, offset, limit int) ([]domain.Recipe, error)
	Scaled(ctx context.Context, id string, servings int) (domain.Recipe, error)
	LogCooked(ctx context.Context, userID, recipeID string) (domain.CookHistoryEntry, error)
}

// PriceServiceInterface defines the contract for grocery price lookups
type PriceServiceInterface interface {
	Cheapest(ctx context.Context, ingredient, unit string) (services.PriceQuote, bool, error)
	EstimateRecipeCost(ctx context.Context, recipe domain.Recipe) (services.CostEstimate, error)
	ImportStoreProducts(ctx context.Context, store string, products []domain.Product) (int, error)
}

// RecommendationServiceInterface defines the contract for recipe recommendations
type RecommendationServiceInterface interface {
	Recommend(ctx context.Context, userID string, limit int) ([]domain.Recipe, error)
}

// PlannerServiceInterface defines the contract for meal planning
type PlannerServiceInterface interface {
	ReplaceRange(ctx context.Context, userID string, r domain.DateRange, entries []domain.PlannedMeal) ([]domain.PlannedMeal, error)
	ReplaceWeek(ctx context.Context, userID string, weekStart time.Time, entries []domain.PlannedMeal) ([]domain.PlannedMeal, error)
	ListRange(ctx context.Context, userID string, r domain.DateRange) ([]domain.PlannedMeal, error)
	ListWeek(ctx context.Context, userID string, weekStart time.Time) ([]domain.PlannedMeal, error)
}

// PreferenceServiceInterface defines the contract for user preferences
type PreferenceServiceInterface interface {
	Get(ctx context.Context, userID string) (domain.UserPreferences, error)
	Update(ctx context.Context, userID string, dietTags []string, budgetCents *int64) (domain.UserPreferences, error)
}

// SocialServiceInterface defines the contract for favorites, ratings and comments
type SocialServiceInterface interface {
	AddFavorite(ctx context.Context, userID, recipeID string) error
	RemoveFavorite(ctx context.Context, userID, recipeID string) error
	ListFavorites(ctx context.Context, userID string) ([]domain.Recipe, error)
	Rate(ctx context.Context, userID, recipeID string, score int) (services.RecipeRating, error)
	Rating(ctx context.Context, userID, recipeID string) (services.RecipeRating, error)
	AddComment(ctx context.Context, userID, recipeID, body string) (domain.Comment, error)
	ListComments(ctx context.Context, recipeID string, limit int) ([]domain.Comment, error)
}

// Services bundles every service a front end talks to
type Services struct {
	Users           UserServiceInterface
	Recipes         RecipeServiceInterface
	Prices          PriceServiceInterface
	Recommendations RecommendationServiceInterface
	Planner         PlannerServiceInterface
	Preferences     PreferenceServiceInterface
	Social          SocialServiceInterface
}

// NewServices wires every service against one store
func NewServices(store domain.Store) Services {
	users := services.NewUserService(store)
	return Services{
		Users:           users,
		Recipes:         services.NewRecipeService(store, store),
		Prices:          services.NewPriceService(store),
		Recommendations: services.NewRecommendationService(store, store, store),
		Planner:         services.NewPlannerService(store, users),
		Preferences:     services.NewPreferenceService(store),
		Social:          services.NewSocialService(store),
	}
}
