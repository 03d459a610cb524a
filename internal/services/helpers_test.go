package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	"github.com/vladimiradmaev/recipe-planner/internal/repository/memory"
)

var errBoom = errors.New("connection reset")

// failingStore wraps a memory store and fails the selected lookups
type failingStore struct {
	*memory.Store
	failPreferences bool
	failHistory     bool
	failReplace     bool
	failSearch      bool
	err             error
}

func (f *failingStore) failure() error {
	if f.err != nil {
		return f.err
	}
	return errBoom
}

func (f *failingStore) GetPreferences(ctx context.Context, userID string) (domain.UserPreferences, bool, error) {
	if f.failPreferences {
		return domain.UserPreferences{}, false, f.failure()
	}
	return f.Store.GetPreferences(ctx, userID)
}

func (f *failingStore) RecentRecipeIDs(ctx context.Context, userID string, since time.Time) ([]string, error) {
	if f.failHistory {
		return nil, f.failure()
	}
	return f.Store.RecentRecipeIDs(ctx, userID, since)
}

func (f *failingStore) ReplaceRange(ctx context.Context, userID string, r domain.DateRange, meals []domain.PlannedMeal) error {
	if f.failReplace {
		return f.failure()
	}
	return f.Store.ReplaceRange(ctx, userID, r, meals)
}

func (f *failingStore) SearchProducts(ctx context.Context, nameContains string) ([]domain.Product, error) {
	if f.failSearch {
		return nil, f.failure()
	}
	return f.Store.SearchProducts(ctx, nameContains)
}

func newRecipe(t *testing.T, store domain.RecipeRepository, title string, approved bool, tags ...string) domain.Recipe {
	t.Helper()
	r := domain.Recipe{
		Title:    title,
		Servings: 2,
		Approved: approved,
		DietTags: tags,
		Ingredients: []domain.IngredientItem{
			{Name: "flour", Quantity: 200, Unit: "g"},
		},
	}
	if err := store.CreateRecipe(context.Background(), &r); err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	return r
}

func ids(recipes []domain.Recipe) map[string]bool {
	out := make(map[string]bool, len(recipes))
	for _, r := range recipes {
		out[r.ID] = true
	}
	return out
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
