package repository

import (
	"context"
	"errors"
	"math"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/recipe-planner/internal/database"
	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	"gorm.io/driver/postgres"
)

// openTestStore connects to RECIPE_TEST_DATABASE_DSN or skips the test
func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("RECIPE_TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("RECIPE_TEST_DATABASE_DSN not set")
	}
	db, err := database.Open(postgres.Open(dsn))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.Exec("TRUNCATE planned_meals, cook_histories, favorites, ratings, comments, user_preferences, products, recipes, users").Error
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return New(db)
}

func seedRecipe(t *testing.T, s *Store, title string, tags ...string) domain.Recipe {
	t.Helper()
	r := domain.Recipe{
		Title:       title,
		Servings:    2,
		Ingredients: []domain.IngredientItem{{Name: "flour", Quantity: 200, Unit: "g"}},
		DietTags:    tags,
		Approved:    true,
	}
	if err := s.CreateRecipe(context.Background(), &r); err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	return r
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestReplaceRangeReplacesWeek(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	r1 := seedRecipe(t, s, "Pancakes")
	r2 := seedRecipe(t, s, "Soup")
	week := domain.WeekRange(day(1))

	old := []domain.PlannedMeal{
		{Date: day(1), Slot: domain.SlotBreakfast, RecipeID: r1.ID},
		{Date: day(2), Slot: domain.SlotLunch, RecipeID: r1.ID},
	}
	if err := s.ReplaceRange(ctx, "u1", week, old); err != nil {
		t.Fatalf("seed plan: %v", err)
	}

	fresh := []domain.PlannedMeal{
		{Date: day(3), Slot: domain.SlotDinner, RecipeID: r2.ID},
		{Date: day(4), Slot: domain.SlotDinner, RecipeID: r2.ID},
		{Date: day(7), Slot: domain.SlotSnack, RecipeID: r1.ID},
	}
	if err := s.ReplaceRange(ctx, "u1", week, fresh); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := s.ListRange(ctx, "u1", week)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 meals, got %d", len(got))
	}
	for i, want := range fresh {
		if !got[i].Date.Equal(want.Date) || got[i].Slot != want.Slot || got[i].RecipeID != want.RecipeID {
			t.Errorf("meal %d = %+v, want %+v", i, got[i], want)
		}
	}
}

func TestReplaceRangeRollsBackOnUnknownRecipe(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	r1 := seedRecipe(t, s, "Pancakes")
	week := domain.WeekRange(day(1))

	prior := []domain.PlannedMeal{{Date: day(1), Slot: domain.SlotBreakfast, RecipeID: r1.ID}}
	if err := s.ReplaceRange(ctx, "u1", week, prior); err != nil {
		t.Fatalf("seed plan: %v", err)
	}

	bad := []domain.PlannedMeal{
		{Date: day(2), Slot: domain.SlotLunch, RecipeID: r1.ID},
		{Date: day(3), Slot: domain.SlotLunch, RecipeID: uuid.NewString()},
	}
	if err := s.ReplaceRange(ctx, "u1", week, bad); !errors.Is(err, domain.ErrUnknownRecipe) {
		t.Fatalf("expected ErrUnknownRecipe, got %v", err)
	}

	got, err := s.ListRange(ctx, "u1", week)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].RecipeID != r1.ID || !got[0].Date.Equal(day(1)) {
		t.Fatalf("prior plan not intact: %+v", got)
	}
}

func TestListCandidatesFiltersTagsAndExclusions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	vegan := seedRecipe(t, s, "Tofu bowl", "vegan")
	veganCooked := seedRecipe(t, s, "Lentil stew", "vegan", "gluten-free")
	seedRecipe(t, s, "Steak", "keto")

	got, err := s.ListCandidates(ctx, domain.CandidateFilter{
		DietTags:   []string{"vegan"},
		ExcludeIDs: []string{veganCooked.ID},
		Limit:      10,
	})
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if len(got) != 1 || got[0].ID != vegan.ID {
		t.Fatalf("expected only %s, got %+v", vegan.ID, got)
	}

	all, err := s.ListCandidates(ctx, domain.CandidateFilter{Limit: 10})
	if err != nil {
		t.Fatalf("unfiltered candidates: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 unfiltered candidates, got %d", len(all))
	}
}

func TestSearchProductsAndReplaceStore(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.ReplaceStoreProducts(ctx, "corner", []domain.Product{
		{Name: "Wheat Flour 1kg", Unit: "kg", SizeValue: 1, SizeUnit: "kg", PriceCents: 199},
		{Name: "Sugar", Unit: "kg", SizeValue: 1, SizeUnit: "kg", PriceCents: 149},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	got, err := s.SearchProducts(ctx, "flour")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Wheat Flour 1kg" {
		t.Fatalf("unexpected search result %+v", got)
	}

	if err := s.ReplaceStoreProducts(ctx, "corner", nil); err != nil {
		t.Fatalf("clear store: %v", err)
	}
	got, err = s.SearchProducts(ctx, "flour")
	if err != nil {
		t.Fatalf("search after clear: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty catalogue, got %+v", got)
	}
}

func TestUpsertsAreIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	r := seedRecipe(t, s, "Pancakes")

	for i := 0; i < 2; i++ {
		if err := s.AddFavorite(ctx, "u1", r.ID); err != nil {
			t.Fatalf("favorite %d: %v", i, err)
		}
	}
	favs, err := s.ListFavorites(ctx, "u1")
	if err != nil || len(favs) != 1 {
		t.Fatalf("expected one favorite, got %d (err=%v)", len(favs), err)
	}

	if err := s.UpsertRating(ctx, domain.Rating{UserID: "u1", RecipeID: r.ID, Score: 2}); err != nil {
		t.Fatalf("rate: %v", err)
	}
	if err := s.UpsertRating(ctx, domain.Rating{UserID: "u1", RecipeID: r.ID, Score: 4}); err != nil {
		t.Fatalf("re-rate: %v", err)
	}
	if err := s.UpsertRating(ctx, domain.Rating{UserID: "u2", RecipeID: r.ID, Score: 5}); err != nil {
		t.Fatalf("rate u2: %v", err)
	}
	summary, err := s.RatingSummary(ctx, r.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Count != 2 || summary.Average != 4.5 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	budget := int64(5000)
	if err := s.UpsertPreferences(ctx, domain.UserPreferences{UserID: "u1", DietTags: []string{"Vegan"}}); err != nil {
		t.Fatalf("prefs: %v", err)
	}
	if err := s.UpsertPreferences(ctx, domain.UserPreferences{UserID: "u1", DietTags: []string{"keto"}, BudgetCents: &budget}); err != nil {
		t.Fatalf("prefs update: %v", err)
	}
	prefs, found, err := s.GetPreferences(ctx, "u1")
	if err != nil || !found {
		t.Fatalf("get prefs: found=%v err=%v", found, err)
	}
	if len(prefs.DietTags) != 1 || prefs.DietTags[0] != "keto" || prefs.BudgetCents == nil || *prefs.BudgetCents != budget {
		t.Fatalf("unexpected prefs %+v", prefs)
	}
}

func TestRecipeToModelRejectsUnencodableNutrition(t *testing.T) {
	_, err := recipeToModel(domain.Recipe{Title: "x", Servings: 1, Nutrition: &domain.Nutrition{Calories: math.NaN()}})
	if err == nil {
		t.Fatal("expected encode error for NaN nutrition")
	}

	m, err := recipeToModel(domain.Recipe{Title: "x", Servings: 1, Nutrition: &domain.Nutrition{Calories: 250}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(m.Nutrition) == 0 {
		t.Fatal("nutrition dropped")
	}
}
