package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	apperrors "github.com/vladimiradmaev/recipe-planner/internal/errors"
	"github.com/vladimiradmaev/recipe-planner/internal/logger"
	"github.com/vladimiradmaev/recipe-planner/internal/utils"
)

const mealPlanFeature = "meal planning"

// PremiumChecker gates paid features
type PremiumChecker interface {
	RequirePremium(ctx context.Context, userID, feature string) error
}

// PlannerService manages a user's planned meals. Overlapping concurrent replaces for
// one user are not serialised here; the last transaction to commit wins.
type PlannerService struct {
	plans       domain.MealPlanRepository
	entitlement PremiumChecker
}

func NewPlannerService(plans domain.MealPlanRepository, entitlement PremiumChecker) *PlannerService {
	return &PlannerService{plans: plans, entitlement: entitlement}
}

// ParseDateRange builds a range from two YYYY-MM-DD strings
func ParseDateRange(start, end string) (domain.DateRange, error) {
	s, err := utils.ParseDate(start)
	if err != nil {
		return domain.DateRange{}, apperrors.NewValidationError("start must be a YYYY-MM-DD date").WithContext("start", start)
	}
	e, err := utils.ParseDate(end)
	if err != nil {
		return domain.DateRange{}, apperrors.NewValidationError("end must be a YYYY-MM-DD date").WithContext("end", end)
	}
	return newDateRange(s, e)
}

func newDateRange(start, end time.Time) (domain.DateRange, error) {
	r, err := domain.NewDateRange(start, end)
	if err != nil {
		return domain.DateRange{}, apperrors.NewValidationError("start date must not be after end date").
			WithContext("start", utils.FormatDate(start)).
			WithContext("end", utils.FormatDate(end))
	}
	return r, nil
}

// ReplaceRange atomically swaps the user's planned meals in [start, end] for entries
func (s *PlannerService) ReplaceRange(ctx context.Context, userID string, r domain.DateRange, entries []domain.PlannedMeal) ([]domain.PlannedMeal, error) {
	if r.Start.After(r.End) {
		return nil, apperrors.NewValidationError("start date must not be after end date")
	}
	if err := s.entitlement.RequirePremium(ctx, userID, mealPlanFeature); err != nil {
		return nil, err
	}

	meals, err := normalizeEntries(r, entries)
	if err != nil {
		return nil, err
	}

	if err := s.plans.ReplaceRange(ctx, userID, r, meals); err != nil {
		if errors.Is(err, domain.ErrUnknownRecipe) {
			return nil, apperrors.NewValidationError("meal plan references an unknown recipe")
		}
		return nil, storeError(err, "meal plan replace").WithContext("range", r.String())
	}

	logger.FromContext(ctx).Info("Meal plan replaced", "range", r.String(), "meals", len(meals))
	return s.ListRange(ctx, userID, r)
}

// ReplaceWeek is ReplaceRange over the 7 days starting at weekStart
func (s *PlannerService) ReplaceWeek(ctx context.Context, userID string, weekStart time.Time, entries []domain.PlannedMeal) ([]domain.PlannedMeal, error) {
	return s.ReplaceRange(ctx, userID, domain.WeekRange(weekStart), entries)
}

func (s *PlannerService) ListRange(ctx context.Context, userID string, r domain.DateRange) ([]domain.PlannedMeal, error) {
	if r.Start.After(r.End) {
		return nil, apperrors.NewValidationError("start date must not be after end date")
	}
	meals, err := s.plans.ListRange(ctx, userID, r)
	if err != nil {
		return nil, storeError(err, "meal plan list").WithContext("range", r.String())
	}
	return meals, nil
}

func (s *PlannerService) ListWeek(ctx context.Context, userID string, weekStart time.Time) ([]domain.PlannedMeal, error) {
	return s.ListRange(ctx, userID, domain.WeekRange(weekStart))
}

func normalizeEntries(r domain.DateRange, entries []domain.PlannedMeal) ([]domain.PlannedMeal, error) {
	meals := make([]domain.PlannedMeal, 0, len(entries))
	for i, e := range entries {
		if !r.Contains(e.Date) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("entry %d date is outside %s", i, r)).
				WithContext("date", utils.FormatDate(e.Date))
		}
		slot := domain.MealSlot(strings.ToLower(strings.TrimSpace(string(e.Slot))))
		if !slot.Valid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("entry %d has an unknown meal slot", i)).
				WithContext("slot", string(e.Slot))
		}
		recipeID := strings.TrimSpace(e.RecipeID)
		if recipeID == "" {
			return nil, apperrors.NewValidationError(fmt.Sprintf("entry %d is missing a recipe id", i))
		}
		if e.Servings != nil && *e.Servings < 1 {
			return nil, apperrors.NewValidationError(fmt.Sprintf("entry %d servings must be at least 1", i))
		}
		meals = append(meals, domain.PlannedMeal{
			Date:     utils.CalendarDate(e.Date),
			Slot:     slot,
			RecipeID: recipeID,
			Servings: e.Servings,
		})
	}
	return meals, nil
}
