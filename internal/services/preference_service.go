package services

import (
	"context"

	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	apperrors "github.com/vladimiradmaev/recipe-planner/internal/errors"
)

type PreferenceService struct {
	prefs domain.PreferenceRepository
}

func NewPreferenceService(prefs domain.PreferenceRepository) *PreferenceService {
	return &PreferenceService{prefs: prefs}
}

// Get returns the user's preferences, or empty defaults when none were saved
func (s *PreferenceService) Get(ctx context.Context, userID string) (domain.UserPreferences, error) {
	prefs, found, err := s.prefs.GetPreferences(ctx, userID)
	if err != nil {
		return domain.UserPreferences{}, apperrors.NewDatabaseError(err).WithContext("user_id", userID)
	}
	if !found {
		return domain.UserPreferences{UserID: userID, DietTags: []string{}}, nil
	}
	return prefs, nil
}

func (s *PreferenceService) Update(ctx context.Context, userID string, dietTags []string, budgetCents *int64) (domain.UserPreferences, error) {
	if budgetCents != nil && *budgetCents < 0 {
		return domain.UserPreferences{}, apperrors.NewValidationError("budget must not be negative")
	}
	prefs := domain.UserPreferences{
		UserID:      userID,
		DietTags:    domain.NormalizeDietTags(dietTags),
		BudgetCents: budgetCents,
	}
	if err := s.prefs.UpsertPreferences(ctx, prefs); err != nil {
		return domain.UserPreferences{}, apperrors.NewDatabaseError(err).WithContext("user_id", userID)
	}
	return s.Get(ctx, userID)
}
