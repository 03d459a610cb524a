package services

import (
	"context"
	"time"

	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	apperrors "github.com/vladimiradmaev/recipe-planner/internal/errors"
)

const (
	DefaultRecommendationLimit = 10
	MinRecommendationLimit     = 1
	MaxRecommendationLimit     = 50

	// RecentCookWindow is how long a cooked recipe stays out of recommendations
	RecentCookWindow = 30 * 24 * time.Hour
)

// ClampRecommendationLimit maps 0 to the default and clamps everything into [1, 50]
func ClampRecommendationLimit(limit int) int {
	if limit == 0 {
		limit = DefaultRecommendationLimit
	}
	if limit < MinRecommendationLimit {
		return MinRecommendationLimit
	}
	if limit > MaxRecommendationLimit {
		return MaxRecommendationLimit
	}
	return limit
}

type RecommendationService struct {
	prefs   domain.PreferenceRepository
	history domain.CookHistoryRepository
	recipes domain.RecipeRepository
	now     func() time.Time
}

func NewRecommendationService(prefs domain.PreferenceRepository, history domain.CookHistoryRepository, recipes domain.RecipeRepository) *RecommendationService {
	return &RecommendationService{
		prefs:   prefs,
		history: history,
		recipes: recipes,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Recommend returns up to limit approved recipes in random order. Recipes cooked within
// RecentCookWindow are excluded, and when the user has diet tags at least one must match.
// Failures loading preferences or history are returned, never treated as empty.
func (s *RecommendationService) Recommend(ctx context.Context, userID string, limit int) ([]domain.Recipe, error) {
	limit = ClampRecommendationLimit(limit)

	prefs, _, err := s.prefs.GetPreferences(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err).WithContext("step", "preferences")
	}

	recent, err := s.history.RecentRecipeIDs(ctx, userID, s.now().Add(-RecentCookWindow))
	if err != nil {
		return nil, apperrors.NewDatabaseError(err).WithContext("step", "history")
	}

	recipes, err := s.recipes.ListCandidates(ctx, domain.CandidateFilter{
		DietTags:   domain.NormalizeDietTags(prefs.DietTags),
		ExcludeIDs: recent,
		Limit:      limit,
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError(err).WithContext("step", "candidates")
	}
	return recipes, nil
}
