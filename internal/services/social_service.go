package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	apperrors "github.com/vladimiradmaev/recipe-planner/internal/errors"
)

const (
	MaxCommentLength    = 2000
	DefaultCommentLimit = 50
)

// SocialService handles favorites, ratings and comments
type SocialService struct {
	recipes   domain.RecipeRepository
	favorites domain.FavoriteRepository
	ratings   domain.RatingRepository
	comments  domain.CommentRepository
}

func NewSocialService(store domain.Store) *SocialService {
	return &SocialService{recipes: store, favorites: store, ratings: store, comments: store}
}

// RecipeRating is a recipe's aggregate score plus the caller's own score, if any
type RecipeRating struct {
	Summary domain.RatingSummary `json:"summary"`
	Mine    *int                 `json:"mine,omitempty"`
}

func (s *SocialService) requireRecipe(ctx context.Context, recipeID string) error {
	_, found, err := s.recipes.GetRecipe(ctx, recipeID)
	if err != nil {
		return apperrors.NewDatabaseError(err).WithContext("recipe_id", recipeID)
	}
	if !found {
		return apperrors.NewNotFoundError("recipe").WithContext("recipe_id", recipeID)
	}
	return nil
}

func (s *SocialService) AddFavorite(ctx context.Context, userID, recipeID string) error {
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return err
	}
	if err := s.favorites.AddFavorite(ctx, userID, recipeID); err != nil {
		return writeError(err, recipeID)
	}
	return nil
}

func (s *SocialService) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	if err := s.favorites.RemoveFavorite(ctx, userID, recipeID); err != nil {
		return apperrors.NewDatabaseError(err).WithContext("recipe_id", recipeID)
	}
	return nil
}

func (s *SocialService) ListFavorites(ctx context.Context, userID string) ([]domain.Recipe, error) {
	recipes, err := s.favorites.ListFavorites(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err).WithContext("user_id", userID)
	}
	return recipes, nil
}

// Rate stores the user's score and returns the updated aggregate
func (s *SocialService) Rate(ctx context.Context, userID, recipeID string, score int) (RecipeRating, error) {
	if score < domain.MinRatingScore || score > domain.MaxRatingScore {
		return RecipeRating{}, apperrors.NewValidationError("score must be between 1 and 5")
	}
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return RecipeRating{}, err
	}
	if err := s.ratings.UpsertRating(ctx, domain.Rating{UserID: userID, RecipeID: recipeID, Score: score}); err != nil {
		return RecipeRating{}, writeError(err, recipeID)
	}
	return s.Rating(ctx, userID, recipeID)
}

func (s *SocialService) Rating(ctx context.Context, userID, recipeID string) (RecipeRating, error) {
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return RecipeRating{}, err
	}
	summary, err := s.ratings.RatingSummary(ctx, recipeID)
	if err != nil {
		return RecipeRating{}, apperrors.NewDatabaseError(err).WithContext("recipe_id", recipeID)
	}
	out := RecipeRating{Summary: summary}
	own, found, err := s.ratings.GetRating(ctx, userID, recipeID)
	if err != nil {
		return RecipeRating{}, apperrors.NewDatabaseError(err).WithContext("recipe_id", recipeID)
	}
	if found {
		score := own.Score
		out.Mine = &score
	}
	return out, nil
}

func (s *SocialService) AddComment(ctx context.Context, userID, recipeID, body string) (domain.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return domain.Comment{}, apperrors.NewValidationError("comment body is required")
	}
	if utf8.RuneCountInString(body) > MaxCommentLength {
		return domain.Comment{}, apperrors.NewValidationError("comment is too long")
	}
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return domain.Comment{}, err
	}
	comment := domain.Comment{UserID: userID, RecipeID: recipeID, Body: body}
	if err := s.comments.AddComment(ctx, &comment); err != nil {
		return domain.Comment{}, writeError(err, recipeID)
	}
	return comment, nil
}

func (s *SocialService) ListComments(ctx context.Context, recipeID string, limit int) ([]domain.Comment, error) {
	if err := s.requireRecipe(ctx, recipeID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > DefaultCommentLimit {
		limit = DefaultCommentLimit
	}
	comments, err := s.comments.ListComments(ctx, recipeID, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err).WithContext("recipe_id", recipeID)
	}
	return comments, nil
}
