package services

import (
	"context"
	"errors"

	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	apperrors "github.com/vladimiradmaev/recipe-planner/internal/errors"
)

// storeError wraps a repository failure. An expired deadline becomes a timeout.
func storeError(err error, operation string) *apperrors.AppError {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewTimeoutError(operation, err)
	}
	return apperrors.NewDatabaseError(err)
}

// writeError maps a store write failure, treating a vanished recipe as not found
func writeError(err error, recipeID string) error {
	if errors.Is(err, domain.ErrUnknownRecipe) {
		return apperrors.NewNotFoundError("recipe").WithContext("recipe_id", recipeID)
	}
	return apperrors.NewDatabaseError(err).WithContext("recipe_id", recipeID)
}
