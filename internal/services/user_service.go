package services

import (
	"context"
	"strings"

	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	apperrors "github.com/vladimiradmaev/recipe-planner/internal/errors"
)

type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// EnsureUser registers the user on first sight and returns the stored account
func (s *UserService) EnsureUser(ctx context.Context, userID string) (domain.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.User{}, apperrors.NewUnauthorizedError("missing user identity")
	}
	user, err := s.users.EnsureUser(ctx, userID)
	if err != nil {
		return domain.User{}, apperrors.NewDatabaseError(err).WithContext("user_id", userID)
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, userID string) (domain.User, error) {
	user, found, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return domain.User{}, apperrors.NewDatabaseError(err).WithContext("user_id", userID)
	}
	if !found {
		return domain.User{}, apperrors.NewNotFoundError("user")
	}
	return user, nil
}

// Upgrade moves the user to the premium plan. There is no payment provider behind it.
func (s *UserService) Upgrade(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.users.SetPlan(ctx, userID, domain.PlanPremium)
	if err != nil {
		return domain.User{}, apperrors.NewDatabaseError(err).WithContext("user_id", userID)
	}
	return user, nil
}

// RequirePremium fails with an entitlement error unless the user is on the premium plan
func (s *UserService) RequirePremium(ctx context.Context, userID, feature string) error {
	user, found, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return apperrors.NewDatabaseError(err).WithContext("user_id", userID)
	}
	if !found || !user.IsPremium() {
		return apperrors.NewEntitlementError(feature).WithContext("user_id", userID)
	}
	return nil
}
