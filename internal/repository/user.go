package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vladimiradmaev/recipe-planner/internal/database"
	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnsureUser gets an existing user or creates a new one on the free plan
func (s *Store) EnsureUser(ctx context.Context, id string) (domain.User, error) {
	user := database.User{ID: id, Plan: string(domain.PlanFree)}
	err := s.db.WithContext(ctx).Where(database.User{ID: id}).FirstOrCreate(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a race with a concurrent first request for the same user
		err = s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	}
	if err != nil {
		return domain.User{}, err
	}
	return userFromModel(user), nil
}

// GetUser returns a user by ID
func (s *Store) GetUser(ctx context.Context, id string) (domain.User, bool, error) {
	var user database.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(user), true, nil
}

// SetPlan stores the billing plan of a user, creating the user if needed
func (s *Store) SetPlan(ctx context.Context, id string, plan domain.Plan) (domain.User, error) {
	now := time.Now().UTC()
	user := database.User{ID: id, Plan: string(plan), CreatedAt: now, UpdatedAt: now}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"plan", "updated_at"}),
	}).Create(&user).Error
	if err != nil {
		return domain.User{}, err
	}
	stored, _, err := s.GetUser(ctx, id)
	return stored, err
}

func userFromModel(m database.User) domain.User {
	return domain.User{
		ID:        m.ID,
		Plan:      domain.Plan(m.Plan),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
