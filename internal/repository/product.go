package repository

import (
	"context"
	"strings"

	"github.com/vladimiradmaev/recipe-planner/internal/database"
	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	"gorm.io/gorm"
)

// SearchProducts returns products whose name contains nameContains, case-insensitively
func (s *Store) SearchProducts(ctx context.Context, nameContains string) ([]domain.Product, error) {
	var models []database.Product
	if err := s.db.WithContext(ctx).
		Where("name ILIKE ?", containsPattern(strings.TrimSpace(nameContains))).
		Order("store, name").
		Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(models))
	for _, m := range models {
		out = append(out, productFromModel(m))
	}
	return out, nil
}

// ReplaceStoreProducts swaps a store's whole catalogue in one transaction
func (s *Store) ReplaceStoreProducts(ctx context.Context, store string, products []domain.Product) error {
	models := make([]database.Product, 0, len(products))
	for _, p := range products {
		models = append(models, database.Product{
			Store:      store,
			Name:       p.Name,
			Unit:       p.Unit,
			SizeValue:  p.SizeValue,
			SizeUnit:   p.SizeUnit,
			PriceCents: p.PriceCents,
		})
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store = ?", store).Delete(&database.Product{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.CreateInBatches(&models, batchSize).Error
	})
}
