package repository

import (
	"fmt"

	"github.com/vladimiradmaev/recipe-planner/internal/config"
	"github.com/vladimiradmaev/recipe-planner/internal/database"
	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	"github.com/vladimiradmaev/recipe-planner/internal/logger"
	"github.com/vladimiradmaev/recipe-planner/internal/repository/memory"
)

// Open builds the store selected by cfg.Storage. The returned func releases it.
func Open(cfg *config.Config) (domain.Store, func() error, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("Using in-memory storage, data will be lost on restart")
		return memory.New(), func() error { return nil }, nil
	}

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	return New(db), sqlDB.Close, nil
}
