package cache

import (
	"fmt"

	"todo-service/config"

	utilcache "github.com/umakantv/go-utils/cache"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// InitializeCache builds the configured cache. It returns a nil *Store when
// caching is disabled; a nil *Store is a valid, always-missing cache.
func InitializeCache(cfg config.CacheConfig) (*Store, error) {
	if cfg.Type == config.CacheNone || cfg.Type == "" {
		logger.Info("Cache disabled")
		return nil, nil
	}

	backend, err := utilcache.New(utilcache.Config{
		Type:          cfg.Type,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Error("Failed to initialize cache", zap.Error(err), zap.String("type", cfg.Type))
		return nil, fmt.Errorf("initialize %s cache: %w", cfg.Type, err)
	}

	logger.Info("Cache initialized", zap.String("type", cfg.Type))
	return &Store{backend: backend}, nil
}
