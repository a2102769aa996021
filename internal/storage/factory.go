package storage

import (
	"context"

	"github.com/annel0/blockverse/internal/logging"
)

// Бэкенды хранения поз
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMaria  = "maria"
)

// PoseRepoConfig выбирает бэкенд репозитория поз
type PoseRepoConfig struct {
	Backend  string
	Redis    *RedisConfig
	MariaDSN string
}

// NewPoseRepo создаёт репозиторий для выбранного бэкенда. Если бэкенд
// недоступен, возвращается репозиторий в памяти, а фактический бэкенд
// сообщается вторым значением.
func NewPoseRepo(ctx context.Context, cfg PoseRepoConfig) (PoseRepo, string) {
	log := logging.GetStorageLogger()

	switch cfg.Backend {
	case BackendRedis:
		repo, err := NewRedisPoseRepo(ctx, cfg.Redis)
		if err == nil {
			log.Info("🔴 Позы хранятся в Redis")
			return repo, BackendRedis
		}
		log.Warn("⚠️ Redis недоступен, используем память: %v", err)
	case BackendMaria:
		repo, err := NewMariaPoseRepo(ctx, cfg.MariaDSN)
		if err == nil {
			log.Info("🐬 Позы хранятся в MariaDB")
			return repo, BackendMaria
		}
		log.Warn("⚠️ MariaDB недоступна, используем память: %v", err)
	case BackendMemory, "":
	default:
		log.Warn("Неизвестный бэкенд %q, используем память", cfg.Backend)
	}

	return NewMemoryPoseRepo(), BackendMemory
}
