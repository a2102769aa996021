package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/annel0/blockverse/internal/player"
	"github.com/go-redis/redis/v8"
)

// RedisConfig содержит настройки подключения к Redis
type RedisConfig struct {
	Addr      string        // Адрес Redis сервера
	Password  string        // Пароль (пустой если не требуется)
	DB        int           // Номер базы данных
	KeyPrefix string        // Префикс для ключей
	TTL       time.Duration // Время жизни записей, 0 - без ограничения
}

// DefaultRedisConfig возвращает конфигурацию по умолчанию
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Addr:      "localhost:6379",
		KeyPrefix: "blockverse:pose:",
		TTL:       24 * time.Hour,
	}
}

// RedisPoseRepo хранит позы игроков в Redis как JSON с TTL
type RedisPoseRepo struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// storedPose - запись в Redis
type storedPose struct {
	Pose      player.Pose `json:"pose"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewRedisPoseRepo подключается к Redis и проверяет соединение
func NewRedisPoseRepo(ctx context.Context, config *RedisConfig) (*RedisPoseRepo, error) {
	if config == nil {
		config = DefaultRedisConfig()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisPoseRepo{
		client:    client,
		keyPrefix: config.KeyPrefix,
		ttl:       config.TTL,
	}, nil
}

func (r *RedisPoseRepo) key(playerID string) string {
	return r.keyPrefix + playerID
}

// Save сохраняет позу
func (r *RedisPoseRepo) Save(ctx context.Context, playerID string, pose player.Pose) error {
	if err := validatePlayerID(playerID); err != nil {
		return err
	}

	data, err := json.Marshal(storedPose{Pose: pose, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal pose: %w", err)
	}
	if err := r.client.Set(ctx, r.key(playerID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save pose: %w", err)
	}
	return nil
}

// Load загружает позу
func (r *RedisPoseRepo) Load(ctx context.Context, playerID string) (player.Pose, error) {
	if err := validatePlayerID(playerID); err != nil {
		return player.Pose{}, err
	}

	data, err := r.client.Get(ctx, r.key(playerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return player.Pose{}, ErrPoseNotFound
	}
	if err != nil {
		return player.Pose{}, fmt.Errorf("failed to get pose: %w", err)
	}

	var stored storedPose
	if err := json.Unmarshal(data, &stored); err != nil {
		return player.Pose{}, fmt.Errorf("failed to unmarshal pose: %w", err)
	}
	return stored.Pose, nil
}

// Delete удаляет позу
func (r *RedisPoseRepo) Delete(ctx context.Context, playerID string) error {
	if err := validatePlayerID(playerID); err != nil {
		return err
	}

	removed, err := r.client.Del(ctx, r.key(playerID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete pose: %w", err)
	}
	if removed == 0 {
		return ErrPoseNotFound
	}
	return nil
}

// Close закрывает клиент
func (r *RedisPoseRepo) Close() error {
	return r.client.Close()
}
