package storage

import (
	"context"
	"sync"

	"github.com/annel0/blockverse/internal/player"
)

// MemoryPoseRepo реализует PoseRepo в памяти.
// Используется как fallback, когда внешние хранилища недоступны,
// и в тестах. Данные теряются при перезапуске!
type MemoryPoseRepo struct {
	mu   sync.RWMutex
	data map[string]player.Pose
}

// NewMemoryPoseRepo создаёт репозиторий поз в памяти
func NewMemoryPoseRepo() *MemoryPoseRepo {
	return &MemoryPoseRepo{data: make(map[string]player.Pose)}
}

// Save сохраняет позу
func (r *MemoryPoseRepo) Save(ctx context.Context, playerID string, pose player.Pose) error {
	if err := validatePlayerID(playerID); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[playerID] = pose
	return nil
}

// Load загружает позу
func (r *MemoryPoseRepo) Load(ctx context.Context, playerID string) (player.Pose, error) {
	if err := validatePlayerID(playerID); err != nil {
		return player.Pose{}, err
	}
	if err := ctx.Err(); err != nil {
		return player.Pose{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	pose, ok := r.data[playerID]
	if !ok {
		return player.Pose{}, ErrPoseNotFound
	}
	return pose, nil
}

// Delete удаляет позу
func (r *MemoryPoseRepo) Delete(ctx context.Context, playerID string) error {
	if err := validatePlayerID(playerID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[playerID]; !ok {
		return ErrPoseNotFound
	}
	delete(r.data, playerID)
	return nil
}

// Count возвращает количество сохранённых поз
func (r *MemoryPoseRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

// Close ничего не делает
func (r *MemoryPoseRepo) Close() error { return nil }
