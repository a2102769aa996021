package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/annel0/blockverse/internal/player"
)

// ErrPoseNotFound возвращается, если для игрока нет сохранённой позы
var ErrPoseNotFound = errors.New("поза не найдена")

// PoseRepo сохраняет и загружает позы игроков между сессиями.
// Поза привязана к постоянному идентификатору игрока.
type PoseRepo interface {
	// Save сохраняет позу, перезаписывая предыдущую
	Save(ctx context.Context, playerID string, pose player.Pose) error

	// Load загружает позу; ErrPoseNotFound, если игрок входит впервые
	Load(ctx context.Context, playerID string) (player.Pose, error)

	// Delete удаляет сохранённую позу (сброс, тесты)
	Delete(ctx context.Context, playerID string) error

	Close() error
}

func validatePlayerID(playerID string) error {
	if playerID == "" {
		return fmt.Errorf("пустой идентификатор игрока")
	}
	return nil
}
