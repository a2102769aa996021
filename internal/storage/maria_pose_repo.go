package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/annel0/blockverse/internal/player"
	_ "github.com/go-sql-driver/mysql"
)

// MariaPoseRepo реализует PoseRepo для MariaDB/MySQL.
// Позы хранятся в таблице player_poses.
type MariaPoseRepo struct {
	db *sql.DB
}

// NewMariaPoseRepo подключается к базе и создаёт таблицу, если её нет.
//
// Параметры:
//
//	dsn - строка подключения (user:pass@tcp(host:port)/dbname)
func NewMariaPoseRepo(ctx context.Context, dsn string) (*MariaPoseRepo, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к MariaDB: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось проверить соединение с MariaDB: %w", err)
	}

	repo := &MariaPoseRepo{db: db}
	if err := repo.createTable(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func (r *MariaPoseRepo) createTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS player_poses (
			player_id  VARCHAR(64) PRIMARY KEY,
			x          DOUBLE      NOT NULL,
			y          DOUBLE      NOT NULL,
			z          DOUBLE      NOT NULL,
			pitch      DOUBLE      NOT NULL DEFAULT 0,
			yaw        DOUBLE      NOT NULL DEFAULT 0,
			block      VARCHAR(32) NOT NULL DEFAULT '',
			updated_at TIMESTAMP   DEFAULT CURRENT_TIMESTAMP
			           ON UPDATE   CURRENT_TIMESTAMP
		) ENGINE=InnoDB
	`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ошибка создания таблицы player_poses: %w", err)
	}
	return nil
}

// Save сохраняет позу через INSERT ... ON DUPLICATE KEY UPDATE
func (r *MariaPoseRepo) Save(ctx context.Context, playerID string, pose player.Pose) error {
	if err := validatePlayerID(playerID); err != nil {
		return err
	}

	query := `
		INSERT INTO player_poses (player_id, x, y, z, pitch, yaw, block)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			x = VALUES(x),
			y = VALUES(y),
			z = VALUES(z),
			pitch = VALUES(pitch),
			yaw = VALUES(yaw),
			block = VALUES(block),
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.ExecContext(ctx, query, playerID,
		pose.Position.X, pose.Position.Y, pose.Position.Z, pose.Pitch, pose.Yaw, pose.Block)
	if err != nil {
		return fmt.Errorf("ошибка сохранения позы игрока %s: %w", playerID, err)
	}
	return nil
}

// Load загружает позу
func (r *MariaPoseRepo) Load(ctx context.Context, playerID string) (player.Pose, error) {
	if err := validatePlayerID(playerID); err != nil {
		return player.Pose{}, err
	}

	query := `SELECT x, y, z, pitch, yaw, block FROM player_poses WHERE player_id = ?`

	var pose player.Pose
	err := r.db.QueryRowContext(ctx, query, playerID).Scan(
		&pose.Position.X, &pose.Position.Y, &pose.Position.Z, &pose.Pitch, &pose.Yaw, &pose.Block)
	if errors.Is(err, sql.ErrNoRows) {
		return player.Pose{}, ErrPoseNotFound
	}
	if err != nil {
		return player.Pose{}, fmt.Errorf("ошибка загрузки позы игрока %s: %w", playerID, err)
	}
	return pose, nil
}

// Delete удаляет позу
func (r *MariaPoseRepo) Delete(ctx context.Context, playerID string) error {
	if err := validatePlayerID(playerID); err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM player_poses WHERE player_id = ?`, playerID)
	if err != nil {
		return fmt.Errorf("ошибка удаления позы игрока %s: %w", playerID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка получения количества затронутых строк: %w", err)
	}
	if rowsAffected == 0 {
		return ErrPoseNotFound
	}
	return nil
}

// Close закрывает соединение с базой данных
func (r *MariaPoseRepo) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
