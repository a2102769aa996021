package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/annel0/blockverse/internal/player"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePose() player.Pose {
	return player.Pose{
		Position: vec.Vec3Float{X: 1.5, Y: 81, Z: -3.25},
		Pitch:    -20,
		Yaw:      135,
		Block:    "Sand",
	}
}

// exercisePoseRepo проверяет общий контракт PoseRepo
func exercisePoseRepo(t *testing.T, repo PoseRepo) {
	ctx := context.Background()

	t.Run("Load missing", func(t *testing.T) {
		_, err := repo.Load(ctx, "nobody")
		assert.ErrorIs(t, err, ErrPoseNotFound)
	})

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "alice", samplePose()))
		got, err := repo.Load(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, samplePose(), got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		second := samplePose()
		second.Position.Y = 12
		require.NoError(t, repo.Save(ctx, "alice", second))
		got, err := repo.Load(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 12.0, got.Position.Y)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "alice"))
		_, err := repo.Load(ctx, "alice")
		assert.ErrorIs(t, err, ErrPoseNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, "alice"), ErrPoseNotFound)
	})

	t.Run("Empty player id", func(t *testing.T) {
		assert.Error(t, repo.Save(ctx, "", samplePose()))
		_, err := repo.Load(ctx, "")
		assert.Error(t, err)
	})
}

func TestMemoryPoseRepo(t *testing.T) {
	repo := NewMemoryPoseRepo()
	exercisePoseRepo(t, repo)
	assert.Zero(t, repo.Count())
}

func TestMemoryPoseRepoCancelledContext(t *testing.T) {
	repo := NewMemoryPoseRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, repo.Save(ctx, "bob", samplePose()), context.Canceled)
}

func TestRedisPoseRepo(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := DefaultRedisConfig()
	cfg.Addr = mr.Addr()
	repo, err := NewRedisPoseRepo(context.Background(), cfg)
	require.NoError(t, err)
	defer repo.Close()

	exercisePoseRepo(t, repo)
}

func TestRedisPoseRepoTTL(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := DefaultRedisConfig()
	cfg.Addr = mr.Addr()
	cfg.TTL = time.Minute
	repo, err := NewRedisPoseRepo(context.Background(), cfg)
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.Save(context.Background(), "carol", samplePose()))
	assert.Equal(t, time.Minute, mr.TTL(cfg.KeyPrefix+"carol"))

	mr.FastForward(2 * time.Minute)
	_, err = repo.Load(context.Background(), "carol")
	assert.ErrorIs(t, err, ErrPoseNotFound)
}

func TestMariaPoseRepo(t *testing.T) {
	dsn := os.Getenv("TEST_MARIA_DSN")
	if dsn == "" {
		t.Skip("TEST_MARIA_DSN не задан")
	}

	repo, err := NewMariaPoseRepo(context.Background(), dsn)
	require.NoError(t, err)
	defer repo.Close()

	_ = repo.Delete(context.Background(), "alice")
	exercisePoseRepo(t, repo)
}

func TestNewPoseRepoFallback(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	t.Run("memory", func(t *testing.T) {
		repo, backend := NewPoseRepo(ctx, PoseRepoConfig{Backend: BackendMemory})
		assert.Equal(t, BackendMemory, backend)
		assert.IsType(t, &MemoryPoseRepo{}, repo)
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		addr := mr.Addr()
		mr.Close()

		repo, backend := NewPoseRepo(ctx, PoseRepoConfig{
			Backend: BackendRedis,
			Redis:   &RedisConfig{Addr: addr, KeyPrefix: "p:"},
		})
		assert.Equal(t, BackendMemory, backend)
		assert.IsType(t, &MemoryPoseRepo{}, repo)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		repo, backend := NewPoseRepo(ctx, PoseRepoConfig{
			Backend: BackendRedis,
			Redis:   &RedisConfig{Addr: mr.Addr(), KeyPrefix: "p:"},
		})
		defer repo.Close()
		assert.Equal(t, BackendRedis, backend)
	})

	t.Run("unknown", func(t *testing.T) {
		_, backend := NewPoseRepo(ctx, PoseRepoConfig{Backend: "mongo"})
		assert.Equal(t, BackendMemory, backend)
	})
}
