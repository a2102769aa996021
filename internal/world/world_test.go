package world

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/annel0/blockverse/internal/eventbus"
	"github.com/annel0/blockverse/internal/player"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatWorld(opts ...Option) *World {
	return New(FlatGenerator{Height: 10, Top: block.GrassBlockID}, opts...)
}

func TestBlockExists(t *testing.T) {
	w := flatWorld()

	assert.True(t, w.BlockExists(0, 10, 0))
	assert.True(t, w.BlockExists(-100, 0, 57))
	assert.False(t, w.BlockExists(0, 11, 0))
	assert.False(t, w.BlockExists(0, -1, 0), "ниже мира пусто")
	assert.False(t, w.BlockExists(0, 256, 0), "выше мира пусто")
}

func TestEmptyWorldWithoutGenerator(t *testing.T) {
	w := New(nil)
	assert.False(t, w.BlockExists(0, 0, 0))
	assert.Equal(t, 1, w.LoadedChunks())
}

func TestAddBlock(t *testing.T) {
	w := flatWorld()
	pos := vec.Vec3{X: 3, Y: 11, Z: 3}

	w.AddBlock(pos, "Stone", w.ChunkAt(vec.Vec2{}))
	assert.True(t, w.BlockExists(3, 11, 3))
	assert.Equal(t, block.DirtBlockID, w.GetBlockID(vec.Vec3{X: 3, Y: 10, Z: 3}), "трава под блоком становится землёй")

	t.Run("не заменяет твёрдый блок", func(t *testing.T) {
		w.AddBlock(pos, "Wood", nil)
		assert.Equal(t, block.StoneBlockID, w.GetBlockID(pos))
	})

	t.Run("неизвестный тип", func(t *testing.T) {
		w.AddBlock(vec.Vec3{X: 0, Y: 20, Z: 0}, "Unobtainium", nil)
		assert.False(t, w.BlockExists(0, 20, 0))
	})

	t.Run("вне высоты мира", func(t *testing.T) {
		w.AddBlock(vec.Vec3{X: 0, Y: 300, Z: 0}, "Stone", nil)
		assert.False(t, w.BlockExists(0, 300, 0))
	})
}

func TestAddBlockReroutesToOwningChunk(t *testing.T) {
	w := flatWorld()
	avatarChunk := w.ChunkAt(vec.Vec2{})
	pos := vec.Vec3{X: 8, Y: 11, Z: 0} // первая колонка чанка (1, 0)

	w.AddBlock(pos, "Planks", avatarChunk)

	assert.True(t, w.BlockExists(8, 11, 0))
	owner := w.Chunk(vec.Vec2{X: 1, Y: 0})
	assert.True(t, owner.IsDirty())
	assert.False(t, w.Chunk(vec.Vec2{}).IsDirty())
}

func TestSandFalls(t *testing.T) {
	w := flatWorld()
	w.AddBlock(vec.Vec3{X: 0, Y: 30, Z: 0}, "Sand", nil)

	assert.False(t, w.BlockExists(0, 30, 0))
	assert.Equal(t, block.SandBlockID, w.GetBlockID(vec.Vec3{X: 0, Y: 11, Z: 0}))
}

func TestRemoveBlock(t *testing.T) {
	w := flatWorld()
	pos := vec.Vec3{X: -5, Y: 10, Z: 7}

	w.RemoveBlock(pos, w.ChunkAt(vec.Vec2{}))
	assert.False(t, w.BlockExists(-5, 10, 7))

	before := len(w.DirtyChunks())
	w.RemoveBlock(vec.Vec3{X: 0, Y: 50, Z: 0}, nil)
	assert.Len(t, w.DirtyChunks(), before, "удаление воздуха ничего не меняет")
}

func TestSurfaceHeight(t *testing.T) {
	w := flatWorld()
	assert.Equal(t, 10, w.SurfaceHeight(40, -40))
	w.AddBlock(vec.Vec3{X: 40, Y: 11, Z: -40}, "Dirt", nil)
	assert.Equal(t, 11, w.SurfaceHeight(40, -40))
}

func TestSpawnPointStandsOnSurface(t *testing.T) {
	w := flatWorld()

	spawn := w.SpawnPoint(3.5, -7.25)
	assert.Equal(t, vec.Vec3Float{X: 3.5, Y: 12, Z: -7.25}, spawn)

	settings := player.DefaultSettings()
	settings.Spawn = spawn
	c := player.NewController(w, settings)
	c.Update(player.InputState{})
	assert.False(t, c.Falling(), "аватар стоит на поверхности с первого тика")

	assert.Equal(t, 1.0, New(nil).SpawnPoint(0, 0).Y, "пустой столбец")
}

func TestDirtyChunksOrdered(t *testing.T) {
	w := flatWorld()
	w.RemoveBlock(vec.Vec3{X: 40, Y: 10, Z: 0}, nil)
	w.RemoveBlock(vec.Vec3{X: -40, Y: 10, Z: 0}, nil)
	w.RemoveBlock(vec.Vec3{X: 0, Y: 10, Z: 0}, nil)

	dirty := w.DirtyChunks()
	require.Len(t, dirty, 3)
	assert.Equal(t, -2, dirty[0].Coords.X)
	assert.Equal(t, 0, dirty[1].Coords.X)
	assert.Equal(t, 3, dirty[2].Coords.X)
}

func TestCatalogAndChunkSize(t *testing.T) {
	w := flatWorld()
	assert.Equal(t, 16, w.ChunkSize())
	assert.Contains(t, w.BlockTypeCatalog(), "Stone")
	assert.NotContains(t, w.BlockTypeCatalog(), "Air")
}

type failingLoader struct{ calls int }

func (l *failingLoader) LoadAndApplyChunk(*Chunk) error {
	l.calls++
	return errors.New("диск недоступен")
}

func TestLoaderErrorKeepsGeneratedChunk(t *testing.T) {
	loader := &failingLoader{}
	w := flatWorld(WithLoader(loader))

	assert.True(t, w.BlockExists(0, 0, 0))
	assert.True(t, w.BlockExists(1, 0, 1))
	assert.Equal(t, 1, loader.calls, "чанк загружается один раз")
}

func TestBlockEventsPublished(t *testing.T) {
	bus := eventbus.NewMemoryBus(16)
	w := flatWorld(WithEventBus(bus, "test-world"))

	var mu sync.Mutex
	var got []BlockEventPayload
	var types []string
	_, err := bus.Subscribe(context.Background(), eventbus.Filter{Sources: []string{"test-world"}},
		func(ctx context.Context, ev *eventbus.Envelope) {
			var p BlockEventPayload
			if json.Unmarshal(ev.Payload, &p) == nil {
				mu.Lock()
				got = append(got, p)
				types = append(types, ev.EventType)
				mu.Unlock()
			}
		})
	require.NoError(t, err)

	w.AddBlock(vec.Vec3{X: 20, Y: 11, Z: 0}, "Stone", nil)
	w.RemoveBlock(vec.Vec3{X: 20, Y: 11, Z: 0}, nil)
	require.NoError(t, bus.Close())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	assert.ElementsMatch(t, []string{EventBlockPlaced, EventBlockBroken}, types)
	for _, p := range got {
		assert.Equal(t, BlockEventPayload{X: 20, Y: 11, Z: 0, Block: "Stone", ChunkX: 1, ChunkZ: 0}, p)
	}
}

func TestConcurrentChunkCreation(t *testing.T) {
	w := flatWorld()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.BlockExists(0, 0, 0)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, w.LoadedChunks())
}

func TestPerlinGenerator(t *testing.T) {
	gen := NewPerlinGenerator(42)
	w := New(gen)

	for _, column := range []vec.Vec2{{X: 0, Y: 0}, {X: 37, Y: -12}, {X: -90, Y: 5}} {
		h := gen.HeightAt(column.X, column.Y)
		assert.GreaterOrEqual(t, h, DefaultBaseHeight-DefaultAmplitude)
		assert.LessOrEqual(t, h, DefaultBaseHeight+DefaultAmplitude)
		assert.Equal(t, h, w.SurfaceHeight(column.X, column.Y))
		assert.Equal(t, block.StoneBlockID, w.GetBlockID(vec.Vec3{X: column.X, Y: 0, Z: column.Y}))
	}

	again := NewPerlinGenerator(42)
	assert.Equal(t, gen.HeightAt(5, 5), again.HeightAt(5, 5), "генерация детерминирована")
}

func TestWorldFallsBackToGlobalBus(t *testing.T) {
	bus := eventbus.NewMemoryBus(16)
	eventbus.Init(bus)
	t.Cleanup(func() { eventbus.Init(nil) })

	var mu sync.Mutex
	var sources []string
	_, err := bus.Subscribe(context.Background(), eventbus.Filter{},
		func(ctx context.Context, ev *eventbus.Envelope) {
			mu.Lock()
			sources = append(sources, ev.Source)
			mu.Unlock()
		})
	require.NoError(t, err)

	w := flatWorld()
	w.AddBlock(vec.Vec3{X: 1, Y: 11, Z: 1}, "Planks", nil)
	require.NoError(t, bus.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"world"}, sources)
}
