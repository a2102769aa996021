// Package world реализует воксельный мир для контроллера игрока: чанки
// 16x256x16, ленивую генерацию, сохранение изменений и события в шину.
package world

import (
	"sort"
	"sync"
	"time"

	"github.com/annel0/blockverse/internal/eventbus"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/player"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	_ "github.com/annel0/blockverse/internal/world/block/implementations"
)

// ChunkLoader применяет сохранённые изменения к только что созданному чанку
type ChunkLoader interface {
	LoadAndApplyChunk(chunk *Chunk) error
}

// World управляет чанками мира и реализует player.WorldModel и block.BlockAPI
type World struct {
	chunks    map[vec.Vec2]*Chunk
	generator Generator
	loader    ChunkLoader
	bus       eventbus.EventBus
	source    string
	log       *logging.Logger
	mu        sync.RWMutex
}

// Option настраивает мир
type Option func(*World)

// WithLoader подключает загрузку сохранённых изменений
func WithLoader(loader ChunkLoader) Option {
	return func(w *World) { w.loader = loader }
}

// WithEventBus подключает публикацию событий изменения блоков.
// Без этой опции мир публикует в глобальную шину eventbus.Global(), если она задана.
func WithEventBus(bus eventbus.EventBus, source string) Option {
	return func(w *World) {
		w.bus = bus
		if source != "" {
			w.source = source
		}
	}
}

// New создаёт мир. generator == nil даёт пустой мир из воздуха.
func New(generator Generator, opts ...Option) *World {
	w := &World{
		chunks:    make(map[vec.Vec2]*Chunk),
		generator: generator,
		source:    "world",
		log:       logging.GetWorldLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.bus == nil {
		w.bus = eventbus.Global()
	}
	return w
}

var (
	_ player.WorldModel = (*World)(nil)
	_ block.BlockAPI    = (*World)(nil)
)

// chunkCoordFor возвращает координаты чанка, содержащего мировую ячейку
func chunkCoordFor(pos vec.Vec3) vec.Vec2 {
	return vec.ChunkCoordOf(float64(pos.X), float64(pos.Z), ChunkSize)
}

// chunk возвращает чанк, загружая или генерируя его при необходимости
func (w *World) chunk(coords vec.Vec2) *Chunk {
	w.mu.RLock()
	c, exists := w.chunks[coords]
	w.mu.RUnlock()
	if exists {
		return c
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	// Проверяем еще раз: чанк мог появиться, пока мы ждали блокировку
	if c, exists := w.chunks[coords]; exists {
		return c
	}

	start := time.Now()
	c = NewChunk(coords)
	if w.generator != nil {
		w.generator.Generate(c)
	}
	if w.loader != nil {
		if err := w.loader.LoadAndApplyChunk(c); err != nil {
			w.log.Error("Ошибка загрузки чанка (%d,%d): %v", coords.X, coords.Y, err)
		}
	}
	w.chunks[coords] = c
	logging.LogChunkGenerated(w.log, coords.X, coords.Y, time.Since(start))
	return c
}

// ChunkAt возвращает чанк по координатам, создавая его при необходимости
func (w *World) ChunkAt(coord vec.Vec2) player.ChunkRef {
	return w.chunk(coord)
}

// Chunk возвращает чанк по координатам как *Chunk
func (w *World) Chunk(coord vec.Vec2) *Chunk {
	return w.chunk(coord)
}

// ChunkSize возвращает размер чанка по горизонтали
func (w *World) ChunkSize() int {
	return ChunkSize
}

// BlockTypeCatalog возвращает каталог типов блоков, которые можно ставить
func (w *World) BlockTypeCatalog() []string {
	return block.Catalog()
}

// GetBlockID возвращает ID блока в мировой ячейке; вне высоты мира - воздух
func (w *World) GetBlockID(pos vec.Vec3) block.BlockID {
	if pos.Y < 0 || pos.Y >= WorldHeight {
		return block.AirBlockID
	}
	c := w.chunk(chunkCoordFor(pos))
	local, _ := c.ToLocal(pos)
	return c.GetBlock(local)
}

// SetBlock устанавливает блок без реакций и событий (для поведений блоков)
func (w *World) SetBlock(pos vec.Vec3, id block.BlockID) {
	if pos.Y < 0 || pos.Y >= WorldHeight {
		return
	}
	c := w.chunk(chunkCoordFor(pos))
	local, _ := c.ToLocal(pos)
	c.SetBlock(local, id)
}

// BlockExists сообщает, есть ли твёрдый блок в ячейке
func (w *World) BlockExists(x, y, z int) bool {
	return block.IsSolid(w.GetBlockID(vec.Vec3{X: x, Y: y, Z: z}))
}

// resolveChunk возвращает чанк, реально содержащий ячейку. Если вызывающий
// адресовал изменение через чужой чанк (например, чанк, где стоит игрок),
// запрос перенаправляется.
func (w *World) resolveChunk(pos vec.Vec3, ref player.ChunkRef) *Chunk {
	if c, ok := ref.(*Chunk); ok && c != nil && c.Contains(pos) {
		return c
	}
	target := chunkCoordFor(pos)
	w.log.Trace("Перенаправление (%d,%d,%d) в чанк (%d,%d)", pos.X, pos.Y, pos.Z, target.X, target.Y)
	return w.chunk(target)
}

// AddBlock ставит блок типа blockType. Твёрдый блок не заменяется,
// изменения вне высоты мира и неизвестные типы игнорируются.
func (w *World) AddBlock(pos vec.Vec3, blockType string, chunk player.ChunkRef) {
	id, ok := block.Lookup(blockType)
	if !ok {
		w.log.Warn("Неизвестный тип блока %q", blockType)
		return
	}
	if pos.Y < 0 || pos.Y >= WorldHeight {
		return
	}

	c := w.resolveChunk(pos, chunk)
	local, _ := c.ToLocal(pos)
	if block.IsSolid(c.GetBlock(local)) {
		return
	}

	c.SetBlock(local, id)
	if behavior, exists := block.Get(id); exists {
		behavior.OnPlace(w, pos)
	}
	w.publishBlockEvent(EventBlockPlaced, pos, blockType, c.Coords)
}

// RemoveBlock убирает блок, оставляя воздух
func (w *World) RemoveBlock(pos vec.Vec3, chunk player.ChunkRef) {
	if pos.Y < 0 || pos.Y >= WorldHeight {
		return
	}

	c := w.resolveChunk(pos, chunk)
	local, _ := c.ToLocal(pos)
	id := c.GetBlock(local)
	if id == block.AirBlockID {
		return
	}

	c.SetBlock(local, block.AirBlockID)
	name := ""
	if behavior, exists := block.Get(id); exists {
		name = behavior.Name()
		behavior.OnBreak(w, pos)
	}
	w.publishBlockEvent(EventBlockBroken, pos, name, c.Coords)
}

// SurfaceHeight возвращает Y самого верхнего твёрдого блока в мировом
// столбце (x, z) или -1
func (w *World) SurfaceHeight(x, z int) int {
	pos := vec.Vec3{X: x, Z: z}
	c := w.chunk(chunkCoordFor(pos))
	local, _ := c.ToLocal(pos)
	return c.HighestSolid(local.X, local.Z)
}

// SpawnPoint ставит точку (x, z) на поверхность рельефа. Опора контроллера
// ищется на две ячейки ниже ног, поэтому Y = верхний твёрдый блок + 2.
func (w *World) SpawnPoint(x, z float64) vec.Vec3Float {
	column := vec.Vec3Float{X: x, Z: z}.Trunc()
	return vec.Vec3Float{X: x, Y: float64(w.SurfaceHeight(column.X, column.Z) + 2), Z: z}
}

// DirtyChunks возвращает чанки с несохранёнными изменениями в порядке координат
func (w *World) DirtyChunks() []*Chunk {
	w.mu.RLock()
	defer w.mu.RUnlock()

	result := make([]*Chunk, 0)
	for _, c := range w.chunks {
		if c.IsDirty() {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Coords.X != result[j].Coords.X {
			return result[i].Coords.X < result[j].Coords.X
		}
		return result[i].Coords.Y < result[j].Coords.Y
	})
	return result
}

// LoadedChunks возвращает количество загруженных чанков
func (w *World) LoadedChunks() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}
