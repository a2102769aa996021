package world

import (
	"sync"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

// Размеры чанка
const (
	ChunkSize   = 16  // по X и Z
	WorldHeight = 256 // по Y
)

// Chunk представляет столб мира ChunkSize x WorldHeight x ChunkSize.
// Чанк с координатами (cx, cz) покрывает мировые X в [16cx-8, 16cx+8),
// то есть ровно те X, для которых round(x/16) = cx.
type Chunk struct {
	Coords vec.Vec2 // Координаты чанка (X мира, Z мира)

	// blocks[x][y][z] в локальных координатах
	blocks [ChunkSize][WorldHeight][ChunkSize]block.BlockID

	changes       map[vec.Vec3]struct{} // Изменённые ячейки (локальные) с последнего сохранения
	changeCounter int
	mu            sync.RWMutex
}

// NewChunk создаёт пустой (воздух) чанк с указанными координатами
func NewChunk(coords vec.Vec2) *Chunk {
	return &Chunk{
		Coords:  coords,
		changes: make(map[vec.Vec3]struct{}),
	}
}

// ChunkCoords возвращает координаты чанка
func (c *Chunk) ChunkCoords() vec.Vec2 {
	return c.Coords
}

// ToLocal переводит мировые координаты в локальные. Второе значение false,
// если ячейка не принадлежит чанку или лежит вне высоты мира.
func (c *Chunk) ToLocal(pos vec.Vec3) (vec.Vec3, bool) {
	origin := c.Coords.ChunkOrigin(ChunkSize)
	local := vec.Vec3{X: pos.X - origin.X, Y: pos.Y, Z: pos.Z - origin.Y}
	return local, inBounds(local)
}

// ToWorld переводит локальные координаты в мировые
func (c *Chunk) ToWorld(local vec.Vec3) vec.Vec3 {
	origin := c.Coords.ChunkOrigin(ChunkSize)
	return vec.Vec3{X: local.X + origin.X, Y: local.Y, Z: local.Z + origin.Y}
}

// Contains проверяет, лежит ли мировая ячейка в этом чанке
func (c *Chunk) Contains(pos vec.Vec3) bool {
	_, ok := c.ToLocal(pos)
	return ok
}

func inBounds(local vec.Vec3) bool {
	return local.X >= 0 && local.X < ChunkSize &&
		local.Y >= 0 && local.Y < WorldHeight &&
		local.Z >= 0 && local.Z < ChunkSize
}

// GetBlock возвращает ID блока по локальным координатам; вне чанка - воздух
func (c *Chunk) GetBlock(local vec.Vec3) block.BlockID {
	if !inBounds(local) {
		return block.AirBlockID
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.blocks[local.X][local.Y][local.Z]
}

// SetBlock устанавливает блок по локальным координатам и отмечает изменение
func (c *Chunk) SetBlock(local vec.Vec3, id block.BlockID) {
	if !inBounds(local) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.blocks[local.X][local.Y][local.Z] == id {
		return
	}
	c.blocks[local.X][local.Y][local.Z] = id
	c.changes[local] = struct{}{}
	c.changeCounter++
}

// fill устанавливает блок без учёта изменений (генерация, загрузка)
func (c *Chunk) fill(local vec.Vec3, id block.BlockID) {
	if !inBounds(local) {
		return
	}
	c.mu.Lock()
	c.blocks[local.X][local.Y][local.Z] = id
	c.mu.Unlock()
}

// Restore применяет сохранённое состояние ячейки. Изменение считается уже
// сохранённым и в список изменений не попадает.
func (c *Chunk) Restore(local vec.Vec3, id block.BlockID) {
	c.fill(local, id)
}

// IsDirty сообщает, есть ли несохранённые изменения
func (c *Chunk) IsDirty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.changes) > 0
}

// ChangeCounter возвращает общее число изменений с момента создания
func (c *Chunk) ChangeCounter() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.changeCounter
}

// ChangedBlocks возвращает текущие ID изменённых ячеек (локальные координаты)
func (c *Chunk) ChangedBlocks() map[vec.Vec3]block.BlockID {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[vec.Vec3]block.BlockID, len(c.changes))
	for local := range c.changes {
		result[local] = c.blocks[local.X][local.Y][local.Z]
	}
	return result
}

// ClearChanges очищает список изменений после сохранения
func (c *Chunk) ClearChanges() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.changes = make(map[vec.Vec3]struct{})
}

// HighestSolid возвращает Y самого верхнего твёрдого блока в столбце
// локальных (x, z) или -1, если столбец пуст
func (c *Chunk) HighestSolid(x, z int) int {
	if x < 0 || x >= ChunkSize || z < 0 || z >= ChunkSize {
		return -1
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for y := WorldHeight - 1; y >= 0; y-- {
		if block.IsSolid(c.blocks[x][y][z]) {
			return y
		}
	}
	return -1
}
