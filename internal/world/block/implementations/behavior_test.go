package implementations

import (
	"testing"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/stretchr/testify/assert"
)

// mockBlockAPI реализует block.BlockAPI для тестирования
type mockBlockAPI struct {
	blocks map[vec.Vec3]block.BlockID
}

func newMockBlockAPI() *mockBlockAPI {
	return &mockBlockAPI{blocks: make(map[vec.Vec3]block.BlockID)}
}

func (m *mockBlockAPI) GetBlockID(pos vec.Vec3) block.BlockID {
	if id, exists := m.blocks[pos]; exists {
		return id
	}
	return block.AirBlockID
}

func (m *mockBlockAPI) SetBlock(pos vec.Vec3, id block.BlockID) {
	if id == block.AirBlockID {
		delete(m.blocks, pos)
		return
	}
	m.blocks[pos] = id
}

func TestCatalogOrder(t *testing.T) {
	assert.Equal(t,
		[]string{"Stone", "Dirt", "Grass", "Sand", "Water", "Wood", "Planks"},
		block.Catalog(),
		"каталог должен идти в порядке ID и не содержать воздух")
}

func TestSolidity(t *testing.T) {
	assert.True(t, block.IsSolid(block.StoneBlockID))
	assert.False(t, block.IsSolid(block.AirBlockID))
	assert.False(t, block.IsSolid(block.WaterBlockID), "вода не твёрдая")
	assert.False(t, block.IsSolid(block.BlockID(999)), "неизвестный ID считается пустым")

	id, ok := block.Lookup("Planks")
	assert.True(t, ok)
	assert.Equal(t, block.PlanksBlockID, id)
}

func TestSandFalls(t *testing.T) {
	api := newMockBlockAPI()
	api.SetBlock(vec.Vec3{Y: 10}, block.StoneBlockID)

	pos := vec.Vec3{Y: 15}
	api.SetBlock(pos, block.SandBlockID)
	(&SandBehavior{}).OnPlace(api, pos)

	assert.Equal(t, block.AirBlockID, api.GetBlockID(pos), "исходная ячейка должна освободиться")
	assert.Equal(t, block.SandBlockID, api.GetBlockID(vec.Vec3{Y: 11}), "песок должен лечь на камень")
}

func TestSolidBlockSmothersGrass(t *testing.T) {
	api := newMockBlockAPI()
	api.SetBlock(vec.Vec3{Y: 4}, block.GrassBlockID)

	pos := vec.Vec3{Y: 5}
	api.SetBlock(pos, block.StoneBlockID)
	(&StoneBehavior{}).OnPlace(api, pos)

	assert.Equal(t, block.DirtBlockID, api.GetBlockID(vec.Vec3{Y: 4}))
}

func TestGrassUnderSolidTurnsToDirt(t *testing.T) {
	api := newMockBlockAPI()
	api.SetBlock(vec.Vec3{X: 1, Y: 6}, block.DirtBlockID)

	pos := vec.Vec3{X: 1, Y: 5}
	api.SetBlock(pos, block.GrassBlockID)
	(&GrassBehavior{}).OnPlace(api, pos)

	assert.Equal(t, block.DirtBlockID, api.GetBlockID(pos))
}
