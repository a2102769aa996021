package world

import (
	"github.com/annel0/blockverse/internal/util"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

// Generator заполняет только что созданный чанк
type Generator interface {
	Generate(chunk *Chunk)
}

// Константы высот для генерации
const (
	DefaultBaseHeight = 64
	DefaultAmplitude  = 12
	DefaultSeaLevel   = 60
	dirtDepth         = 3
)

// PerlinGenerator строит холмистый ландшафт по карте высот из шума Перлина:
// камень, несколько слоёв земли, трава сверху, вода ниже уровня моря.
type PerlinGenerator struct {
	noise      *util.Noise
	NoiseScale float64 // Масштаб шума (сглаженность ландшафта)
	BaseHeight int
	Amplitude  int
	SeaLevel   int
}

// NewPerlinGenerator создаёт генератор ландшафта
func NewPerlinGenerator(seed int64) *PerlinGenerator {
	return &PerlinGenerator{
		noise:      util.NewNoise(seed),
		NoiseScale: 0.03,
		BaseHeight: DefaultBaseHeight,
		Amplitude:  DefaultAmplitude,
		SeaLevel:   DefaultSeaLevel,
	}
}

// HeightAt возвращает высоту поверхности в мировом столбце (x, z)
func (g *PerlinGenerator) HeightAt(x, z int) int {
	n := g.noise.Noise2D(float64(x)*g.NoiseScale, float64(z)*g.NoiseScale)
	return g.BaseHeight + int((n-0.5)*2*float64(g.Amplitude))
}

// Generate заполняет чанк
func (g *PerlinGenerator) Generate(chunk *Chunk) {
	for lx := 0; lx < ChunkSize; lx++ {
		for lz := 0; lz < ChunkSize; lz++ {
			column := chunk.ToWorld(vec.Vec3{X: lx, Z: lz})
			height := g.HeightAt(column.X, column.Z)
			if height >= WorldHeight {
				height = WorldHeight - 1
			}

			for y := 0; y <= height; y++ {
				id := block.StoneBlockID
				switch {
				case y == height && height >= g.SeaLevel:
					id = block.GrassBlockID
				case y == height:
					id = block.SandBlockID
				case y > height-dirtDepth:
					id = block.DirtBlockID
				}
				chunk.fill(vec.Vec3{X: lx, Y: y, Z: lz}, id)
			}

			for y := height + 1; y <= g.SeaLevel; y++ {
				chunk.fill(vec.Vec3{X: lx, Y: y, Z: lz}, block.WaterBlockID)
			}
		}
	}
}

// FlatGenerator строит плоский мир: камень до Height-1 и слой Top на Height
type FlatGenerator struct {
	Height int
	Top    block.BlockID
}

// Generate заполняет чанк
func (g FlatGenerator) Generate(chunk *Chunk) {
	for lx := 0; lx < ChunkSize; lx++ {
		for lz := 0; lz < ChunkSize; lz++ {
			for y := 0; y < g.Height; y++ {
				chunk.fill(vec.Vec3{X: lx, Y: y, Z: lz}, block.StoneBlockID)
			}
			chunk.fill(vec.Vec3{X: lx, Y: g.Height, Z: lz}, g.Top)
		}
	}
}
