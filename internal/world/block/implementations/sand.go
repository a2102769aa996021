package implementations

import (
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

// sandFallLimit ограничивает падение песка за одну установку
const sandFallLimit = 64

// SandBehavior реализует поведение песка: он осыпается вниз до опоры
type SandBehavior struct {
	block.Base
}

// ID возвращает идентификатор блока
func (b *SandBehavior) ID() block.BlockID {
	return block.SandBlockID
}

// Name возвращает имя блока
func (b *SandBehavior) Name() string {
	return "Sand"
}

// OnPlace опускает песок, пока под ним нет твёрдого блока
func (b *SandBehavior) OnPlace(api block.BlockAPI, pos vec.Vec3) {
	current := pos
	for i := 0; i < sandFallLimit; i++ {
		below := vec.Vec3{X: current.X, Y: current.Y - 1, Z: current.Z}
		if below.Y < 0 || block.IsSolid(api.GetBlockID(below)) {
			break
		}
		current = below
	}

	if current != pos {
		api.SetBlock(pos, block.AirBlockID)
		api.SetBlock(current, block.SandBlockID)
	}
	smotherBelow(api, current)
}
