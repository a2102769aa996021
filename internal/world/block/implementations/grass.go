package implementations

import (
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

// GrassBehavior реализует поведение блока травы
type GrassBehavior struct {
	block.Base
}

// ID возвращает идентификатор блока
func (b *GrassBehavior) ID() block.BlockID {
	return block.GrassBlockID
}

// Name возвращает имя блока
func (b *GrassBehavior) Name() string {
	return "Grass"
}

// OnPlace превращает траву в землю, если сверху уже лежит твёрдый блок
func (b *GrassBehavior) OnPlace(api block.BlockAPI, pos vec.Vec3) {
	above := vec.Vec3{X: pos.X, Y: pos.Y + 1, Z: pos.Z}
	if block.IsSolid(api.GetBlockID(above)) {
		api.SetBlock(pos, block.DirtBlockID)
	}
	smotherBelow(api, pos)
}

// smotherBelow превращает траву под только что поставленным блоком в землю
func smotherBelow(api block.BlockAPI, pos vec.Vec3) {
	below := vec.Vec3{X: pos.X, Y: pos.Y - 1, Z: pos.Z}
	if api.GetBlockID(below) == block.GrassBlockID {
		api.SetBlock(below, block.DirtBlockID)
	}
}
