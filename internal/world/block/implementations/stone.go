package implementations

import (
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

// StoneBehavior реализует поведение блока камня
type StoneBehavior struct {
	block.Base
}

// ID возвращает идентификатор блока
func (b *StoneBehavior) ID() block.BlockID {
	return block.StoneBlockID
}

// Name возвращает имя блока
func (b *StoneBehavior) Name() string {
	return "Stone"
}

// OnPlace глушит траву под камнем
func (b *StoneBehavior) OnPlace(api block.BlockAPI, pos vec.Vec3) {
	smotherBelow(api, pos)
}
