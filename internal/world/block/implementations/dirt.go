package implementations

import (
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/block"
)

// DirtBehavior реализует поведение блока земли
type DirtBehavior struct {
	block.Base
}

// ID возвращает идентификатор блока
func (b *DirtBehavior) ID() block.BlockID {
	return block.DirtBlockID
}

// Name возвращает имя блока
func (b *DirtBehavior) Name() string {
	return "Dirt"
}

// OnPlace глушит траву под землёй
func (b *DirtBehavior) OnPlace(api block.BlockAPI, pos vec.Vec3) {
	smotherBelow(api, pos)
}
