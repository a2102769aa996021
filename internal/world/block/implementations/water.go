package implementations

import (
	"github.com/annel0/blockverse/internal/world/block"
)

// WaterBehavior реализует поведение воды. Вода не твёрдая: луч и коллизии
// проходят сквозь неё.
type WaterBehavior struct {
	block.Base
}

// ID возвращает идентификатор блока
func (b *WaterBehavior) ID() block.BlockID {
	return block.WaterBlockID
}

// Name возвращает имя блока
func (b *WaterBehavior) Name() string {
	return "Water"
}

// IsSolid возвращает false
func (b *WaterBehavior) IsSolid() bool {
	return false
}
