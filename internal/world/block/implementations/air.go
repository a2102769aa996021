package implementations

import (
	"github.com/annel0/blockverse/internal/world/block"
)

// AirBehavior реализует поведение пустого блока (воздуха)
type AirBehavior struct {
	block.Base
}

// ID возвращает идентификатор блока
func (b *AirBehavior) ID() block.BlockID {
	return block.AirBlockID
}

// Name возвращает имя блока
func (b *AirBehavior) Name() string {
	return "Air"
}

// IsSolid возвращает false, сквозь воздух можно пройти
func (b *AirBehavior) IsSolid() bool {
	return false
}

// Placeable возвращает false, воздух не ставят, его получают ломанием
func (b *AirBehavior) Placeable() bool {
	return false
}
