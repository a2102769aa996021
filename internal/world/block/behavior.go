package block

import (
	"github.com/annel0/blockverse/internal/vec"
)

// BlockBehavior определяет поведение блока
type BlockBehavior interface {
	ID() BlockID
	Name() string
	// IsSolid - участвует ли блок в коллизиях и попаданиях луча
	IsSolid() bool
	// Placeable - попадает ли блок в каталог для установки игроком
	Placeable() bool
	OnPlace(api BlockAPI, pos vec.Vec3)
	OnBreak(api BlockAPI, pos vec.Vec3)
}

// Base - поведение по умолчанию: твёрдый, ставится, без реакций.
// Встраивается в конкретные реализации.
type Base struct{}

func (Base) IsSolid() bool                      { return true }
func (Base) Placeable() bool                    { return true }
func (Base) OnPlace(api BlockAPI, pos vec.Vec3) {}
func (Base) OnBreak(api BlockAPI, pos vec.Vec3) {}
