package player

import (
	"github.com/annel0/blockverse/internal/physics"
	"github.com/annel0/blockverse/internal/vec"
)

// Targeting - блок под прицелом и пустая ячейка перед ним.
// Либо заданы обе (Valid), либо ни одной.
type Targeting struct {
	Block vec.Vec3
	Site  vec.Vec3
	Valid bool
}

// HitTest марширует луч от position вдоль vector не более maxDistance шагов
// и обновляет цель. Первое попадание выигрывает; без попадания цель
// сбрасывается.
func (c *Controller) HitTest(position, vector vec.Vec3Float, maxDistance int) Targeting {
	hit, ok := physics.MarchRay(position, vector, maxDistance, c.solidAt)
	if !ok {
		c.target = Targeting{}
		return c.target
	}

	c.target = Targeting{Block: hit.Block, Site: hit.Site, Valid: true}
	return c.target
}

// Target возвращает текущую цель
func (c *Controller) Target() Targeting {
	return c.target
}
