package player

import (
	"github.com/annel0/blockverse/internal/physics"
	"github.com/annel0/blockverse/internal/vec"
)

// Pose - сохраняемая часть состояния игрока
type Pose struct {
	Position vec.Vec3Float `json:"position"`
	Pitch    float64       `json:"pitch"`
	Yaw      float64       `json:"yaw"`
	Block    string        `json:"block,omitempty"`
}

// Pose возвращает текущую позу
func (c *Controller) Pose() Pose {
	return Pose{
		Position: c.position,
		Pitch:    c.pitch,
		Yaw:      c.yaw,
		Block:    c.CurrentBlockType(),
	}
}

// Restore переносит аватар в сохранённую позу. Скорости и состояние
// прошлого тика (падение, соседство, цель) сбрасываются до следующего
// Update; pitch ограничивается, неизвестный тип блока оставляет курсор на месте.
func (c *Controller) Restore(p Pose) {
	c.position = p.Position
	c.pitch = clamp(p.Pitch, MinPitch, MaxPitch)
	c.yaw = p.Yaw
	c.velocity = vec.Vec2Float{}
	c.verticalVelocity = 0
	c.falling = false
	c.adjacency = physics.Adjacency{}
	c.target = Targeting{}

	for i, name := range c.catalog {
		if name == p.Block {
			c.cursor = i
			break
		}
	}
}
