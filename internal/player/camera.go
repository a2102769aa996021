package player

import (
	"github.com/annel0/blockverse/internal/vec"
	"github.com/go-gl/mathgl/mgl64"
)

// CameraTransform - поза камеры для рендера: поворот на -pitch вокруг X,
// затем на -yaw вокруг Y, затем перенос на -position
type CameraTransform struct {
	Position vec.Vec3Float
	Pitch    float64
	Yaw      float64
	View     mgl64.Mat4
}

// CameraTransform возвращает текущую позу камеры; состояние не меняет
func (c *Controller) CameraTransform() CameraTransform {
	rotX := mgl64.HomogRotate3DX(mgl64.DegToRad(-c.pitch))
	rotY := mgl64.HomogRotate3DY(mgl64.DegToRad(-c.yaw))
	translate := mgl64.Translate3D(-c.position.X, -c.position.Y, -c.position.Z)

	return CameraTransform{
		Position: c.position,
		Pitch:    c.pitch,
		Yaw:      c.yaw,
		View:     rotX.Mul4(rotY).Mul4(translate),
	}
}
