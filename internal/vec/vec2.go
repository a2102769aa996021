package vec

import "math"

// Vec2 представляет 2D координаты на горизонтальной плоскости (X, Z мира)
type Vec2 struct {
	X, Y int
}

// RoundHalfUp округляет к ближайшему целому, половинки вверх.
// Используется везде, где мировая координата переводится в координату чанка,
// чтобы границы чанков не зависели от знака.
func RoundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// ChunkCoordOf возвращает координаты чанка для мировых X и Z:
// (round(x/size), round(z/size))
func ChunkCoordOf(x, z float64, size int) Vec2 {
	s := float64(size)
	return Vec2{X: RoundHalfUp(x / s), Y: RoundHalfUp(z / s)}
}

// ChunkOrigin возвращает минимальную мировую координату X/Z, покрываемую чанком
func (v Vec2) ChunkOrigin(size int) Vec2 {
	half := size / 2
	return Vec2{X: v.X*size - half, Y: v.Y*size - half}
}

// DistanceTo вычисляет расстояние до другой точки
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := float64(v.X - other.X)
	dy := float64(v.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
