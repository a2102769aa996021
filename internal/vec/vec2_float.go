package vec

import "math"

// Vec2Float представляет 2D вектор с плавающей точкой.
// Для горизонтальной скорости игрока X соответствует оси X мира, Y - оси Z.
type Vec2Float struct {
	X, Y float64
}

// Add складывает два вектора
func (v Vec2Float) Add(other Vec2Float) Vec2Float {
	return Vec2Float{X: v.X + other.X, Y: v.Y + other.Y}
}

// Mul умножает вектор на скаляр
func (v Vec2Float) Mul(scalar float64) Vec2Float {
	return Vec2Float{X: v.X * scalar, Y: v.Y * scalar}
}

// Length возвращает длину вектора
func (v Vec2Float) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}
