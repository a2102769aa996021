package vec

import "math"

// Vec3 представляет ячейку воксельной сетки (целочисленные координаты)
type Vec3 struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Vec3Float представляет точку или направление в мировых единицах
type Vec3Float struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// ToFloat переводит ячейку в мировые координаты её центра
func (v Vec3) ToFloat() Vec3Float {
	return Vec3Float{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// Add складывает два вектора
func (v Vec3Float) Add(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub вычитает вектор
func (v Vec3Float) Sub(other Vec3Float) Vec3Float {
	return Vec3Float{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Mul умножает вектор на скаляр
func (v Vec3Float) Mul(scalar float64) Vec3Float {
	return Vec3Float{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

// RoundEven возвращает ближайшую ячейку сетки; половинки округляются к
// чётному (0.5 -> 0, 2.5 -> 2)
func (v Vec3Float) RoundEven() Vec3 {
	return Vec3{
		X: int(math.RoundToEven(v.X)),
		Y: int(math.RoundToEven(v.Y)),
		Z: int(math.RoundToEven(v.Z)),
	}
}

// Trunc отбрасывает дробную часть каждой координаты (к нулю)
func (v Vec3Float) Trunc() Vec3 {
	return Vec3{X: int(v.X), Y: int(v.Y), Z: int(v.Z)}
}

// Frac возвращает дробную часть координат относительно Trunc.
// Для отрицательных координат части отрицательны.
func (v Vec3Float) Frac() Vec3Float {
	return Vec3Float{
		X: v.X - math.Trunc(v.X),
		Y: v.Y - math.Trunc(v.Y),
		Z: v.Z - math.Trunc(v.Z),
	}
}

// Horizontal возвращает проекцию на плоскость XZ
func (v Vec3Float) Horizontal() Vec2Float {
	return Vec2Float{X: v.X, Y: v.Z}
}
