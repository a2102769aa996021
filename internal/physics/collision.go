package physics

import (
	"math"

	"github.com/annel0/blockverse/internal/vec"
)

// Direction задаёт направление соседней ячейки относительно игрока
type Direction int

const (
	Left Direction = iota
	Right
	Forward
	Backward
	Up
	Down

	directionCount
)

// String возвращает имя направления
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Offset возвращает единичное смещение ячейки в этом направлении.
// Forward смотрит в -Z, как камера с нулевым yaw.
func (d Direction) Offset() vec.Vec3 {
	switch d {
	case Left:
		return vec.Vec3{X: -1}
	case Right:
		return vec.Vec3{X: 1}
	case Forward:
		return vec.Vec3{Z: -1}
	case Backward:
		return vec.Vec3{Z: 1}
	case Up:
		return vec.Vec3{Y: 1}
	case Down:
		return vec.Vec3{Y: -1}
	default:
		return vec.Vec3{}
	}
}

// Adjacency хранит флаги "заблокировано" по направлениям.
// Пересчитывается целиком каждый тик, истории не хранит.
type Adjacency [directionCount]bool

// Blocked сообщает, заблокировано ли направление
func (a Adjacency) Blocked(d Direction) bool {
	if d < 0 || d >= directionCount {
		return false
	}
	return a[d]
}

// Directions возвращает заблокированные направления в порядке
// forward, backward, right, left, up, down
func (a Adjacency) Directions() []Direction {
	order := [...]Direction{Forward, Backward, Right, Left, Up, Down}
	result := make([]Direction, 0, len(order))
	for _, d := range order {
		if a[d] {
			result = append(result, d)
		}
	}
	return result
}

// SolidChecker сообщает, есть ли твёрдый блок в ячейке
type SolidChecker func(pos vec.Vec3) bool

// ProbeAdjacency опрашивает по две ячейки для каждого горизонтального
// направления: соседа на высоте тела и соседа уровнем ниже.
//
// Предикаты несимметричны: left/backward считаются свободными, если
// "соседа нет ИЛИ внизу есть блок", right/forward - если "сосед есть ИЛИ
// внизу есть блок". Для backward/forward нижняя ячейка берётся с
// противоположной стороны по Z. Up и Down никогда не выставляются.
func ProbeAdjacency(cell vec.Vec3, solid SolidChecker) Adjacency {
	at := func(dx, dy, dz int) bool {
		return solid(vec.Vec3{X: cell.X + dx, Y: cell.Y + dy, Z: cell.Z + dz})
	}

	var adj Adjacency
	adj[Left] = !(!at(-1, 0, 0) || at(-1, -1, 0))
	adj[Right] = !(at(1, 0, 0) || at(1, -1, 0))
	adj[Backward] = !(!at(0, 0, -1) || at(0, -1, 1))
	adj[Forward] = !(at(0, 0, 1) || at(0, -1, -1))
	return adj
}

// OverlapsApprox - приближённый тест пересечения куба радиуса r1 с центром c1
// и куба полуразмера r2 с центром c2. Пересечение засчитывается, если ХОТЯ
// БЫ ОДНА ось укладывается в сумму радиусов (настоящий AABB требует всех
// трёх), поэтому возможны ложные срабатывания.
func OverlapsApprox(c1 vec.Vec3Float, r1 float64, c2 vec.Vec3Float, r2 float64) bool {
	limit := r1 + r2
	return math.Abs(c1.X-c2.X) < limit ||
		math.Abs(c1.Y-c2.Y) < limit ||
		math.Abs(c1.Z-c2.Z) < limit
}

// Размеры для проверки пересечения внутри ячейки
const (
	BodyHalfExtent = 0.45
	FaceHalfExtent = 0.5
)

// Velocity - горизонтальная скорость (X мира, Z мира)
type Velocity = vec.Vec2Float

// collisionRule описывает одну грань ячейки: куда смотрит грань, какое
// направление движения в неё упирается и какую компоненту гасить.
type collisionRule struct {
	dir    Direction
	face   vec.Vec3Float
	moving func(v Velocity) bool
	stop   func(v *Velocity)
}

// collisionRules упорядочены по приоритету: срабатывает только первое.
var collisionRules = [...]collisionRule{
	{
		dir:    Forward,
		face:   vec.Vec3Float{Z: 1},
		moving: func(v Velocity) bool { return v.X < 0 },
		stop:   func(v *Velocity) { v.X = 0 },
	},
	{
		dir:    Backward,
		face:   vec.Vec3Float{Z: -1},
		moving: func(v Velocity) bool { return v.X > 0 },
		stop:   func(v *Velocity) { v.X = 0 },
	},
	{
		dir:    Left,
		face:   vec.Vec3Float{X: -1},
		moving: func(v Velocity) bool { return v.Y < 0 },
		stop:   func(v *Velocity) { v.Y = 0 },
	},
	{
		dir:    Right,
		face:   vec.Vec3Float{X: 1},
		moving: func(v Velocity) bool { return v.Y > 0 },
		stop:   func(v *Velocity) { v.Y = 0 },
	},
}

// ResolveHorizontal гасит компоненту скорости, упирающуюся в занятую грань.
// Использует только дробную часть позиции внутри ячейки. Возвращает
// направление сработавшего правила и true, либо false, если ни одно не
// сработало. Вычисление тотально: ошибок здесь быть не может.
func ResolveHorizontal(pos vec.Vec3Float, adj Adjacency, v *Velocity) (Direction, bool) {
	frac := pos.Frac()
	for _, rule := range collisionRules {
		if OverlapsApprox(frac, BodyHalfExtent, rule.face, FaceHalfExtent) &&
			rule.moving(*v) && adj[rule.dir] {
			rule.stop(v)
			return rule.dir, true
		}
	}
	return 0, false
}
