package physics

import "github.com/annel0/blockverse/internal/vec"

// RayHit - результат дискретного луча: первая твёрдая ячейка и ячейка
// перед ней (куда можно поставить блок)
type RayHit struct {
	Block vec.Vec3
	Site  vec.Vec3
}

// MarchRay двигает точку из origin шагами direction не более maxSteps раз.
// На каждом шаге точка округляется до ближайшей ячейки (половинки к
// чётному, как и прокрутка колеса); если ячейка
// отличается от предыдущей и твёрдая, марш останавливается.
//
// Это дискретное приближение: тонкие препятствия между шагами пропускаются.
// Если твёрдая ячейка встречена на первом же шаге (глаз внутри блока),
// предыдущей ячейки нет и результат считается промахом.
func MarchRay(origin, direction vec.Vec3Float, maxSteps int, solid SolidChecker) (RayHit, bool) {
	point := origin
	var previous vec.Vec3
	hasPrevious := false

	for i := 0; i < maxSteps; i++ {
		cell := point.RoundEven()
		if (!hasPrevious || cell != previous) && solid(cell) {
			if !hasPrevious {
				return RayHit{}, false
			}
			return RayHit{Block: cell, Site: previous}, true
		}
		previous = cell
		hasPrevious = true
		point = point.Add(direction)
	}

	return RayHit{}, false
}
