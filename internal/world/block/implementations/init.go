package implementations

import "github.com/annel0/blockverse/internal/world/block"

// Регистрируем все типы блоков при импорте пакета
func init() {
	block.Register(&AirBehavior{})
	block.Register(&StoneBehavior{})
	block.Register(&DirtBehavior{})
	block.Register(&GrassBehavior{})
	block.Register(&SandBehavior{})
	block.Register(&WaterBehavior{})
	block.Register(&WoodBehavior{})
	block.Register(&PlanksBehavior{})
}
