package block

import "sort"

var (
	registry = make(map[BlockID]BlockBehavior)
	byName   = make(map[string]BlockID)
)

// Register добавляет поведение блока в регистр
func Register(behavior BlockBehavior) {
	registry[behavior.ID()] = behavior
	byName[behavior.Name()] = behavior.ID()
}

// Get возвращает поведение для указанного ID
func Get(id BlockID) (BlockBehavior, bool) {
	behavior, exists := registry[id]
	return behavior, exists
}

// Lookup возвращает ID блока по имени из каталога
func Lookup(name string) (BlockID, bool) {
	id, exists := byName[name]
	return id, exists
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func IsValidBlockID(id BlockID) bool {
	_, exists := registry[id]
	return exists
}

// IsSolid сообщает, твёрдый ли блок. Незарегистрированные ID считаются пустыми.
func IsSolid(id BlockID) bool {
	behavior, exists := registry[id]
	return exists && behavior.IsSolid()
}

// Catalog возвращает имена блоков, которые игрок может ставить, в порядке ID
func Catalog() []string {
	ids := make([]BlockID, 0, len(registry))
	for id, behavior := range registry {
		if behavior.Placeable() {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = registry[id].Name()
	}
	return names
}

// BlockID представляет идентификатор блока
type BlockID uint16

// Константы ID блоков
const (
	AirBlockID    BlockID = iota // 0
	StoneBlockID                 // 1
	DirtBlockID                  // 2
	GrassBlockID                 // 3
	SandBlockID                  // 4
	WaterBlockID                 // 5
	WoodBlockID                  // 6
	PlanksBlockID                // 7
)
