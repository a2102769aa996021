package player

import "github.com/annel0/blockverse/internal/vec"

// ChunkRef - непрозрачная ссылка на чанк мира, через которую адресуются
// изменения блоков
type ChunkRef interface {
	ChunkCoords() vec.Vec2
}

// WorldModel - то, что контроллеру нужно от мира. Реализуется окружающим
// приложением; контроллер хранит на него невладеющую ссылку, мир должен
// жить дольше контроллера.
type WorldModel interface {
	// BlockExists сообщает, есть ли твёрдый блок в ячейке
	BlockExists(x, y, z int) bool
	// AddBlock ставит блок типа blockType; chunk - чанк, через который
	// адресован вызов
	AddBlock(pos vec.Vec3, blockType string, chunk ChunkRef)
	// RemoveBlock убирает блок
	RemoveBlock(pos vec.Vec3, chunk ChunkRef)
	// ChunkAt возвращает чанк по координатам (round(x/size), round(z/size))
	ChunkAt(coord vec.Vec2) ChunkRef
	// BlockTypeCatalog возвращает упорядоченный список типов блоков
	BlockTypeCatalog() []string
	// ChunkSize возвращает размер чанка по горизонтали
	ChunkSize() int
}

// Observer получает уведомления о действиях игрока с блоками
type Observer interface {
	BlockBroken(pos vec.Vec3)
	BlockPlaced(pos vec.Vec3, blockType string)
}
