package block

import (
	"github.com/annel0/blockverse/internal/vec"
)

// BlockAPI определяет интерфейс для взаимодействия блоков с игровым миром.
// Реакции OnPlace/OnBreak получают его, чтобы менять соседние ячейки.
type BlockAPI interface {
	// GetBlockID возвращает идентификатор блока в ячейке; вне мира - воздух.
	GetBlockID(pos vec.Vec3) BlockID

	// SetBlock устанавливает блок в ячейке без вызова реакций.
	SetBlock(pos vec.Vec3, id BlockID)
}
