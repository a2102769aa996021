package world

import (
	"context"
	"encoding/json"
	"time"

	"github.com/annel0/blockverse/internal/eventbus"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/google/uuid"
)

// Типы событий мира в шине
const (
	EventBlockPlaced = "BlockPlaced"
	EventBlockBroken = "BlockBroken"
)

// blockEventPriority - низкий приоритет: при переполнении шины событие
// отбрасывается, а не блокирует тик
const blockEventPriority = 3

// BlockEventPayload - полезная нагрузка событий изменения блока
type BlockEventPayload struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Z      int    `json:"z"`
	Block  string `json:"block"`
	ChunkX int    `json:"chunk_x"`
	ChunkZ int    `json:"chunk_z"`
}

// publishBlockEvent отправляет событие изменения блока, если шина подключена
func (w *World) publishBlockEvent(eventType string, pos vec.Vec3, blockName string, chunk vec.Vec2) {
	if w.bus == nil {
		return
	}

	payload, err := json.Marshal(BlockEventPayload{
		X: pos.X, Y: pos.Y, Z: pos.Z,
		Block:  blockName,
		ChunkX: chunk.X, ChunkZ: chunk.Y,
	})
	if err != nil {
		w.log.Error("Ошибка сериализации события %s: %v", eventType, err)
		return
	}

	ev := &eventbus.Envelope{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Source:    w.source,
		EventType: eventType,
		Version:   1,
		Priority:  blockEventPriority,
		Payload:   payload,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := w.bus.Publish(ctx, ev); err != nil {
		w.log.Warn("Не удалось опубликовать %s: %v", eventType, err)
	}
}
