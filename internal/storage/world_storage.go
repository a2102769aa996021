package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"
)

// ErrStorageClosed возвращается при обращении к закрытому хранилищу
var ErrStorageClosed = errors.New("хранилище не готово")

// WorldStorage хранит изменения чанков в BadgerDB.
// Значение ключа chunk:<x>:<z> - JSON ChunkDelta, сжатый zstd.
type WorldStorage struct {
	db      *badger.DB
	dbPath  string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	log     *logging.Logger
	mutex   sync.RWMutex
	isReady bool
}

// ChunkDelta содержит изменённые ячейки чанка
type ChunkDelta struct {
	Coords vec.Vec2 `json:"coords"`
	// Ключ - локальные координаты "x:y:z"
	Blocks map[string]block.BlockID `json:"blocks"`
}

// NewWorldStorage открывает (или создаёт) хранилище в <dataPath>/world
func NewWorldStorage(dataPath string) (*WorldStorage, error) {
	dbPath := filepath.Join(dataPath, "world")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		db.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}

	return &WorldStorage{
		db:      db,
		dbPath:  dbPath,
		encoder: encoder,
		decoder: decoder,
		log:     logging.GetStorageLogger(),
		isReady: true,
	}, nil
}

// Close закрывает хранилище и освобождает кодеки zstd
func (ws *WorldStorage) Close() error {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()

	if !ws.isReady {
		return nil
	}

	ws.isReady = false
	encErr := ws.encoder.Close()
	ws.decoder.Close()
	ws.encoder, ws.decoder = nil, nil
	return errors.Join(encErr, ws.db.Close())
}

func chunkKey(coords vec.Vec2) []byte {
	return []byte(fmt.Sprintf("chunk:%d:%d", coords.X, coords.Y))
}

func cellKey(local vec.Vec3) string {
	return fmt.Sprintf("%d:%d:%d", local.X, local.Y, local.Z)
}

// SaveChunk дописывает изменения чанка к сохранённой дельте и очищает их
func (ws *WorldStorage) SaveChunk(chunk *world.Chunk) error {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return ErrStorageClosed
	}

	changed := chunk.ChangedBlocks()
	if len(changed) == 0 {
		return nil
	}

	err := ws.db.Update(func(txn *badger.Txn) error {
		delta, err := ws.readDelta(txn, chunk.Coords)
		if err != nil {
			return err
		}
		for local, id := range changed {
			delta.Blocks[cellKey(local)] = id
		}

		data, err := json.Marshal(delta)
		if err != nil {
			return fmt.Errorf("ошибка сериализации дельты: %w", err)
		}
		return txn.Set(chunkKey(chunk.Coords), ws.encoder.EncodeAll(data, nil))
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения чанка (%d,%d): %w", chunk.Coords.X, chunk.Coords.Y, err)
	}

	chunk.ClearChanges()
	ws.log.Debug("Чанк (%d,%d) сохранён: %d изменений", chunk.Coords.X, chunk.Coords.Y, len(changed))
	return nil
}

// readDelta читает дельту в рамках транзакции; отсутствующий ключ даёт пустую дельту
func (ws *WorldStorage) readDelta(txn *badger.Txn, coords vec.Vec2) (*ChunkDelta, error) {
	delta := &ChunkDelta{Coords: coords, Blocks: make(map[string]block.BlockID)}

	item, err := txn.Get(chunkKey(coords))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return delta, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}

	err = item.Value(func(val []byte) error {
		data, err := ws.decoder.DecodeAll(val, nil)
		if err != nil {
			return fmt.Errorf("ошибка распаковки дельты: %w", err)
		}
		return json.Unmarshal(data, delta)
	})
	if err != nil {
		return nil, err
	}
	if delta.Blocks == nil {
		delta.Blocks = make(map[string]block.BlockID)
	}
	return delta, nil
}

// LoadChunk загружает дельту чанка; для несохранённого чанка дельта пуста
func (ws *WorldStorage) LoadChunk(coords vec.Vec2) (*ChunkDelta, error) {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return nil, ErrStorageClosed
	}

	var delta *ChunkDelta
	err := ws.db.View(func(txn *badger.Txn) error {
		var err error
		delta, err = ws.readDelta(txn, coords)
		return err
	})
	if err != nil {
		return nil, err
	}
	return delta, nil
}

// ApplyDelta применяет дельту к чанку. Некорректные ключи пропускаются.
func (ws *WorldStorage) ApplyDelta(chunk *world.Chunk, delta *ChunkDelta) {
	if delta == nil {
		return
	}

	for key, id := range delta.Blocks {
		var local vec.Vec3
		if _, err := fmt.Sscanf(key, "%d:%d:%d", &local.X, &local.Y, &local.Z); err != nil {
			ws.log.Warn("Ошибка парсинга ключа '%s': %v", key, err)
			continue
		}
		if !chunk.Contains(chunk.ToWorld(local)) {
			ws.log.Warn("Некорректные координаты в дельте: %s", key)
			continue
		}
		chunk.Restore(local, id)
	}
}

// LoadAndApplyChunk загружает и применяет дельту чанка (world.ChunkLoader)
func (ws *WorldStorage) LoadAndApplyChunk(chunk *world.Chunk) error {
	delta, err := ws.LoadChunk(chunk.Coords)
	if err != nil {
		return err
	}
	ws.ApplyDelta(chunk, delta)
	return nil
}

// SaveDirty сохраняет все изменённые чанки мира и возвращает их число
func (ws *WorldStorage) SaveDirty(w *world.World) (int, error) {
	saved := 0
	var errs []error
	for _, chunk := range w.DirtyChunks() {
		if err := ws.SaveChunk(chunk); err != nil {
			errs = append(errs, err)
			continue
		}
		saved++
	}
	return saved, errors.Join(errs...)
}

var _ world.ChunkLoader = (*WorldStorage)(nil)
