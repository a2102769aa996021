// Package replay записывает и воспроизводит ввод контроллера по тикам.
// Контроллер детерминирован, поэтому запись ввода полностью
// восстанавливает сессию на том же мире.
package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/annel0/blockverse/internal/player"
	"github.com/klauspost/compress/zstd"
)

// ErrEndOfReplay возвращается, когда кадры закончились
var ErrEndOfReplay = errors.New("replay: конец записи")

// Frame - ввод одного тика
type Frame struct {
	Tick      uint64            `json:"tick"`
	Input     player.InputState `json:"input"`
	PointerDX float64           `json:"dx,omitempty"`
	PointerDY float64           `json:"dy,omitempty"`
}

// Recorder пишет кадры как JSON-строки в поток zstd
type Recorder struct {
	zw     *zstd.Encoder
	enc    *json.Encoder
	closer io.Closer
	frames uint64
}

// NewRecorder создаёт запись поверх w. Close не закрывает w.
func NewRecorder(w io.Writer) (*Recorder, error) {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	return &Recorder{zw: zw, enc: json.NewEncoder(zw)}, nil
}

// CreateRecorder создаёт файл записи
func CreateRecorder(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("создание записи %s: %w", path, err)
	}
	r, err := NewRecorder(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Record дописывает кадр
func (r *Recorder) Record(f Frame) error {
	if err := r.enc.Encode(f); err != nil {
		return fmt.Errorf("запись кадра %d: %w", f.Tick, err)
	}
	r.frames++
	return nil
}

// Frames возвращает количество записанных кадров
func (r *Recorder) Frames() uint64 {
	return r.frames
}

// Close дописывает поток zstd и закрывает файл, если он открыт рекордером
func (r *Recorder) Close() error {
	err := r.zw.Close()
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Player читает кадры записи по одному
type Player struct {
	zr     *zstd.Decoder
	dec    *json.Decoder
	closer io.Closer
}

// NewPlayer читает запись из r
func NewPlayer(r io.Reader) (*Player, error) {
	zr, err := zstd.NewReader(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	return &Player{zr: zr, dec: json.NewDecoder(zr)}, nil
}

// OpenPlayer открывает файл записи
func OpenPlayer(path string) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("открытие записи %s: %w", path, err)
	}
	p, err := NewPlayer(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	p.closer = f
	return p, nil
}

// Next возвращает следующий кадр или ErrEndOfReplay
func (p *Player) Next() (Frame, error) {
	var f Frame
	if err := p.dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, ErrEndOfReplay
		}
		return Frame{}, fmt.Errorf("чтение кадра: %w", err)
	}
	return f, nil
}

// Close освобождает декодер и файл
func (p *Player) Close() error {
	p.zr.Close()
	if p.closer != nil {
		return p.closer.Close()
	}
	return nil
}
