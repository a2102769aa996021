package session

import (
	"github.com/annel0/blockverse/internal/replay"
)

// InputSource выдаёт ввод очередного тика. replay.ErrEndOfReplay
// завершает сессию.
type InputSource interface {
	Next() (replay.Frame, error)
}

// IdleSource бесконечно выдаёт пустой ввод
type IdleSource struct {
	tick uint64
}

// Next возвращает пустой кадр
func (s *IdleSource) Next() (replay.Frame, error) {
	f := replay.Frame{Tick: s.tick}
	s.tick++
	return f, nil
}

// ScriptSource выдаёт заранее заданные кадры, затем ErrEndOfReplay
type ScriptSource struct {
	frames []replay.Frame
	pos    int
}

// NewScriptSource создаёт источник из списка кадров
func NewScriptSource(frames ...replay.Frame) *ScriptSource {
	return &ScriptSource{frames: frames}
}

// Next возвращает следующий кадр
func (s *ScriptSource) Next() (replay.Frame, error) {
	if s.pos >= len(s.frames) {
		return replay.Frame{}, replay.ErrEndOfReplay
	}
	f := s.frames[s.pos]
	s.pos++
	return f, nil
}

var (
	_ InputSource = (*IdleSource)(nil)
	_ InputSource = (*ScriptSource)(nil)
	_ InputSource = (*replay.Player)(nil)
)
