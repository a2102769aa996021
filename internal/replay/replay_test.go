package replay

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/annel0/blockverse/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFrames() []Frame {
	return []Frame{
		{Tick: 0, Input: player.InputState{Forward: true}},
		{Tick: 1, Input: player.InputState{Forward: true, Sprint: true}, PointerDX: 16, PointerDY: -8},
		{Tick: 2, Input: player.InputState{Jump: true, Scroll: -1}},
		{Tick: 3, Input: player.InputState{Place: true}},
	}
}

func TestRecordAndPlayInMemory(t *testing.T) {
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf)
	require.NoError(t, err)
	for _, f := range sampleFrames() {
		require.NoError(t, rec.Record(f))
	}
	assert.Equal(t, uint64(4), rec.Frames())
	require.NoError(t, rec.Close())

	p, err := NewPlayer(&buf)
	require.NoError(t, err)
	defer p.Close()

	var got []Frame
	for {
		f, err := p.Next()
		if errors.Is(err, ErrEndOfReplay) {
			break
		}
		require.NoError(t, err)
		got = append(got, f)
	}
	assert.Equal(t, sampleFrames(), got)

	_, err = p.Next()
	assert.ErrorIs(t, err, ErrEndOfReplay, "повторное чтение после конца")
}

func TestRecordAndPlayFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.replay")

	rec, err := CreateRecorder(path)
	require.NoError(t, err)
	require.NoError(t, rec.Record(Frame{Tick: 7, Input: player.InputState{Break: true}}))
	require.NoError(t, rec.Close())

	p, err := OpenPlayer(path)
	require.NoError(t, err)
	defer p.Close()

	f, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), f.Tick)
	assert.True(t, f.Input.Break)

	_, err = p.Next()
	assert.ErrorIs(t, err, ErrEndOfReplay)
}

func TestEmptyRecording(t *testing.T) {
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf)
	require.NoError(t, err)
	require.NoError(t, rec.Close())

	p, err := NewPlayer(&buf)
	require.NoError(t, err)
	_, err = p.Next()
	assert.ErrorIs(t, err, ErrEndOfReplay)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := OpenPlayer(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
