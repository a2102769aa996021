package session

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/annel0/blockverse/internal/observability"
	"github.com/annel0/blockverse/internal/player"
	"github.com/annel0/blockverse/internal/replay"
	"github.com/annel0/blockverse/internal/storage"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// newTestSession создаёт игрока, стоящего на плоском мире с поверхностью на y=10
func newTestSession(t *testing.T, source InputSource, opts ...Option) (*Session, *world.World) {
	t.Helper()
	w := world.New(world.FlatGenerator{Height: 10, Top: block.GrassBlockID})
	settings := player.DefaultSettings()
	settings.Spawn = vec.Vec3Float{X: 0, Y: 12, Z: 0}
	ctrl := player.NewController(w, settings)
	return New(ctrl, w, source, opts...), w
}

// lookDownAndBreak смотрит вертикально вниз и ломает блок под прицелом
var lookDownAndBreak = replay.Frame{PointerDY: -720, Input: player.InputState{Break: true}}

type countingObserver struct {
	ticks int
}

func (o *countingObserver) ObserveTick(time.Duration, bool) { o.ticks++ }

type failingSaver struct{}

func (failingSaver) SaveDirty(*world.World) (int, error) {
	return 0, errors.New("диск переполнен")
}

func TestStepRunsOneTick(t *testing.T) {
	obs := &countingObserver{}
	s, w := newTestSession(t, NewScriptSource(lookDownAndBreak), WithTickObserver(obs))

	require.NoError(t, s.Step(context.Background()))
	assert.Equal(t, uint64(1), s.Tick())
	assert.Equal(t, 1, obs.ticks)

	pitch, _ := s.Controller().Orientation()
	assert.Equal(t, -90.0, pitch)
	assert.False(t, w.BlockExists(0, 10, -2), "блок под прицелом разрушен")
	assert.False(t, s.Controller().Falling())

	assert.ErrorIs(t, s.Step(context.Background()), replay.ErrEndOfReplay)
	assert.Equal(t, uint64(1), s.Tick())
}

func TestRunStopsAtEndOfReplay(t *testing.T) {
	frames := []replay.Frame{{}, {}, {Input: player.InputState{Jump: true}}}
	s, _ := newTestSession(t, NewScriptSource(frames...), WithTickInterval(time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Run(ctx))
	assert.Equal(t, uint64(3), s.Tick())
}

func TestRunStopsOnCancel(t *testing.T) {
	s, _ := newTestSession(t, &IdleSource{}, WithTickInterval(time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, s.Run(ctx))
	assert.Greater(t, s.Tick(), uint64(0))
}

func TestSaveAndRestore(t *testing.T) {
	ws, err := storage.NewWorldStorage(t.TempDir())
	require.NoError(t, err)
	defer ws.Close()
	poses := storage.NewMemoryPoseRepo()

	s, w := newTestSession(t, NewScriptSource(lookDownAndBreak),
		WithChunkSaver(ws), WithPoseRepo(poses, "alice"))

	restored, err := s.RestorePose(context.Background())
	require.NoError(t, err)
	assert.False(t, restored, "первый вход")

	require.NoError(t, s.Step(context.Background()))
	require.NoError(t, s.Close(context.Background()))
	assert.Empty(t, w.DirtyChunks())

	pose, err := poses.Load(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, -90.0, pose.Pitch)

	delta, err := ws.LoadChunk(vec.Vec2{})
	require.NoError(t, err)
	assert.Len(t, delta.Blocks, 1)

	// Новая сессия на том же репозитории восстанавливает позу
	next, _ := newTestSession(t, &IdleSource{}, WithPoseRepo(poses, "alice"))
	restored, err = next.RestorePose(context.Background())
	require.NoError(t, err)
	assert.True(t, restored)
	pitch, _ := next.Controller().Orientation()
	assert.Equal(t, -90.0, pitch)
}

func TestAutosave(t *testing.T) {
	poses := storage.NewMemoryPoseRepo()
	s, _ := newTestSession(t, &IdleSource{},
		WithPoseRepo(poses, "bob"), WithAutosave(time.Nanosecond))

	require.NoError(t, s.Step(context.Background()))
	assert.Equal(t, 1, poses.Count())
}

func TestSaveErrorIsTraced(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	shutdown, err := observability.InitWithExporter(context.Background(), "session-test", exp)
	require.NoError(t, err)
	defer shutdown(context.Background())

	s, _ := newTestSession(t, &IdleSource{}, WithChunkSaver(failingSaver{}))
	assert.Error(t, s.Save(context.Background()))

	spans := exp.GetSpans()
	require.NotEmpty(t, spans)
	last := spans[len(spans)-1]
	assert.Equal(t, "session.save", last.Name)
	assert.NotEmpty(t, last.Events, "ошибка записана в спан")
}

func TestRecorderCapturesFrames(t *testing.T) {
	var buf bytes.Buffer
	rec, err := replay.NewRecorder(&buf)
	require.NoError(t, err)

	frames := []replay.Frame{
		{Tick: 100, Input: player.InputState{Forward: true}},
		{Tick: 200, PointerDX: 8},
	}
	s, _ := newTestSession(t, NewScriptSource(frames...), WithRecorder(rec))
	require.NoError(t, s.Step(context.Background()))
	require.NoError(t, s.Step(context.Background()))
	require.NoError(t, s.Close(context.Background()))

	p, err := replay.NewPlayer(&buf)
	require.NoError(t, err)
	defer p.Close()

	first, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), first.Tick, "тики перенумерованы сессией")
	assert.True(t, first.Input.Forward)

	second, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), second.Tick)
	assert.Equal(t, 8.0, second.PointerDX)
}

func TestReplayIsDeterministic(t *testing.T) {
	frames := []replay.Frame{
		{Input: player.InputState{Forward: true, Sprint: true}, PointerDX: 40},
		{Input: player.InputState{Jump: true}},
		{Input: player.InputState{Right: true}},
		{PointerDY: -200, Input: player.InputState{Place: true}},
		{},
	}

	run := func() player.Pose {
		s, _ := newTestSession(t, NewScriptSource(frames...))
		for {
			if err := s.Step(context.Background()); err != nil {
				require.ErrorIs(t, err, replay.ErrEndOfReplay)
				break
			}
		}
		return s.Controller().Pose()
	}

	assert.Equal(t, run(), run())
}
