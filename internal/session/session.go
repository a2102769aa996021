// Package session связывает контроллер игрока, мир, источник ввода и
// хранилища в цикл фиксированных тиков.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/observability"
	"github.com/annel0/blockverse/internal/player"
	"github.com/annel0/blockverse/internal/replay"
	"github.com/annel0/blockverse/internal/storage"
	"github.com/annel0/blockverse/internal/world"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ChunkSaver сохраняет изменённые чанки мира
type ChunkSaver interface {
	SaveDirty(w *world.World) (int, error)
}

// TickObserver получает длительность каждого тика
type TickObserver interface {
	ObserveTick(elapsed time.Duration, falling bool)
}

// Session - один игрок в одном мире
type Session struct {
	id         string
	controller *player.Controller
	world      *world.World
	source     InputSource

	chunks   ChunkSaver
	poses    storage.PoseRepo
	playerID string
	recorder *replay.Recorder
	ticks    TickObserver

	tickInterval     time.Duration
	autosaveInterval time.Duration
	lastSave         time.Time
	tick             uint64

	tracer trace.Tracer
	log    *logging.Logger
}

// Option настраивает сессию
type Option func(*Session)

// WithChunkSaver включает сохранение чанков
func WithChunkSaver(saver ChunkSaver) Option {
	return func(s *Session) { s.chunks = saver }
}

// WithPoseRepo включает сохранение позы игрока playerID
func WithPoseRepo(repo storage.PoseRepo, playerID string) Option {
	return func(s *Session) {
		s.poses = repo
		s.playerID = playerID
	}
}

// WithRecorder записывает каждый обработанный кадр
func WithRecorder(r *replay.Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithTickObserver подключает метрики тиков
func WithTickObserver(o TickObserver) Option {
	return func(s *Session) { s.ticks = o }
}

// WithTickInterval задаёт длительность тика для Run
func WithTickInterval(d time.Duration) Option {
	return func(s *Session) { s.tickInterval = d }
}

// WithAutosave задаёт период автосохранения; 0 - только при Close
func WithAutosave(d time.Duration) Option {
	return func(s *Session) { s.autosaveInterval = d }
}

// New создаёт сессию
func New(controller *player.Controller, w *world.World, source InputSource, opts ...Option) *Session {
	s := &Session{
		id:           uuid.NewString(),
		controller:   controller,
		world:        w,
		source:       source,
		tickInterval: time.Second / 60,
		lastSave:     time.Now(),
		tracer:       observability.Tracer("session"),
		log:          logging.GetSessionLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID возвращает идентификатор сессии
func (s *Session) ID() string { return s.id }

// Tick возвращает число обработанных тиков
func (s *Session) Tick() uint64 { return s.tick }

// Controller возвращает контроллер игрока
func (s *Session) Controller() *player.Controller { return s.controller }

// RestorePose переносит игрока в сохранённую позу. Возвращает false, если
// позы нет (первый вход) или репозиторий не подключён.
func (s *Session) RestorePose(ctx context.Context) (bool, error) {
	if s.poses == nil {
		return false, nil
	}

	pose, err := s.poses.Load(ctx, s.playerID)
	if errors.Is(err, storage.ErrPoseNotFound) {
		s.log.Info("Игрок %s входит впервые", s.playerID)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("загрузка позы %s: %w", s.playerID, err)
	}

	s.controller.Restore(pose)
	s.log.Info("Поза игрока %s восстановлена: (%.2f, %.2f, %.2f)",
		s.playerID, pose.Position.X, pose.Position.Y, pose.Position.Z)
	return true, nil
}

// Step выполняет ровно один тик: поворот камеры, затем Update.
// Возвращает replay.ErrEndOfReplay, когда источник исчерпан.
func (s *Session) Step(ctx context.Context) error {
	frame, err := s.source.Next()
	if err != nil {
		return err
	}

	start := time.Now()
	if frame.PointerDX != 0 || frame.PointerDY != 0 {
		s.controller.OnPointerMove(frame.PointerDX, frame.PointerDY)
	}
	s.controller.Update(frame.Input)

	if s.ticks != nil {
		s.ticks.ObserveTick(time.Since(start), s.controller.Falling())
	}

	if s.recorder != nil {
		frame.Tick = s.tick
		if err := s.recorder.Record(frame); err != nil {
			s.log.Warn("Не удалось записать кадр: %v", err)
		}
	}
	s.tick++

	if s.autosaveInterval > 0 && time.Since(s.lastSave) >= s.autosaveInterval {
		if err := s.Save(ctx); err != nil {
			s.log.Error("Ошибка автосохранения: %v", err)
		}
	}
	return nil
}

// Run тикает с фиксированным интервалом до отмены контекста или конца
// записи. Оба случая - штатное завершение.
func (s *Session) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	s.log.Info("▶️ Сессия %s запущена (тик %v)", s.id, s.tickInterval)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("⏹ Сессия %s остановлена на тике %d", s.id, s.tick)
			return nil
		case <-ticker.C:
			if err := s.Step(ctx); err != nil {
				if errors.Is(err, replay.ErrEndOfReplay) {
					s.log.Info("Запись закончилась на тике %d", s.tick)
					return nil
				}
				return fmt.Errorf("тик %d: %w", s.tick, err)
			}
		}
	}
}

// Save сохраняет изменённые чанки и позу игрока
func (s *Session) Save(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "session.save",
		trace.WithAttributes(
			attribute.String("session.id", s.id),
			attribute.Int64("session.tick", int64(s.tick)),
		))
	defer span.End()

	s.lastSave = time.Now()
	var errs []error

	if s.chunks != nil {
		saved, err := s.chunks.SaveDirty(s.world)
		span.SetAttributes(attribute.Int("chunks.saved", saved))
		if err != nil {
			errs = append(errs, err)
		}
	}

	if s.poses != nil {
		if err := s.poses.Save(ctx, s.playerID, s.controller.Pose()); err != nil {
			errs = append(errs, err)
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	s.log.Debug("💾 Сессия %s сохранена на тике %d", s.id, s.tick)
	return nil
}

// Close выполняет финальное сохранение и закрывает запись
func (s *Session) Close(ctx context.Context) error {
	err := s.Save(ctx)
	if s.recorder != nil {
		if rerr := s.recorder.Close(); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}
	return err
}
