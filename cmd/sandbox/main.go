package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/blockverse/internal/config"
	"github.com/annel0/blockverse/internal/eventbus"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/metrics"
	"github.com/annel0/blockverse/internal/observability"
	"github.com/annel0/blockverse/internal/player"
	"github.com/annel0/blockverse/internal/replay"
	"github.com/annel0/blockverse/internal/session"
	"github.com/annel0/blockverse/internal/storage"
	"github.com/annel0/blockverse/internal/world"
	"github.com/annel0/blockverse/internal/world/block"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (по умолчанию GAME_CONFIG)")
	replayPath := flag.String("replay", "", "воспроизвести ввод из файла записи")
	recordPath := flag.String("record", "", "записать ввод в файл")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	if *replayPath != "" {
		cfg.Session.ReplayPath = *replayPath
	}
	if *recordPath != "" {
		cfg.Session.RecordPath = *recordPath
	}

	// === ЛОГИРОВАНИЕ ===
	logging.Configure(cfg.Logging.Dir,
		logging.ParseLevel(cfg.Logging.ConsoleLevel),
		logging.ParseLevel(cfg.Logging.FileLevel))
	if err := logging.InitDefaultLogger("sandbox"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	logging.Info("🎮 Запуск песочницы blockverse (seed=%d)", cfg.World.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error("❌ %v", err)
		logging.CloseDefaultLogger()
		os.Exit(1)
	}
	logging.Info("👋 Песочница остановлена")
}

func run(ctx context.Context, cfg *config.Config) error {
	// === ТЕЛЕМЕТРИЯ ===
	if cfg.Telemetry.Enabled {
		shutdown, err := observability.InitTelemetry(ctx, cfg.Telemetry.ServiceName)
		if err != nil {
			logging.Warn("⚠️ OpenTelemetry не инициализирован: %v", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	// === МЕТРИКИ ===
	reg := prometheus.NewRegistry()
	gameMetrics := metrics.NewGameMetrics(reg)
	if sampler, err := metrics.NewProcessSampler(reg); err != nil {
		logging.Warn("⚠️ Метрики процесса недоступны: %v", err)
	} else {
		go sampler.Run(ctx, 5*time.Second)
	}
	go func() {
		if err := metrics.Serve(ctx, cfg.Server.GetMetricsPort(), reg); err != nil {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()

	// === ШИНА СОБЫТИЙ ===
	bus := newEventBus(cfg.EventBus)
	defer bus.Close()
	eventbus.Init(bus)
	if _, err := eventbus.StartLoggingListener(ctx, bus); err != nil {
		logging.Warn("⚠️ LoggingListener не запущен: %v", err)
	}
	exporter := eventbus.NewMetricsExporter(bus, reg)
	exporter.Start(time.Second)
	defer exporter.Stop()

	// === МИР ===
	worldStorage, err := storage.NewWorldStorage(cfg.World.DataPath)
	if err != nil {
		return err
	}
	defer worldStorage.Close()

	var generator world.Generator = world.NewPerlinGenerator(cfg.World.Seed)
	if cfg.World.Flat {
		generator = world.FlatGenerator{Height: world.DefaultBaseHeight, Top: block.GrassBlockID}
	}
	// События блоков уходят в глобальную шину, заданную eventbus.Init выше
	w := world.New(generator, world.WithLoader(worldStorage))

	poses, backend := storage.NewPoseRepo(ctx, storage.PoseRepoConfig{
		Backend: cfg.Storage.Backend,
		Redis: &storage.RedisConfig{
			Addr:      cfg.Storage.RedisAddr,
			DB:        cfg.Storage.RedisDB,
			KeyPrefix: storage.DefaultRedisConfig().KeyPrefix,
			TTL:       storage.DefaultRedisConfig().TTL,
		},
		MariaDSN: cfg.Storage.MariaDSN,
	})
	defer poses.Close()
	logging.Info("💾 Хранилище поз: %s", backend)

	// === ИГРОК ===
	settings := cfg.Player.Settings()
	settings.Spawn = w.SpawnPoint(settings.Spawn.X, settings.Spawn.Z)
	logging.Info("🧍 Точка появления: (%.2f, %.2f, %.2f)", settings.Spawn.X, settings.Spawn.Y, settings.Spawn.Z)
	ctrl := player.NewController(w, settings, player.WithObserver(gameMetrics))

	source, closeSource, err := newInputSource(cfg.Session)
	if err != nil {
		return err
	}
	defer closeSource()

	opts := []session.Option{
		session.WithChunkSaver(worldStorage),
		session.WithPoseRepo(poses, cfg.Player.ID),
		session.WithTickObserver(gameMetrics),
		session.WithTickInterval(cfg.Session.TickInterval()),
		session.WithAutosave(cfg.Session.AutosaveInterval()),
	}
	if cfg.Session.RecordPath != "" {
		rec, err := replay.CreateRecorder(cfg.Session.RecordPath)
		if err != nil {
			return err
		}
		opts = append(opts, session.WithRecorder(rec))
		logging.Info("⏺ Ввод записывается в %s", cfg.Session.RecordPath)
	}

	s := session.New(ctrl, w, source, opts...)
	if _, err := s.RestorePose(ctx); err != nil {
		logging.Warn("⚠️ %v", err)
	}

	if err := s.Run(ctx); err != nil {
		s.Close(context.Background())
		return err
	}

	pos := ctrl.Position()
	logging.Info("Итог: тиков %d, позиция (%.2f, %.2f, %.2f), чанков загружено %d",
		s.Tick(), pos.X, pos.Y, pos.Z, w.LoadedChunks())
	return s.Close(context.Background())
}

// newEventBus подключается к JetStream, если задан URL; иначе шина в памяти
func newEventBus(cfg config.EventBusConfig) eventbus.EventBus {
	if cfg.URL != "" {
		bus, err := eventbus.NewJetStreamBus(cfg.URL, cfg.Stream, cfg.RetentionDuration())
		if err == nil {
			logging.Info("📨 EventBus: JetStream %s (stream=%s)", cfg.URL, cfg.Stream)
			return bus
		}
		logging.Warn("⚠️ JetStream недоступен, используем шину в памяти: %v", err)
	}
	return eventbus.NewMemoryBus(cfg.Buffer)
}

// newInputSource выбирает воспроизведение записи или пустой ввод
func newInputSource(cfg config.SessionConfig) (session.InputSource, func(), error) {
	if cfg.ReplayPath == "" {
		logging.Info("Источник ввода: пустой ввод до сигнала завершения")
		return &session.IdleSource{}, func() {}, nil
	}

	p, err := replay.OpenPlayer(cfg.ReplayPath)
	if err != nil {
		return nil, nil, err
	}
	logging.Info("▶️ Воспроизведение %s", cfg.ReplayPath)
	return p, func() { p.Close() }, nil
}
