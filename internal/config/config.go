package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/annel0/blockverse/internal/player"
	"github.com/annel0/blockverse/internal/vec"
	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации песочницы.
type Config struct {
	Player    PlayerConfig    `yaml:"player"`
	World     WorldConfig     `yaml:"world"`
	Storage   StorageConfig   `yaml:"storage"`
	EventBus  EventBusConfig  `yaml:"eventbus"`
	Session   SessionConfig   `yaml:"session"`
	Server    ServerConfig    `yaml:"server"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// PlayerConfig - физические константы контроллера
type PlayerConfig struct {
	ID               string     `yaml:"id"`
	Speed            float64    `yaml:"speed"`
	SprintSpeed      float64    `yaml:"sprint_speed"`
	Gravity          float64    `yaml:"gravity"`
	JumpImpulse      float64    `yaml:"jump_impulse"`
	TerminalVelocity float64    `yaml:"terminal_velocity"`
	HitRange         int        `yaml:"hit_range"`
	Friction         float64    `yaml:"friction"`
	Spawn            [3]float64 `yaml:"spawn"` // Y поднимается на поверхность рельефа при старте
}

type WorldConfig struct {
	Seed     int64  `yaml:"seed"`
	DataPath string `yaml:"data_path"`
	// Flat включает плоский мир вместо шума Перлина
	Flat bool `yaml:"flat"`
}

type StorageConfig struct {
	Backend   string `yaml:"backend"` // memory | redis | maria
	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`
	MariaDSN  string `yaml:"maria_dsn"`
}

type EventBusConfig struct {
	URL       string `yaml:"url"` // пусто - шина в памяти
	Stream    string `yaml:"stream"`
	Retention int    `yaml:"retention_hours"`
	Buffer    int    `yaml:"buffer"`
}

type SessionConfig struct {
	TickRate        int    `yaml:"tick_rate"`
	AutosaveSeconds int    `yaml:"autosave_seconds"`
	ReplayPath      string `yaml:"replay_path"`
	RecordPath      string `yaml:"record_path"`
}

type ServerConfig struct {
	MetricsPort int `yaml:"metrics_port"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

type LoggingConfig struct {
	Dir          string `yaml:"dir"`
	ConsoleLevel string `yaml:"console_level"`
	FileLevel    string `yaml:"file_level"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	s := player.DefaultSettings()
	return &Config{
		Player: PlayerConfig{
			ID:               "local",
			Speed:            s.Speed,
			SprintSpeed:      s.SprintSpeed,
			Gravity:          s.Gravity,
			JumpImpulse:      s.JumpImpulse,
			TerminalVelocity: s.TerminalVelocity,
			HitRange:         s.HitRange,
			Friction:         s.Friction,
			Spawn:            [3]float64{s.Spawn.X, s.Spawn.Y, s.Spawn.Z},
		},
		World: WorldConfig{
			Seed:     1,
			DataPath: "data",
		},
		Storage: StorageConfig{
			Backend:   "memory",
			RedisAddr: "localhost:6379",
		},
		EventBus: EventBusConfig{
			Stream:    "BLOCKVERSE",
			Retention: 24,
			Buffer:    1024,
		},
		Session: SessionConfig{
			TickRate:        60,
			AutosaveSeconds: 30,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "blockverse",
		},
		Logging: LoggingConfig{
			Dir:          "logs",
			ConsoleLevel: "INFO",
			FileLevel:    "DEBUG",
		},
	}
}

// Settings переводит секцию player в настройки контроллера
func (p PlayerConfig) Settings() player.Settings {
	s := player.DefaultSettings()
	s.Speed = p.Speed
	s.SprintSpeed = p.SprintSpeed
	s.Gravity = p.Gravity
	s.JumpImpulse = p.JumpImpulse
	s.TerminalVelocity = p.TerminalVelocity
	s.HitRange = p.HitRange
	s.Friction = p.Friction
	s.Spawn = vec.Vec3Float{X: p.Spawn[0], Y: p.Spawn[1], Z: p.Spawn[2]}
	return s
}

// TickInterval возвращает длительность одного тика
func (s SessionConfig) TickInterval() time.Duration {
	if s.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(s.TickRate)
}

// AutosaveInterval возвращает период автосохранения; 0 - выключено
func (s SessionConfig) AutosaveInterval() time.Duration {
	if s.AutosaveSeconds <= 0 {
		return 0
	}
	return time.Duration(s.AutosaveSeconds) * time.Second
}

// RetentionDuration возвращает срок хранения событий в стриме
func (e EventBusConfig) RetentionDuration() time.Duration {
	return time.Duration(e.Retention) * time.Hour
}

// GetMetricsPort возвращает порт Prometheus метрик с поддержкой fallback значений
func (s *ServerConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(s.MetricsPort, "GAME_METRICS_PORT", 2112)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Load читает YAML файл конфигурации поверх Default().
// Если path == "", используется ENV GAME_CONFIG; если и он пуст - только дефолты.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("GAME_CONFIG")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}

	return cfg, nil
}
