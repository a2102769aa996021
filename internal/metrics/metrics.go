// Package metrics экспортирует метрики песочницы в Prometheus.
package metrics

import (
	"time"

	"github.com/annel0/blockverse/internal/player"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "blockverse"

// GameMetrics содержит метрики тиков и действий игрока.
// Реализует player.Observer.
type GameMetrics struct {
	ticks        prometheus.Counter
	tickDuration prometheus.Histogram
	placed       *prometheus.CounterVec
	broken       prometheus.Counter
	falling      prometheus.Gauge
}

// NewGameMetrics создаёт метрики и регистрирует их в reg
func NewGameMetrics(reg prometheus.Registerer) *GameMetrics {
	m := &GameMetrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Общее число тиков контроллера.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Длительность одного тика.",
			Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
		}),
		placed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_placed_total",
			Help:      "Блоков поставлено игроком.",
		}, []string{"block"}),
		broken: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_broken_total",
			Help:      "Блоков разрушено игроком.",
		}),
		falling: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "player_falling",
			Help:      "1, если аватар в воздухе.",
		}),
	}

	reg.MustRegister(m.ticks, m.tickDuration, m.placed, m.broken, m.falling)
	return m
}

// ObserveTick учитывает завершённый тик
func (m *GameMetrics) ObserveTick(elapsed time.Duration, falling bool) {
	m.ticks.Inc()
	m.tickDuration.Observe(elapsed.Seconds())
	if falling {
		m.falling.Set(1)
	} else {
		m.falling.Set(0)
	}
}

// BlockPlaced учитывает установку блока
func (m *GameMetrics) BlockPlaced(pos vec.Vec3, blockType string) {
	m.placed.WithLabelValues(blockType).Inc()
}

// BlockBroken учитывает разрушение блока
func (m *GameMetrics) BlockBroken(pos vec.Vec3) {
	m.broken.Inc()
}

var _ player.Observer = (*GameMetrics)(nil)
