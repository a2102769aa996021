package metrics

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/annel0/blockverse/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// ProcessSampler периодически снимает показатели процесса через gopsutil
type ProcessSampler struct {
	proc      *process.Process
	startTime time.Time

	cpuPercent prometheus.Gauge
	rssBytes   prometheus.Gauge
	goroutines prometheus.Gauge
}

// NewProcessSampler создаёт сэмплер для текущего процесса
func NewProcessSampler(reg prometheus.Registerer) (*ProcessSampler, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("process: %w", err)
	}

	ps := &ProcessSampler{
		proc:      proc,
		startTime: time.Now(),
		cpuPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_cpu_percent",
			Help:      "Использование CPU процессом, %.",
		}),
		rssBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_rss_bytes",
			Help:      "Резидентная память процесса.",
		}),
		goroutines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "goroutines",
			Help:      "Количество горутин.",
		}),
	}

	reg.MustRegister(ps.cpuPercent, ps.rssBytes, ps.goroutines)
	return ps, nil
}

// Sample обновляет gauges один раз
func (ps *ProcessSampler) Sample() error {
	cpuPercent, err := ps.proc.CPUPercent()
	if err != nil {
		// Если не удалось получить метрику процесса, берём системную
		cpuPercents, sysErr := cpu.Percent(0, false)
		if sysErr != nil || len(cpuPercents) == 0 {
			return fmt.Errorf("cpu: %w", err)
		}
		cpuPercent = cpuPercents[0]
	}
	ps.cpuPercent.Set(cpuPercent)

	mem, err := ps.proc.MemoryInfo()
	if err != nil {
		return fmt.Errorf("memory: %w", err)
	}
	ps.rssBytes.Set(float64(mem.RSS))
	ps.goroutines.Set(float64(runtime.NumGoroutine()))
	return nil
}

// Run снимает показатели с интервалом до отмены контекста
func (ps *ProcessSampler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := ps.Sample(); err != nil {
				logging.Warn("Не удалось снять метрики процесса: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Uptime возвращает время работы в читаемом виде
func (ps *ProcessSampler) Uptime() string {
	uptime := time.Since(ps.startTime)

	hours := int(uptime.Hours())
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	default:
		return fmt.Sprintf("%dс", seconds)
	}
}
