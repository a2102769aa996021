package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBusDeliversMatchingEvents(t *testing.T) {
	bus := NewMemoryBus(16)

	var mu sync.Mutex
	var got []string
	_, err := bus.Subscribe(context.Background(), Filter{Types: []string{"BlockPlaced"}}, func(ctx context.Context, ev *Envelope) {
		mu.Lock()
		got = append(got, ev.ID)
		mu.Unlock()
	})
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), &Envelope{ID: "1", EventType: "BlockPlaced"}))
	require.NoError(t, bus.Publish(context.Background(), &Envelope{ID: "2", EventType: "BlockBroken"}))
	require.NoError(t, bus.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"1"}, got)

	stats := bus.Metrics()
	assert.Equal(t, uint64(2), stats.Published)
	assert.Equal(t, uint64(1), stats.Consumed)
}

func TestMemoryBusFilterBySource(t *testing.T) {
	ev := &Envelope{EventType: "BlockBroken", Source: "world"}
	assert.True(t, matchFilter(ev, Filter{}))
	assert.True(t, matchFilter(ev, Filter{Sources: []string{"world"}}))
	assert.False(t, matchFilter(ev, Filter{Sources: []string{"session"}}))
	assert.False(t, matchFilter(ev, Filter{Types: []string{"BlockPlaced"}}))
}

func TestMemoryBusPublishAfterClose(t *testing.T) {
	bus := NewMemoryBus(1)
	require.NoError(t, bus.Close())
	assert.ErrorIs(t, bus.Publish(context.Background(), &Envelope{ID: "x"}), ErrBusClosed)
	_, err := bus.Subscribe(context.Background(), Filter{}, func(context.Context, *Envelope) {})
	assert.ErrorIs(t, err, ErrBusClosed)
	assert.NoError(t, bus.Close(), "повторное закрытие")
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewMemoryBus(4)
	calls := 0
	var mu sync.Mutex
	sub, err := bus.Subscribe(context.Background(), Filter{}, func(context.Context, *Envelope) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	require.NoError(t, err)
	sub.Unsubscribe()

	require.NoError(t, bus.Publish(context.Background(), &Envelope{ID: "1"}))
	require.NoError(t, bus.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, calls)
}

func TestMetricsExporterSync(t *testing.T) {
	bus := NewMemoryBus(4)
	reg := prometheus.NewRegistry()
	exporter := NewMetricsExporter(bus, reg)
	exporter.Start(time.Hour)

	require.NoError(t, bus.Publish(context.Background(), &Envelope{ID: "1"}))
	require.NoError(t, bus.Publish(context.Background(), &Envelope{ID: "2"}))
	exporter.Stop()

	families, err := reg.Gather()
	require.NoError(t, err)
	values := make(map[string]float64)
	for _, mf := range families {
		m := mf.GetMetric()[0]
		if m.GetCounter() != nil {
			values[mf.GetName()] = m.GetCounter().GetValue()
		} else {
			values[mf.GetName()] = m.GetGauge().GetValue()
		}
	}
	assert.Equal(t, float64(2), values["eventbus_messages_published_total"])
	assert.Zero(t, values["eventbus_messages_dropped_total"])
	require.NoError(t, bus.Close())
}
