package eventbus

import (
	"context"
	"sync"
	"time"
)

// Envelope описывает универсальный контейнер события.
type Envelope struct {
	ID            string            `json:"id"`      // Глобально уникальный идентификатор (UUID).
	Timestamp     time.Time         `json:"ts"`      // Время создания события (UTC).
	Source        string            `json:"source"`  // Имя источника (мир, сессия).
	EventType     string            `json:"type"`    // Тип события (BlockPlaced, BlockBroken…).
	Version       int               `json:"version"` // Версия схемы полезной нагрузки.
	CorrelationID string            `json:"correlation_id,omitempty"`
	Priority      int               `json:"priority"` // 0=Low … 9=Critical (для backpressure).
	Payload       []byte            `json:"payload"`  // JSON полезной нагрузки.
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// Filter позволяет подписаться только на нужные события.
type Filter struct {
	Types   []string // Если пусто - все типы.
	Sources []string // Если пусто - все источники.
}

// Subscription возвращается при подписке; позволяет отписаться.
type Subscription interface {
	Unsubscribe()
}

// Handler потребляет события.
type Handler func(ctx context.Context, ev *Envelope)

// Stats агрегированные метрики шины.
type Stats struct {
	Published uint64
	Consumed  uint64
	Dropped   uint64
	InFlight  int
}

// EventBus определяет абстракцию шины событий.
type EventBus interface {
	Publish(ctx context.Context, ev *Envelope) error
	Subscribe(ctx context.Context, f Filter, h Handler) (Subscription, error)
	Metrics() Stats
	Close() error
}

//================ In-Memory implementation =================//

// highPriority - события с приоритетом ниже отбрасываются при полном буфере
const highPriority = 5

type memoryBus struct {
	mu          sync.RWMutex
	sendMu      sync.RWMutex
	subscribers map[int]subscriber
	nextID      int
	stats       Stats
	buffer      chan *Envelope
	closed      bool
	done        chan struct{}
	handlers    sync.WaitGroup
}

type subscriber struct {
	filter  Filter
	handler Handler
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewMemoryBus создаёт in-memory шину с указанным буфером.
func NewMemoryBus(capacity int) EventBus {
	if capacity <= 0 {
		capacity = 1
	}
	mb := &memoryBus{
		subscribers: make(map[int]subscriber),
		buffer:      make(chan *Envelope, capacity),
		done:        make(chan struct{}),
	}
	go mb.dispatchLoop()
	return mb
}

func (mb *memoryBus) Publish(ctx context.Context, ev *Envelope) error {
	// sendMu не даёт Close закрыть буфер во время отправки
	mb.sendMu.RLock()
	defer mb.sendMu.RUnlock()
	if mb.closed {
		return ErrBusClosed
	}

	select {
	case mb.buffer <- ev:
		mb.countPublished()
		return nil
	default:
		// Буфер заполнен - низкий приоритет отбрасываем
		if ev.Priority < highPriority {
			mb.mu.Lock()
			mb.stats.Dropped++
			mb.mu.Unlock()
			return nil
		}
		select {
		case mb.buffer <- ev:
			mb.countPublished()
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (mb *memoryBus) countPublished() {
	mb.mu.Lock()
	mb.stats.Published++
	mb.mu.Unlock()
}

func (mb *memoryBus) Subscribe(ctx context.Context, f Filter, h Handler) (Subscription, error) {
	mb.sendMu.RLock()
	closed := mb.closed
	mb.sendMu.RUnlock()
	if closed {
		return nil, ErrBusClosed
	}

	mb.mu.Lock()
	defer mb.mu.Unlock()

	id := mb.nextID
	mb.nextID++
	cctx, cancel := context.WithCancel(ctx)
	mb.subscribers[id] = subscriber{filter: f, handler: h, ctx: cctx, cancel: cancel}

	return &memSub{bus: mb, id: id}, nil
}

func (mb *memoryBus) Metrics() Stats {
	mb.mu.RLock()
	defer mb.mu.RUnlock()
	s := mb.stats
	s.InFlight = len(mb.buffer)
	return s
}

// Close прекращает приём событий, дожидается доставки буфера и отменяет подписки.
func (mb *memoryBus) Close() error {
	mb.sendMu.Lock()
	if mb.closed {
		mb.sendMu.Unlock()
		return nil
	}
	mb.closed = true
	close(mb.buffer)
	mb.sendMu.Unlock()

	<-mb.done
	mb.handlers.Wait()

	mb.mu.Lock()
	for id, sub := range mb.subscribers {
		sub.cancel()
		delete(mb.subscribers, id)
	}
	mb.mu.Unlock()
	return nil
}

// dispatchLoop рассылает события подписчикам.
func (mb *memoryBus) dispatchLoop() {
	defer close(mb.done)
	for ev := range mb.buffer {
		ev := ev // per-iteration copy (go directive is 1.21)
		mb.mu.RLock()
		subs := make([]subscriber, 0, len(mb.subscribers))
		for _, sub := range mb.subscribers {
			subs = append(subs, sub)
		}
		mb.mu.RUnlock()

		for _, sub := range subs {
			if !matchFilter(ev, sub.filter) {
				continue
			}
			mb.handlers.Add(1)
			go func(s subscriber) {
				defer mb.handlers.Done()
				select {
				case <-s.ctx.Done():
					return
				default:
					s.handler(s.ctx, ev)
					mb.mu.Lock()
					mb.stats.Consumed++
					mb.mu.Unlock()
				}
			}(sub)
		}
	}
}

func matchFilter(ev *Envelope, f Filter) bool {
	match := func(val string, arr []string) bool {
		if len(arr) == 0 {
			return true
		}
		for _, v := range arr {
			if v == val {
				return true
			}
		}
		return false
	}
	return match(ev.EventType, f.Types) && match(ev.Source, f.Sources)
}

type memSub struct {
	bus *memoryBus
	id  int
}

func (s *memSub) Unsubscribe() {
	s.bus.mu.Lock()
	if sub, ok := s.bus.subscribers[s.id]; ok {
		sub.cancel()
		delete(s.bus.subscribers, s.id)
	}
	s.bus.mu.Unlock()
}
