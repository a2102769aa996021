package eventbus

import (
	"context"

	"github.com/annel0/blockverse/internal/logging"
)

// StartLoggingListener подписывается на все события и пишет их в лог сессии.
// Функция неблокирующая.
func StartLoggingListener(ctx context.Context, bus EventBus) (Subscription, error) {
	log := logging.GetSessionLogger()
	sub, err := bus.Subscribe(ctx, Filter{}, func(ctx context.Context, ev *Envelope) {
		log.Debug("[EventBus] %s %s src=%s prio=%d payload=%s", ev.ID, ev.EventType, ev.Source, ev.Priority, ev.Payload)
	})
	if err != nil {
		return nil, err
	}
	log.Info("🪵 LoggingListener: подписка на все события активирована")
	return sub, nil
}
