package notifier

import (
	"context"
	"errors"
	"time"

	"tableside/order-svc/internal/domain"

	"go.uber.org/zap"
)

type StatusChannel interface {
	PublishStatus(ctx context.Context, event domain.StatusEvent) error
	Listen(ctx context.Context, handle func(domain.StatusEvent), onError func(error), ready chan<- struct{}) error
}

// RedisRelay fans status events out to every service instance. Events reach
// local subscribers only through Run, so each instance sees the same stream.
type RedisRelay struct {
	Channel StatusChannel
	Hub     *Hub
	logger  *zap.Logger
}

func NewRedisRelay(channel StatusChannel, hub *Hub, logger *zap.Logger) *RedisRelay {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRelay{Channel: channel, Hub: hub, logger: logger}
}

// PublishStatus falls back to local delivery when the channel is down, so
// subscribers on this instance still observe the change.
func (r *RedisRelay) PublishStatus(ctx context.Context, event domain.StatusEvent) error {
	if err := r.Channel.PublishStatus(ctx, event); err != nil {
		r.logger.Warn("Failed to relay status event, delivering locally",
			zap.Int("order_id", event.OrderID),
			zap.String("status", string(event.Status)),
			zap.Error(err))
		r.Hub.Publish(event)
		return err
	}
	return nil
}

func (r *RedisRelay) Subscribe(orderID int, fn func(domain.StatusEvent)) func() {
	return r.Hub.Subscribe(orderID, fn)
}

var ErrRelayNotReady = errors.New("status relay did not subscribe in time")

// Start runs the relay in the background and returns once its subscription
// is live, so no event published afterwards is missed. The returned channel
// yields the result of Run.
func (r *RedisRelay) Start(ctx context.Context, timeout time.Duration) (<-chan error, error) {
	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, ready) }()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ready:
		return done, nil
	case err := <-done:
		if err == nil {
			err = ErrRelayNotReady
		}
		return nil, err
	case <-timer.C:
		return done, ErrRelayNotReady
	}
}

// Run blocks until ctx is cancelled.
func (r *RedisRelay) Run(ctx context.Context, ready chan<- struct{}) error {
	r.logger.Info("Starting status relay")
	err := r.Channel.Listen(ctx, r.Hub.Publish, func(err error) {
		if errors.Is(err, domain.ErrEventsMissed) {
			r.logger.Warn("Status subscription re-established, events may have been missed", zap.Error(err))
			return
		}
		r.logger.Warn("Skipping malformed status event", zap.Error(err))
	}, ready)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
