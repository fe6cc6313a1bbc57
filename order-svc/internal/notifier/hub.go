// Package notifier delivers order status changes to per-order subscribers.
//
// Each subscription owns a FIFO queue and a delivery goroutine, so callbacks
// for one subscription run one at a time in publish order. Events carrying a
// version older than the last one delivered are dropped; equal versions are
// delivered again and consumers must apply them idempotently.
package notifier

import (
	"context"
	"sync"

	"tableside/order-svc/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Hub struct {
	mu     sync.Mutex
	subs   map[int]map[string]*subscription
	closed bool
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		subs:   make(map[int]map[string]*subscription),
		logger: logger,
	}
}

// Subscribe registers fn for every later status change of orderID. The
// returned function cancels the subscription and is safe to call repeatedly.
func (h *Hub) Subscribe(orderID int, fn func(domain.StatusEvent)) func() {
	sub := newSubscription(orderID, fn, h.logger)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		sub.stop()
		return func() {}
	}
	if h.subs[orderID] == nil {
		h.subs[orderID] = make(map[string]*subscription)
	}
	h.subs[orderID][sub.id] = sub
	h.mu.Unlock()

	go sub.run()

	h.logger.Debug("subscribed", zap.Int("order_id", orderID), zap.String("subscription_id", sub.id))

	var once sync.Once
	return func() {
		once.Do(func() {
			h.remove(sub)
			sub.stop()
		})
	}
}

func (h *Hub) Publish(event domain.StatusEvent) {
	h.mu.Lock()
	targets := make([]*subscription, 0, len(h.subs[event.OrderID]))
	for _, sub := range h.subs[event.OrderID] {
		targets = append(targets, sub)
	}
	h.mu.Unlock()

	for _, sub := range targets {
		sub.enqueue(event)
	}
}

// PublishStatus lets the hub stand in for a relay in single-instance setups.
func (h *Hub) PublishStatus(_ context.Context, event domain.StatusEvent) error {
	h.Publish(event)
	return nil
}

func (h *Hub) Subscribers(orderID int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[orderID])
}

func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	all := h.subs
	h.subs = make(map[int]map[string]*subscription)
	h.mu.Unlock()

	for _, byID := range all {
		for _, sub := range byID {
			sub.stop()
		}
	}
}

func (h *Hub) remove(sub *subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	byID := h.subs[sub.orderID]
	delete(byID, sub.id)
	if len(byID) == 0 {
		delete(h.subs, sub.orderID)
	}
}

type subscription struct {
	id      string
	orderID int
	fn      func(domain.StatusEvent)
	logger  *zap.Logger

	mu          sync.Mutex
	cond        *sync.Cond
	queue       []domain.StatusEvent
	stopped     bool
	lastVersion int
}

func newSubscription(orderID int, fn func(domain.StatusEvent), logger *zap.Logger) *subscription {
	s := &subscription{
		id:      uuid.NewString(),
		orderID: orderID,
		fn:      fn,
		logger:  logger,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *subscription) enqueue(event domain.StatusEvent) {
	s.mu.Lock()
	if !s.stopped {
		s.queue = append(s.queue, event)
		s.cond.Signal()
	}
	s.mu.Unlock()
}

func (s *subscription) stop() {
	s.mu.Lock()
	s.stopped = true
	s.queue = nil
	s.cond.Broadcast()
	s.mu.Unlock()
}

func (s *subscription) run() {
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.stopped {
			s.cond.Wait()
		}
		if s.stopped {
			s.mu.Unlock()
			return
		}
		event := s.queue[0]
		s.queue = s.queue[1:]
		if event.Version < s.lastVersion {
			s.mu.Unlock()
			s.logger.Debug("dropping stale status event",
				zap.Int("order_id", event.OrderID),
				zap.Int("version", event.Version),
				zap.Int("last_version", s.lastVersion))
			continue
		}
		s.lastVersion = event.Version
		s.mu.Unlock()

		s.deliver(event)
	}
}

func (s *subscription) deliver(event domain.StatusEvent) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("status subscriber panicked",
				zap.Int("order_id", event.OrderID),
				zap.String("subscription_id", s.id),
				zap.Any("panic", r))
		}
	}()
	s.fn(event)
}
