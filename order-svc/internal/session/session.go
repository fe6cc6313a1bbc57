// Package session models one customer's table session: the cart built from
// the menu, the submission, and live tracking of the resulting order.
package session

import (
	"context"
	"fmt"
	"sync"

	"tableside/order-svc/internal/cart"
	"tableside/order-svc/internal/domain"
)

type OrderClient interface {
	Submit(ctx context.Context, req domain.SubmitOrderRequest) (*domain.SubmitResult, error)
	Subscribe(ctx context.Context, orderID int, fn func(domain.StatusEvent)) (*domain.Order, func(), error)
}

type TableSession struct {
	Cart *cart.Cart

	// OnStatus, if set, observes every applied status change.
	OnStatus func(domain.StatusEvent)

	client OrderClient
	token  string

	mu          sync.Mutex
	orderID     int
	status      domain.OrderStatus
	version     int
	unsubscribe func()
}

func New(restaurantID, tableNumber int, token string, client OrderClient) *TableSession {
	return &TableSession{
		Cart:   cart.New(restaurantID, tableNumber),
		client: client,
		token:  token,
	}
}

// Submit sends the cart as a new order. On any error before the order is
// recorded the cart is left as it was. Once recorded the cart is cleared,
// even if tracking then fails; in that case both the result and an error are
// returned. Callers must not retry Submit on their own.
func (s *TableSession) Submit(ctx context.Context, customerName, notes string) (*domain.SubmitResult, error) {
	if s.Cart.IsEmpty() {
		return nil, &domain.ValidationError{Reason: "cart is empty"}
	}

	result, err := s.client.Submit(ctx, domain.SubmitOrderRequest{
		RestaurantID: s.Cart.RestaurantID,
		TableNumber:  s.Cart.TableNumber,
		Lines:        s.Cart.Lines(),
		CustomerName: customerName,
		Notes:        notes,
		Token:        s.token,
	})
	if err != nil {
		return nil, err
	}
	s.Cart.Clear()

	s.mu.Lock()
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.orderID = result.OrderID
	s.status = result.Status
	s.version = 0
	s.unsubscribe = nil
	s.mu.Unlock()

	order, unsubscribe, err := s.client.Subscribe(ctx, result.OrderID, s.apply)
	if err != nil {
		return result, fmt.Errorf("order %d placed but status tracking failed: %w", result.OrderID, err)
	}

	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()
	s.apply(order.StatusEvent())

	return result, nil
}

func (s *TableSession) Status() (int, domain.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderID, s.status
}

// Leave stops tracking. The order itself is unaffected.
func (s *TableSession) Leave() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (s *TableSession) apply(event domain.StatusEvent) {
	s.mu.Lock()
	if event.OrderID != s.orderID || event.Version < s.version {
		s.mu.Unlock()
		return
	}
	s.status = event.Status
	s.version = event.Version
	onStatus := s.OnStatus
	s.mu.Unlock()

	if onStatus != nil {
		onStatus(event)
	}
}
