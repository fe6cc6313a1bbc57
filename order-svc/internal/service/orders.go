package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableside/order-svc/internal/domain"

	"go.uber.org/zap"
)

const paymentPending = "pending"

type OrderService struct {
	repo       OrderRepository
	statuses   StatusPublisher
	subscriber StatusSubscriber
	events     EventPublisher
	tables     TableQRInterface
	logger     *zap.Logger
}

func NewOrderService(
	repo OrderRepository,
	statuses StatusPublisher,
	subscriber StatusSubscriber,
	events EventPublisher,
	tables TableQRInterface,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		repo:       repo,
		statuses:   statuses,
		subscriber: subscriber,
		events:     events,
		tables:     tables,
		logger:     logger,
	}
}

func (s *OrderService) ResolveTable(ctx context.Context, restaurantID, tableNumber int) (*domain.RestaurantTable, error) {
	table, err := s.repo.ResolveTable(ctx, restaurantID, tableNumber)
	if err != nil {
		return nil, err
	}
	if s.tables != nil {
		if link, err := s.tables.Link(restaurantID, tableNumber); err == nil {
			table.QRLink = link
		}
	}
	return table, nil
}

// Submit persists a table's order. It must not be retried automatically:
// every successful call creates a new order.
func (s *OrderService) Submit(ctx context.Context, req domain.SubmitOrderRequest) (*domain.SubmitResult, error) {
	if err := validateSubmit(req); err != nil {
		return nil, err
	}
	if err := s.verifyTableToken(req); err != nil {
		return nil, err
	}

	table, err := s.repo.ResolveTable(ctx, req.RestaurantID, req.TableNumber)
	if err != nil {
		return nil, err
	}

	items, total, err := s.snapshotLines(ctx, req)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		RestaurantID:  req.RestaurantID,
		TableID:       table.ID,
		TableNumber:   table.TableNumber,
		TotalAmount:   total,
		CustomerName:  req.CustomerName,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: paymentPending,
		Status:        domain.StatusReceived,
		Items:         items,
	}

	result := &domain.SubmitResult{}
	if err := s.repo.CreateOrder(ctx, order); err != nil {
		var partial *domain.PartialWriteError
		if !errors.As(err, &partial) {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		s.logger.Warn("Order recorded with incomplete line items",
			zap.Int("order_id", order.ID),
			zap.Int("written", partial.Written),
			zap.Int("expected", len(order.Items)),
			zap.Error(partial.Err))
		result.Warning = domain.ErrPartialWrite.Error()
	}

	result.OrderID = order.ID
	result.Total = order.TotalAmount
	result.Status = order.Status

	s.logger.Info("Order placed",
		zap.Int("order_id", order.ID),
		zap.Int("restaurant_id", order.RestaurantID),
		zap.Int("table_number", order.TableNumber),
		zap.Int64("total", order.TotalAmount),
		zap.Int("lines", len(order.Items)))

	s.publish(ctx, order, domain.EventOrderPlaced)
	return result, nil
}

func (s *OrderService) Get(ctx context.Context, orderID int) (*domain.Order, error) {
	return s.repo.GetOrder(ctx, orderID)
}

// Advance applies an admin or kitchen transition. Re-applying the current
// status only refreshes updated_at, and leaves served or cancelled orders
// untouched. When a concurrent writer moves the order between read and write,
// the request is re-evaluated once against the new state.
func (s *OrderService) Advance(ctx context.Context, orderID int, target domain.OrderStatus) (*domain.Order, error) {
	if _, err := domain.ParseOrderStatus(string(target)); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < 2; attempt++ {
		current, err := s.repo.GetOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}

		if current.Status == target {
			// History is sorted on updated_at.
			if target.IsTerminal() {
				return current, nil
			}
			touched, ok, err := s.repo.TouchOrder(ctx, orderID, target)
			if err != nil {
				return nil, fmt.Errorf("failed to touch order: %w", err)
			}
			if !ok {
				continue
			}
			touched.Items = current.Items
			return touched, nil
		}

		if !domain.CanTransition(current.Status, target) {
			return nil, &domain.TransitionError{OrderID: orderID, From: current.Status, To: target}
		}

		updated, ok, err := s.repo.UpdateOrderStatus(ctx, orderID, current.Status, target)
		if err != nil {
			return nil, fmt.Errorf("failed to update order status: %w", err)
		}
		if !ok {
			s.logger.Debug("Order moved concurrently, re-evaluating",
				zap.Int("order_id", orderID),
				zap.String("expected", string(current.Status)))
			continue
		}

		updated.Items = current.Items
		s.logger.Info("Order status changed",
			zap.Int("order_id", orderID),
			zap.String("from", string(current.Status)),
			zap.String("to", string(target)),
			zap.Int("version", updated.Version))
		s.publish(ctx, updated, domain.EventStatusChanged)
		return updated, nil
	}

	latest, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Giving up on contended order",
		zap.Int("order_id", orderID),
		zap.String("current", string(latest.Status)),
		zap.String("target", string(target)))
	return nil, &domain.ConflictError{OrderID: orderID, Current: latest.Status, To: target}
}

// Subscribe registers fn before reading the order so no change between the
// read and the registration is lost. The returned order is the state to
// render first; events with an older version than it can be ignored.
func (s *OrderService) Subscribe(ctx context.Context, orderID int, fn func(domain.StatusEvent)) (*domain.Order, func(), error) {
	unsubscribe := s.subscriber.Subscribe(orderID, fn)
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		unsubscribe()
		return nil, nil, err
	}
	return order, unsubscribe, nil
}

func (s *OrderService) verifyTableToken(req domain.SubmitOrderRequest) error {
	if s.tables == nil || !s.tables.Signed() {
		return nil
	}
	restaurantID, tableNumber, err := s.tables.Verify(req.Token)
	if err != nil {
		s.logger.Info("Rejected table token", zap.Int("restaurant_id", req.RestaurantID), zap.Error(err))
		return &domain.ValidationError{Reason: "table link is invalid or expired"}
	}
	if restaurantID != req.RestaurantID || tableNumber != req.TableNumber {
		return &domain.ValidationError{Reason: "table link does not match this table"}
	}
	return nil
}

// snapshotLines re-validates every line against the live menu and copies
// the current name and price into the order items.
func (s *OrderService) snapshotLines(ctx context.Context, req domain.SubmitOrderRequest) ([]domain.OrderItem, int64, error) {
	ids := make([]int, 0, len(req.Lines))
	seen := make(map[int]bool, len(req.Lines))
	for _, line := range req.Lines {
		if !seen[line.MenuItemID] {
			seen[line.MenuItemID] = true
			ids = append(ids, line.MenuItemID)
		}
	}

	live, err := s.repo.GetMenuItems(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load menu items: %w", err)
	}

	var (
		items    = make([]domain.OrderItem, 0, len(req.Lines))
		problems []domain.LineError
		total    int64
	)
	for _, line := range req.Lines {
		item, ok := live[line.MenuItemID]
		switch {
		case !ok || item.RestaurantID != req.RestaurantID:
			problems = append(problems, domain.LineError{MenuItemID: line.MenuItemID, Reason: "not on this restaurant's menu"})
			continue
		case !item.IsAvailable:
			problems = append(problems, domain.LineError{MenuItemID: line.MenuItemID, Reason: item.Name + " is currently unavailable"})
			continue
		}
		items = append(items, domain.OrderItem{
			MenuItemID: item.ID,
			ItemName:   item.Name,
			ItemPrice:  item.Price,
			Quantity:   line.Quantity,
			Note:       line.Note,
		})
		total += item.Price * int64(line.Quantity)
	}

	if len(problems) > 0 {
		return nil, 0, &domain.ValidationError{Reason: "some items cannot be ordered", Lines: problems}
	}
	return items, total, nil
}

func (s *OrderService) publish(ctx context.Context, order *domain.Order, eventType string) {
	if s.statuses != nil {
		if err := s.statuses.PublishStatus(ctx, order.StatusEvent()); err != nil {
			s.logger.Warn("Failed to publish status event", zap.Int("order_id", order.ID), zap.Error(err))
		}
	}

	if s.events == nil {
		return
	}
	msg := domain.KafkaMessage{
		Type:         eventType,
		OrderID:      order.ID,
		RestaurantID: order.RestaurantID,
		TableNumber:  order.TableNumber,
		Status:       order.Status,
		Version:      order.Version,
		TotalAmount:  order.TotalAmount,
		Timestamp:    time.Now().UTC(),
	}
	if err := s.events.PublishOrderEvent(ctx, msg); err != nil {
		s.logger.Warn("Failed to emit order event",
			zap.Int("order_id", order.ID),
			zap.String("type", eventType),
			zap.Error(err))
	}
}

func validateSubmit(req domain.SubmitOrderRequest) error {
	if req.RestaurantID <= 0 {
		return &domain.ValidationError{Reason: "restaurant_id is required"}
	}
	if req.TableNumber <= 0 {
		return &domain.ValidationError{Reason: "table_number must be positive"}
	}
	if len(req.Lines) == 0 {
		return &domain.ValidationError{Reason: "cart is empty"}
	}

	var problems []domain.LineError
	for _, line := range req.Lines {
		switch {
		case line.MenuItemID <= 0:
			problems = append(problems, domain.LineError{MenuItemID: line.MenuItemID, Reason: "menu_item_id is required"})
		case line.Quantity < 1:
			problems = append(problems, domain.LineError{MenuItemID: line.MenuItemID, Reason: "quantity must be at least 1"})
		}
	}
	if len(problems) > 0 {
		return &domain.ValidationError{Reason: "invalid order lines", Lines: problems}
	}
	return nil
}
