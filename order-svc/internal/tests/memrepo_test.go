package tests

import (
	"context"
	"sort"
	"sync"
	"time"

	"tableside/order-svc/internal/domain"
)

type tableKey struct {
	restaurantID int
	tableNumber  int
}

// memRepo is an in-memory order store with the same guarded-update
// semantics as the Postgres repository.
type memRepo struct {
	mu     sync.Mutex
	tables map[tableKey]domain.RestaurantTable
	items  map[int]domain.MenuItem
	orders map[int]*domain.Order
	nextID int
	clock  time.Time
}

func newMemRepo(items ...domain.MenuItem) *memRepo {
	r := &memRepo{
		tables: make(map[tableKey]domain.RestaurantTable),
		items:  make(map[int]domain.MenuItem),
		orders: make(map[int]*domain.Order),
		clock:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *memRepo) addTable(restaurantID, tableNumber int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[tableKey{restaurantID, tableNumber}] = domain.RestaurantTable{
		ID:           len(r.tables) + 1,
		RestaurantID: restaurantID,
		TableNumber:  tableNumber,
		Capacity:     4,
		Status:       domain.TableAvailable,
		IsActive:     true,
	}
}

func (r *memRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *memRepo) ResolveTable(_ context.Context, restaurantID, tableNumber int) (*domain.RestaurantTable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	table, ok := r.tables[tableKey{restaurantID, tableNumber}]
	if !ok || !table.IsActive {
		return nil, domain.ErrTableNotFound
	}
	return &table, nil
}

func (r *memRepo) GetMenuItems(_ context.Context, ids []int) (map[int]domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int]domain.MenuItem, len(ids))
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out[id] = item
		}
	}
	return out, nil
}

func (r *memRepo) CreateOrder(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := r.tick()
	order.ID = r.nextID
	order.Version = 1
	order.CreatedAt = now
	order.UpdatedAt = now
	for i := range order.Items {
		order.Items[i].ID = i + 1
		order.Items[i].OrderID = order.ID
	}
	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *memRepo) GetOrder(_ context.Context, orderID int) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (r *memRepo) UpdateOrderStatus(_ context.Context, orderID int, from, to domain.OrderStatus) (*domain.Order, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok || order.Status != from {
		return nil, false, nil
	}
	order.Status = to
	order.Version++
	order.UpdatedAt = r.tick()
	return cloneOrder(order), true, nil
}

func (r *memRepo) TouchOrder(_ context.Context, orderID int, status domain.OrderStatus) (*domain.Order, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok || order.Status != status {
		return nil, false, nil
	}
	order.UpdatedAt = r.tick()
	return cloneOrder(order), true, nil
}

func (r *memRepo) ListActiveOrders(_ context.Context, restaurantID int) ([]domain.Order, error) {
	orders := r.filter(restaurantID, domain.OrderStatus.IsActive)
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.Before(orders[j].CreatedAt) })
	return orders, nil
}

func (r *memRepo) ListTerminalOrders(_ context.Context, restaurantID, limit int) ([]domain.Order, error) {
	orders := r.filter(restaurantID, domain.OrderStatus.IsTerminal)
	sort.Slice(orders, func(i, j int) bool { return orders[i].UpdatedAt.After(orders[j].UpdatedAt) })
	if len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (r *memRepo) filter(restaurantID int, keep func(domain.OrderStatus) bool) []domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, order := range r.orders {
		if order.RestaurantID == restaurantID && keep(order.Status) {
			out = append(out, *cloneOrder(order))
		}
	}
	return out
}

func cloneOrder(order *domain.Order) *domain.Order {
	c := *order
	c.Items = append([]domain.OrderItem(nil), order.Items...)
	return &c
}
