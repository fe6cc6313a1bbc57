package service

import (
	"context"

	"tableside/order-svc/internal/domain"
)

type CatalogRepository interface {
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	ListCategories(ctx context.Context, restaurantID int) ([]domain.MenuCategory, error)
	ListAvailableItems(ctx context.Context, restaurantID int) ([]domain.MenuItem, error)
}

type MenuCache interface {
	GetMenu(ctx context.Context, restaurantID int) (*domain.Menu, bool, error)
	SetMenu(ctx context.Context, menu *domain.Menu) error
	InvalidateMenu(ctx context.Context, restaurantID int) error
}

type OrderRepository interface {
	ResolveTable(ctx context.Context, restaurantID, tableNumber int) (*domain.RestaurantTable, error)
	GetMenuItems(ctx context.Context, ids []int) (map[int]domain.MenuItem, error)
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, orderID int) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int, from, to domain.OrderStatus) (*domain.Order, bool, error)
	TouchOrder(ctx context.Context, orderID int, status domain.OrderStatus) (*domain.Order, bool, error)
}

type BoardRepository interface {
	ListActiveOrders(ctx context.Context, restaurantID int) ([]domain.Order, error)
	ListTerminalOrders(ctx context.Context, restaurantID, limit int) ([]domain.Order, error)
}

type StatusPublisher interface {
	PublishStatus(ctx context.Context, event domain.StatusEvent) error
}

type StatusSubscriber interface {
	Subscribe(orderID int, fn func(domain.StatusEvent)) func()
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, msg domain.KafkaMessage) error
}

type CatalogServiceInterface interface {
	FetchMenu(ctx context.Context, restaurantID int) (*domain.Menu, error)
	InvalidateMenu(ctx context.Context, restaurantID int) error
}

type OrderServiceInterface interface {
	ResolveTable(ctx context.Context, restaurantID, tableNumber int) (*domain.RestaurantTable, error)
	Submit(ctx context.Context, req domain.SubmitOrderRequest) (*domain.SubmitResult, error)
	Get(ctx context.Context, orderID int) (*domain.Order, error)
	Advance(ctx context.Context, orderID int, target domain.OrderStatus) (*domain.Order, error)
	Subscribe(ctx context.Context, orderID int, fn func(domain.StatusEvent)) (*domain.Order, func(), error)
}

type BoardServiceInterface interface {
	ListActive(ctx context.Context, restaurantID int) ([]domain.Order, error)
	ListHistory(ctx context.Context, restaurantID, limit int) ([]domain.Order, error)
	Board(ctx context.Context, restaurantID int) (*domain.Board, error)
}

type TableQRInterface interface {
	Signed() bool
	Link(restaurantID, tableNumber int) (string, error)
	PNG(restaurantID, tableNumber int) ([]byte, error)
	Verify(token string) (restaurantID, tableNumber int, err error)
}

var (
	_ CatalogServiceInterface = (*CatalogService)(nil)
	_ OrderServiceInterface   = (*OrderService)(nil)
	_ BoardServiceInterface   = (*BoardService)(nil)
	_ TableQRInterface        = (*TableQR)(nil)
)
