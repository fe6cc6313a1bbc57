package domain

import "time"

type Restaurant struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type MenuCategory struct {
	ID           int    `json:"id"`
	RestaurantID int    `json:"restaurant_id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	SortOrder    int    `json:"sort_order"`
	IsActive     bool   `json:"is_active"`
}

// MenuItem prices are in integer currency units.
type MenuItem struct {
	ID           int    `json:"id"`
	RestaurantID int    `json:"restaurant_id"`
	CategoryID   *int   `json:"category_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	IsAvailable  bool   `json:"is_available"`
	IsPopular    bool   `json:"is_popular"`
	IsVegetarian bool   `json:"is_vegetarian"`
	ImageURL     string `json:"image_url"`
	SortOrder    int    `json:"sort_order"`
}

type Menu struct {
	RestaurantID int            `json:"restaurant_id"`
	Categories   []MenuCategory `json:"categories"`
	Items        []MenuItem     `json:"items"`
}

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
)

type RestaurantTable struct {
	ID           int         `json:"id"`
	RestaurantID int         `json:"restaurant_id"`
	TableNumber  int         `json:"table_number"`
	Capacity     int         `json:"capacity"`
	Status       TableStatus `json:"status"`
	IsActive     bool        `json:"is_active"`
	QRLink       string      `json:"qr_link,omitempty"`
}

type Order struct {
	ID            int         `json:"id"`
	RestaurantID  int         `json:"restaurant_id"`
	TableID       int         `json:"table_id"`
	TableNumber   int         `json:"table_number"`
	TotalAmount   int64       `json:"total_amount"`
	CustomerName  string      `json:"customer_name,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	PaymentMethod string      `json:"payment_method,omitempty"`
	PaymentStatus string      `json:"payment_status"`
	Status        OrderStatus `json:"status"`
	Version       int         `json:"version"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	Items         []OrderItem `json:"items"`
}

// OrderItem snapshots the menu item's name and price at order time.
type OrderItem struct {
	ID         int    `json:"id"`
	OrderID    int    `json:"order_id"`
	MenuItemID int    `json:"menu_item_id"`
	ItemName   string `json:"item_name"`
	ItemPrice  int64  `json:"item_price"`
	Quantity   int    `json:"quantity"`
	Note       string `json:"note,omitempty"`
}

func (i OrderItem) Subtotal() int64 {
	return i.ItemPrice * int64(i.Quantity)
}

type OrderLine struct {
	MenuItemID int    `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	Note       string `json:"note,omitempty"`
}

type SubmitOrderRequest struct {
	RestaurantID  int         `json:"restaurant_id"`
	TableNumber   int         `json:"table_number"`
	Lines         []OrderLine `json:"lines"`
	CustomerName  string      `json:"customer_name,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	PaymentMethod string      `json:"payment_method,omitempty"`
	Token         string      `json:"token,omitempty"`
}

type SubmitResult struct {
	OrderID int         `json:"order_id"`
	Total   int64       `json:"total"`
	Status  OrderStatus `json:"status"`
	Warning string      `json:"warning,omitempty"`
}

// StatusEvent is what subscribers of a single order receive.
type StatusEvent struct {
	OrderID      int         `json:"order_id"`
	RestaurantID int         `json:"restaurant_id"`
	Status       OrderStatus `json:"status"`
	Version      int         `json:"version"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (o *Order) StatusEvent() StatusEvent {
	return StatusEvent{
		OrderID:      o.ID,
		RestaurantID: o.RestaurantID,
		Status:       o.Status,
		Version:      o.Version,
		UpdatedAt:    o.UpdatedAt,
	}
}

const (
	EventOrderPlaced   = "order_placed"
	EventStatusChanged = "status_changed"
)

type KafkaMessage struct {
	Type         string      `json:"type"`
	OrderID      int         `json:"order_id"`
	RestaurantID int         `json:"restaurant_id"`
	TableNumber  int         `json:"table_number"`
	Status       OrderStatus `json:"status"`
	Version      int         `json:"version"`
	TotalAmount  int64       `json:"total_amount"`
	Timestamp    time.Time   `json:"timestamp"`
}

type BoardCard struct {
	Order
	NextStatus *OrderStatus `json:"next_status"`
	CanCancel  bool         `json:"can_cancel"`
}

type Board struct {
	RestaurantID int         `json:"restaurant_id"`
	Active       []BoardCard `json:"active"`
	History      []Order     `json:"history"`
}
