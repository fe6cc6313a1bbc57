package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tableside/order-svc/internal/domain"

	"github.com/lib/pq"
)

const orderColumns = `id, restaurant_id, table_id, table_number, total_amount,
	COALESCE(customer_name, ''), COALESCE(notes, ''), COALESCE(payment_method, ''),
	payment_status, status, version, created_at, updated_at`

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(&o.ID, &o.RestaurantID, &o.TableID, &o.TableNumber, &o.TotalAmount,
		&o.CustomerName, &o.Notes, &o.PaymentMethod,
		&o.PaymentStatus, &o.Status, &o.Version, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(image_url, ''), is_active, created_at
		FROM restaurants
		WHERE id = $1 AND is_active`, id).
		Scan(&rest.ID, &rest.Name, &rest.Description, &rest.ImageURL, &rest.IsActive, &rest.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRestaurantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context, restaurantID int) ([]domain.MenuCategory, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, restaurant_id, name, COALESCE(description, ''), sort_order, is_active
		FROM menu_categories
		WHERE restaurant_id = $1 AND is_active
		ORDER BY sort_order, name`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.MenuCategory{}
	for rows.Next() {
		var c domain.MenuCategory
		if err := rows.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.Description, &c.SortOrder, &c.IsActive); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

const menuItemColumns = `id, restaurant_id, category_id, name, COALESCE(description, ''), price,
	is_available, is_popular, is_vegetarian, COALESCE(image_url, ''), sort_order`

func scanMenuItem(row rowScanner) (domain.MenuItem, error) {
	var (
		item     domain.MenuItem
		category sql.NullInt64
	)
	err := row.Scan(&item.ID, &item.RestaurantID, &category, &item.Name, &item.Description, &item.Price,
		&item.IsAvailable, &item.IsPopular, &item.IsVegetarian, &item.ImageURL, &item.SortOrder)
	if err != nil {
		return item, err
	}
	if category.Valid {
		id := int(category.Int64)
		item.CategoryID = &id
	}
	return item, nil
}

func (r *PostgresRepository) ListAvailableItems(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+menuItemColumns+`
		FROM menu_items
		WHERE restaurant_id = $1 AND is_available
		ORDER BY sort_order, name`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetMenuItems returns live rows for the given ids regardless of availability.
func (r *PostgresRepository) GetMenuItems(ctx context.Context, ids []int) (map[int]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+menuItemColumns+`
		FROM menu_items
		WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int]domain.MenuItem, len(ids))
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items[item.ID] = item
	}
	return items, rows.Err()
}

func (r *PostgresRepository) ResolveTable(ctx context.Context, restaurantID, tableNumber int) (*domain.RestaurantTable, error) {
	var t domain.RestaurantTable
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, restaurant_id, table_number, capacity, status, is_active
		FROM restaurant_tables
		WHERE restaurant_id = $1 AND table_number = $2 AND is_active`, restaurantID, tableNumber).
		Scan(&t.ID, &t.RestaurantID, &t.TableNumber, &t.Capacity, &t.Status, &t.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTableNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateOrder writes the order header and its items in one transaction.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (restaurant_id, table_id, table_number, total_amount, customer_name, notes,
			payment_method, payment_status, status)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8, $9)
		RETURNING id, version, created_at, updated_at
	`, order.RestaurantID, order.TableID, order.TableNumber, order.TotalAmount, order.CustomerName, order.Notes,
		order.PaymentMethod, order.PaymentStatus, order.Status).
		Scan(&order.ID, &order.Version, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, item_name, item_price, quantity, note)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
			RETURNING id
		`, order.ID, item.MenuItemID, item.ItemName, item.ItemPrice, item.Quantity, item.Note).Scan(&item.ID); err != nil {
			return fmt.Errorf("insert order item %d: %w", item.MenuItemID, err)
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, []int{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	if order.Items == nil {
		order.Items = []domain.OrderItem{}
	}
	return order, nil
}

// UpdateOrderStatus moves the order only if it is still at from. It reports
// false when the guard did not match (order missing or already moved).
func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, orderID int, from, to domain.OrderStatus) (*domain.Order, bool, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx, `
		UPDATE orders
		SET status = $3, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING `+orderColumns, orderID, from, to))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return order, true, nil
}

// TouchOrder refreshes updated_at when the order is still at status.
func (r *PostgresRepository) TouchOrder(ctx context.Context, orderID int, status domain.OrderStatus) (*domain.Order, bool, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx, `
		UPDATE orders
		SET updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING `+orderColumns, orderID, status))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return order, true, nil
}

func (r *PostgresRepository) ListActiveOrders(ctx context.Context, restaurantID int) ([]domain.Order, error) {
	return r.listOrders(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE restaurant_id = $1 AND status <> ALL($2)
		ORDER BY created_at ASC, id ASC`, restaurantID, pq.Array(terminalStatuses()))
}

func (r *PostgresRepository) ListTerminalOrders(ctx context.Context, restaurantID, limit int) ([]domain.Order, error) {
	return r.listOrders(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE restaurant_id = $1 AND status = ANY($2)
		ORDER BY updated_at DESC, id DESC
		LIMIT $3`, restaurantID, pq.Array(terminalStatuses()), limit)
}

func terminalStatuses() []string {
	out := make([]string, 0, len(domain.TerminalStatuses))
	for _, s := range domain.TerminalStatuses {
		out = append(out, string(s))
	}
	return out
}

func (r *PostgresRepository) listOrders(ctx context.Context, query string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	var ids []int
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return orders, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []domain.OrderItem{}
		}
	}
	return orders, nil
}

func (r *PostgresRepository) loadItems(ctx context.Context, orderIDs []int) (map[int][]domain.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, order_id, menu_item_id, item_name, item_price, quantity, COALESCE(note, '')
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.ItemName, &item.ItemPrice, &item.Quantity, &item.Note); err != nil {
			return nil, err
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", firstLine(stmt), err)
		}
	}
	return nil
}
