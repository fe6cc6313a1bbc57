package storage

import "strings"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS restaurants (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		image_url TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS menu_categories (
		id SERIAL PRIMARY KEY,
		restaurant_id INT NOT NULL REFERENCES restaurants(id),
		name TEXT NOT NULL,
		description TEXT,
		sort_order INT NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		id SERIAL PRIMARY KEY,
		restaurant_id INT NOT NULL REFERENCES restaurants(id),
		category_id INT,
		name TEXT NOT NULL,
		description TEXT,
		price BIGINT NOT NULL CHECK (price >= 0),
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		is_popular BOOLEAN NOT NULL DEFAULT FALSE,
		is_vegetarian BOOLEAN NOT NULL DEFAULT FALSE,
		image_url TEXT,
		sort_order INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS restaurant_tables (
		id SERIAL PRIMARY KEY,
		restaurant_id INT NOT NULL REFERENCES restaurants(id),
		table_number INT NOT NULL,
		capacity INT NOT NULL DEFAULT 4,
		status TEXT NOT NULL DEFAULT 'available' CHECK (status IN ('available', 'occupied', 'reserved')),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		UNIQUE (restaurant_id, table_number)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id SERIAL PRIMARY KEY,
		restaurant_id INT NOT NULL REFERENCES restaurants(id),
		table_id INT NOT NULL REFERENCES restaurant_tables(id),
		table_number INT NOT NULL,
		total_amount BIGINT NOT NULL,
		customer_name TEXT,
		notes TEXT,
		payment_method TEXT,
		payment_status TEXT NOT NULL DEFAULT 'pending',
		status TEXT NOT NULL DEFAULT 'received'
			CHECK (status IN ('received', 'preparing', 'ready', 'served', 'cancelled')),
		version INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id SERIAL PRIMARY KEY,
		order_id INT NOT NULL REFERENCES orders(id),
		menu_item_id INT NOT NULL,
		item_name TEXT NOT NULL,
		item_price BIGINT NOT NULL,
		quantity INT NOT NULL CHECK (quantity > 0),
		note TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS orders_restaurant_status_idx ON orders (restaurant_id, status)`,
	`CREATE INDEX IF NOT EXISTS order_items_order_idx ON order_items (order_id)`,
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return strings.TrimSpace(stmt[:i])
	}
	return stmt
}
