// Package cart holds a customer's in-progress selection for one table session.
// A Cart lives on the client only and is never persisted.
package cart

import "tableside/order-svc/internal/domain"

type Entry struct {
	Item     domain.MenuItem
	Quantity int
	Note     string
}

type Cart struct {
	RestaurantID int
	TableNumber  int

	entries map[int]*Entry
	order   []int
}

func New(restaurantID, tableNumber int) *Cart {
	return &Cart{
		RestaurantID: restaurantID,
		TableNumber:  tableNumber,
		entries:      make(map[int]*Entry),
	}
}

func (c *Cart) Add(item domain.MenuItem) {
	if e, ok := c.entries[item.ID]; ok {
		e.Quantity++
		return
	}
	c.entries[item.ID] = &Entry{Item: item, Quantity: 1}
	c.order = append(c.order, item.ID)
}

// SetQuantity removes the entry when quantity < 1.
func (c *Cart) SetQuantity(itemID, quantity int) {
	e, ok := c.entries[itemID]
	if !ok {
		return
	}
	if quantity < 1 {
		c.remove(itemID)
		return
	}
	e.Quantity = quantity
}

func (c *Cart) Decrement(itemID int) {
	if e, ok := c.entries[itemID]; ok {
		c.SetQuantity(itemID, e.Quantity-1)
	}
}

func (c *Cart) Remove(itemID int) {
	c.SetQuantity(itemID, 0)
}

func (c *Cart) SetNote(itemID int, note string) {
	if e, ok := c.entries[itemID]; ok {
		e.Note = note
	}
}

func (c *Cart) Quantity(itemID int) int {
	if e, ok := c.entries[itemID]; ok {
		return e.Quantity
	}
	return 0
}

func (c *Cart) Total() int64 {
	var total int64
	for _, e := range c.entries {
		total += e.Item.Price * int64(e.Quantity)
	}
	return total
}

func (c *Cart) Len() int { return len(c.entries) }

func (c *Cart) IsEmpty() bool { return len(c.entries) == 0 }

func (c *Cart) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.entries[id])
	}
	return out
}

func (c *Cart) Lines() []domain.OrderLine {
	lines := make([]domain.OrderLine, 0, len(c.order))
	for _, id := range c.order {
		e := c.entries[id]
		lines = append(lines, domain.OrderLine{MenuItemID: id, Quantity: e.Quantity, Note: e.Note})
	}
	return lines
}

func (c *Cart) Clear() {
	c.entries = make(map[int]*Entry)
	c.order = nil
}

func (c *Cart) remove(itemID int) {
	delete(c.entries, itemID)
	for i, id := range c.order {
		if id == itemID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
