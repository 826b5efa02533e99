package cart

import (
	"github.com/shopspring/decimal"

	"github.com/Arif911659/DhakaCart-03/internal/catalog"
	"github.com/Arif911659/DhakaCart-03/internal/orders"
)

type Item struct {
	Product  catalog.Product
	Quantity int
}

// Cart is session-local shopping state: one line per product, lines kept in
// the order they were first added. Nothing here is persisted.
type Cart struct {
	order []int64
	lines map[int64]*Item
}

func New() *Cart {
	return &Cart{lines: make(map[int64]*Item)}
}

// Add puts one unit of the product in the cart, incrementing an existing
// line. The product snapshot of the first Add wins; the unit price is
// captured at that moment.
func (c *Cart) Add(p catalog.Product) {
	if line, ok := c.lines[p.ID]; ok {
		line.Quantity++
		return
	}
	c.lines[p.ID] = &Item{Product: p, Quantity: 1}
	c.order = append(c.order, p.ID)
}

// UpdateQuantity sets the line quantity; zero or less removes the line.
func (c *Cart) UpdateQuantity(productID int64, qty int) {
	line, ok := c.lines[productID]
	if !ok {
		return
	}
	if qty <= 0 {
		c.Remove(productID)
		return
	}
	line.Quantity = qty
}

func (c *Cart) Remove(productID int64) {
	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Items returns the lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

// Len is the number of distinct lines.
func (c *Cart) Len() int { return len(c.lines) }

// Units is the total quantity across all lines.
func (c *Cart) Units() int {
	n := 0
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

func (c *Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, id := range c.order {
		line := c.lines[id]
		total = total.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

func (c *Cart) Clear() {
	c.order = nil
	c.lines = make(map[int64]*Item)
}

// Checkout converts the cart into an order payload for the given customer.
func (c *Cart) Checkout(name, email, phone, address string) orders.OrderInput {
	items := make([]orders.ItemInput, 0, len(c.order))
	for _, id := range c.order {
		line := c.lines[id]
		items = append(items, orders.ItemInput{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
		})
	}
	return orders.OrderInput{
		CustomerName:    name,
		CustomerEmail:   email,
		CustomerPhone:   phone,
		DeliveryAddress: address,
		Items:           items,
		TotalAmount:     c.TotalAmount(),
	}
}
