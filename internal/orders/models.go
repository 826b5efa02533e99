package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

// Orders are created as pending; later transitions (confirmation, delivery)
// belong to back-office tooling, not this service.
const StatusPending Status = "pending"

type Order struct {
	ID              int64           `json:"id"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone"`
	DeliveryAddress string          `json:"delivery_address"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"` // unit price captured at order time
}

// OrderItemDetail is an order item joined with its product for display.
type OrderItemDetail struct {
	OrderItem
	ProductName string `json:"name"`
	ImageURL    string `json:"image_url"`
}

type ItemInput struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderInput struct {
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone"`
	DeliveryAddress string          `json:"delivery_address"`
	Items           []ItemInput     `json:"items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}
