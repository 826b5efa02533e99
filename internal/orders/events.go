package orders

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TopicOrderCreated = "order.created"
	EventOrderCreated = "OrderCreated"
)

// Envelope is the versioned wrapper every order event is published in.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderID       int64           `json:"order_id"`
	CustomerEmail string          `json:"customer_email"`
	Items         []ItemInput     `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// PartitionKey keeps all events of one order on one partition, so consumers
// see them in order.
func PartitionKey(orderID int64) []byte {
	return []byte(strconv.FormatInt(orderID, 10))
}
