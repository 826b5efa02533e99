package orders

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	kafkax "github.com/Arif911659/DhakaCart-03/internal/kafka"
	"github.com/Arif911659/DhakaCart-03/internal/redisx"
)

type Store interface {
	PlaceOrder(ctx context.Context, in OrderInput) (*Order, error)
	GetOrder(ctx context.Context, id int64) (*Order, []OrderItemDetail, error)
}

// Cache is the slice of the cache layer the write path needs: invalidating
// the catalog listing after a committed order.
type Cache interface {
	Delete(ctx context.Context, keys ...string) error
}

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type Service struct {
	Store       Store
	Cache       Cache
	Producer    Publisher // nil disables event publishing
	ServiceName string
}

// PlaceOrder validates the input, runs the store transaction, then
// invalidates the cached catalog listing and publishes an OrderCreated
// event. The latter two are best-effort: the order is committed by then and
// a stale listing self-corrects at its TTL.
func (s *Service) PlaceOrder(ctx context.Context, in OrderInput) (*Order, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	o, err := s.Store.PlaceOrder(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.Cache.Delete(ctx, redisx.KeyProductsAll); err != nil {
		log.Warn().Err(err).Int64("order_id", o.ID).Msg("catalog cache invalidation failed, stale until TTL")
	}
	s.publishCreated(o, in.Items)

	log.Info().Int64("order_id", o.ID).Str("total_amount", o.TotalAmount.String()).Msg("order placed")
	return o, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*Order, []OrderItemDetail, error) {
	return s.Store.GetOrder(ctx, id)
}

func validate(in OrderInput) error {
	switch {
	case in.CustomerName == "":
		return invalid("customer_name is required")
	case in.CustomerEmail == "":
		return invalid("customer_email is required")
	case in.CustomerPhone == "":
		return invalid("customer_phone is required")
	case in.DeliveryAddress == "":
		return invalid("delivery_address is required")
	case len(in.Items) == 0:
		return invalid("order must contain at least one item")
	}

	sum := decimal.Zero
	for i, it := range in.Items {
		if it.ProductID <= 0 {
			return invalid(fmt.Sprintf("items[%d]: product_id is required", i))
		}
		if it.Quantity <= 0 {
			return invalid(fmt.Sprintf("items[%d]: quantity must be positive", i))
		}
		if it.Price.IsNegative() {
			return invalid(fmt.Sprintf("items[%d]: price must not be negative", i))
		}
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	if !sum.Equal(in.TotalAmount) {
		return invalid(fmt.Sprintf("total_amount %s does not match item sum %s", in.TotalAmount, sum))
	}
	return nil
}

func (s *Service) publishCreated(o *Order, items []ItemInput) {
	if s.Producer == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		CorrelationID: strconv.FormatInt(o.ID, 10),
		Payload: kafkax.MustMarshal(OrderCreatedPayload{
			OrderID:       o.ID,
			CustomerEmail: o.CustomerEmail,
			Items:         items,
			TotalAmount:   o.TotalAmount,
		}),
	}
	s.Producer.Publish(PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventOrderCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
