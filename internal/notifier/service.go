package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/Arif911659/DhakaCart-03/internal/kafka"
	"github.com/Arif911659/DhakaCart-03/internal/orders"
	"github.com/Arif911659/DhakaCart-03/internal/redisx"
)

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Service consumes OrderCreated events and sends the customer confirmation.
// Delivery is a log line for now; the handler is idempotent either way.
type Service struct {
	Cache Cache
	Name  string
}

func (s *Service) HandleOrderCreated(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderCreated {
		return nil
	}

	// dedup on event id: redeliveries must not notify twice
	dkey := redisx.KeyDedup(s.Name, env.EventID)
	if _, err := s.Cache.Get(ctx, dkey); err == nil {
		return nil
	}

	p, err := kafkax.UnwrapPayload[orders.OrderCreatedPayload](env.Payload)
	if err != nil {
		return err
	}

	log.Info().
		Int64("order_id", p.OrderID).
		Str("customer_email", p.CustomerEmail).
		Int("items", len(p.Items)).
		Str("total_amount", p.TotalAmount.String()).
		Msg("order confirmation sent")

	if err := s.Cache.Set(ctx, dkey, "1", redisx.TTLDedup); err != nil {
		log.Warn().Err(err).Str("key", dkey).Msg("dedup record failed")
	}
	return nil
}
