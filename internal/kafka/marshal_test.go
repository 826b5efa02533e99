package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapPayload(t *testing.T) {
	type payload struct {
		OrderID int64  `json:"order_id"`
		Email   string `json:"email"`
	}

	raw := MustMarshal(payload{OrderID: 7, Email: "rahim@example.com"})

	p, err := UnwrapPayload[payload](json.RawMessage(raw))
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.OrderID)
	assert.Equal(t, "rahim@example.com", p.Email)
}

func TestUnwrapPayloadMalformed(t *testing.T) {
	type payload struct{ N int }

	_, err := UnwrapPayload[payload](json.RawMessage(`{broken`))
	assert.Error(t, err)
}
