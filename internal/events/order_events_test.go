package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/erpbase/internal/order"
)

func TestBuildOrderCreated(t *testing.T) {
	now := time.Now()
	o := &order.Order{
		ID:         7,
		Code:       "O-1",
		CustomerID: 1,
		Date:       &now,
		Total:      13.50,
		Items: []order.Item{
			{ID: 71, ProductID: 10, Quantity: 2, Price: 5.00},
			{ID: 72, ProductID: 11, Quantity: 1, Price: 3.50},
		},
	}

	ev := BuildOrderCreated(o)
	require.Equal(t, EventTypeOrderCreated, ev.EventType)
	require.NotEmpty(t, ev.EventID)
	require.Equal(t, int64(7), ev.OrderID)
	require.Equal(t, 13.50, ev.Total)
	require.Len(t, ev.Items, 2)
	require.Equal(t, int64(71), ev.Items[0].ItemID)

	// Distinct events never share an id.
	require.NotEqual(t, ev.EventID, BuildOrderCreated(o).EventID)

	body, err := json.Marshal(ev)
	require.NoError(t, err)

	var asMap map[string]any
	require.NoError(t, json.Unmarshal(body, &asMap))
	for _, field := range []string{"eventType", "eventId", "orderId", "code", "customerId", "items", "total", "timestamp"} {
		require.Contains(t, asMap, field)
	}
}

func TestBuildOrderDeleted(t *testing.T) {
	o := &order.Order{ID: 9, Code: "O-9", CustomerID: 2, Total: 4}

	ev := BuildOrderDeleted(o)
	require.Equal(t, EventTypeOrderDeleted, ev.EventType)
	require.NotEmpty(t, ev.EventID)
	require.Equal(t, int64(9), ev.OrderID)
	require.Equal(t, "O-9", ev.Code)
	require.False(t, ev.Timestamp.IsZero())
}
