package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/erpbase/internal/order"
)

const (
	EventTypeOrderCreated = "OrderCreated"
	EventTypeOrderDeleted = "OrderDeleted"
)

type OrderItem struct {
	ItemID    int64   `json:"itemId"`
	ProductID int64   `json:"productId"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderCreated is emitted after a create transaction commits.
type OrderCreated struct {
	EventType  string      `json:"eventType"`
	EventID    string      `json:"eventId"`
	OrderID    int64       `json:"orderId"`
	Code       string      `json:"code"`
	CustomerID int64       `json:"customerId"`
	Items      []OrderItem `json:"items"`
	Total      float64     `json:"total"`
	Timestamp  time.Time   `json:"timestamp"`
}

// OrderDeleted is emitted after a cascading delete commits.
type OrderDeleted struct {
	EventType string    `json:"eventType"`
	EventID   string    `json:"eventId"`
	OrderID   int64     `json:"orderId"`
	Code      string    `json:"code"`
	Total     float64   `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}

// BuildOrderCreated snapshots a persisted order into its event form.
func BuildOrderCreated(o *order.Order) OrderCreated {
	items := make([]OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItem{
			ItemID:    it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return OrderCreated{
		EventType:  EventTypeOrderCreated,
		EventID:    uuid.NewString(),
		OrderID:    o.ID,
		Code:       o.Code,
		CustomerID: o.CustomerID,
		Items:      items,
		Total:      o.Total,
		Timestamp:  time.Now().UTC(),
	}
}

// BuildOrderDeleted captures the last-known attributes of a deleted order.
func BuildOrderDeleted(o *order.Order) OrderDeleted {
	return OrderDeleted{
		EventType: EventTypeOrderDeleted,
		EventID:   uuid.NewString(),
		OrderID:   o.ID,
		Code:      o.Code,
		Total:     o.Total,
		Timestamp: time.Now().UTC(),
	}
}
