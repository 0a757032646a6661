package events

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	OrderCreatedQueue = "order.created"
	OrderDeletedQueue = "order.deleted"
)

// Dial opens the RabbitMQ connection used by the publisher.
func Dial(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	return conn, nil
}
