package main

import (
	"context"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
)

var errDeliveriesClosed = errors.New("delivery channel closed")

// consume hands every delivery to handle until ctx is cancelled or the broker
// closes the delivery channel.
func consume(ctx context.Context, msgs <-chan amqp.Delivery, handle func(amqp.Delivery)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return errDeliveriesClosed
			}
			handle(msg)
		}
	}
}
