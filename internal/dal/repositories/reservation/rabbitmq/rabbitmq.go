package rabbitmqrepo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/checkout/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/checkout/pkg/tracing"
	"github.com/streadway/amqp"
)

// channel is the part of a RabbitMQ client a send needs.
type channel interface {
	DeclareQueue(cfg rabbitmq.DeclareQueueConfig) (amqp.Queue, error)
	Publish(queue string, msg amqp.Publishing) error
	Close() error
}

type dialFunc func(url string, timeout time.Duration) (channel, error)

// ReservationRabbitMQSender sends reservation messages over a connection that
// lives only for the duration of one send.
type ReservationRabbitMQSender struct {
	url   string
	queue string
	dial  dialFunc
}

// NewReservationRabbitMQSender creates a sender for queue on the broker at url.
func NewReservationRabbitMQSender(url, queue string) *ReservationRabbitMQSender {
	return &ReservationRabbitMQSender{
		url:   url,
		queue: queue,
		dial: func(url string, timeout time.Duration) (channel, error) {
			return rabbitmq.Dial(url, timeout)
		},
	}
}

// Send opens a connection, publishes body as one message and closes the
// connection again. Close failures are logged and never returned.
func (s *ReservationRabbitMQSender) Send(ctx context.Context, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var timeout time.Duration
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	client, err := s.dial(s.url, timeout)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			slog.WarnContext(ctx, "Failed to close reservation connection", "error", err)
		}
	}()

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    s.queue,
		Durable: true,
	})
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", s.queue, err)
	}

	err = client.Publish(queue.Name, amqp.Publishing{
		Headers:      tracing.AMQPHeaders(ctx),
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish reservation: %w", err)
	}

	return nil
}
