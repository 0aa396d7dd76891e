package kafkarepo

import (
	"context"
	"fmt"

	"github.com/corray333/backend-labs/checkout/pkg/tracing"
	"github.com/segmentio/kafka-go"
)

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// ReservationKafkaSender writes reservation messages to a Kafka topic.
type ReservationKafkaSender struct {
	writer writer
}

func NewReservationKafkaSender(w writer) *ReservationKafkaSender {
	return &ReservationKafkaSender{writer: w}
}

// Send writes body as one message carrying the current trace context.
func (s *ReservationKafkaSender) Send(ctx context.Context, body []byte) error {
	msg := kafka.Message{
		Value:   body,
		Headers: tracing.KafkaHeaders(ctx),
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write reservation: %w", err)
	}

	return nil
}
