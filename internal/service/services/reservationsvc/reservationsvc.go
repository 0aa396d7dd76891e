package reservationsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/checkout/internal/metrics"
	"github.com/corray333/backend-labs/checkout/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/checkout/internal/service/models/reservation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTimeout bounds a publish when no positive timeout is configured.
const DefaultTimeout = 5 * time.Second

type sender interface {
	Send(ctx context.Context, body []byte) error
}

// Publisher publishes item reservation requests for placed orders.
// Failures are logged and never reach the caller.
type Publisher struct {
	sender  sender
	timeout time.Duration
	metrics *metrics.Registry
}

type option func(*Publisher)

// MustNewPublisher creates a new Publisher.
func MustNewPublisher(opts ...option) *Publisher {
	p := &Publisher{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithSender sets the transport the reservation message is sent through.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSender(s sender) option {
	return func(p *Publisher) {
		p.sender = s
	}
}

// WithTimeout bounds a single publish. Non-positive values keep DefaultTimeout.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithTimeout(d time.Duration) option {
	return func(p *Publisher) {
		if d > 0 {
			p.timeout = d
		}
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithMetrics(m *metrics.Registry) option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// Publish sends one message holding a {itemId, quantity} line per item.
// It returns once the send finishes or the timeout expires, whichever is first.
func (p *Publisher) Publish(ctx context.Context, items []orderitem.OrderItem) {
	ctx, span := otel.Tracer("reservationsvc").Start(ctx, "Publisher.Publish")
	defer span.End()
	span.SetAttributes(attribute.Int("reservation.items", len(items)))

	var orderID int64
	if len(items) > 0 {
		orderID = items[0].OrderID
	}

	body, err := json.Marshal(reservation.FromOrderItems(items))
	if err != nil {
		p.fail(ctx, span, orderID, "Failed to encode reservation", err, metrics.ResultFailed)

		return
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- p.send(ctx, body)
	}()

	select {
	case err := <-done:
		if err != nil {
			p.fail(ctx, span, orderID, "Failed to publish reservation", err, metrics.ResultFailed)

			return
		}
	case <-ctx.Done():
		p.fail(ctx, span, orderID, "Reservation publish timed out", ctx.Err(), metrics.ResultTimeout)

		return
	}

	p.metrics.IncReservation(metrics.ResultSent)
	slog.DebugContext(ctx, "Reservation published", "order_id", orderID, "items", len(items))
}

// send turns a panicking transport into an error.
func (p *Publisher) send(ctx context.Context, body []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reservation sender panicked: %v", r)
		}
	}()

	return p.sender.Send(ctx, body)
}

func (p *Publisher) fail(ctx context.Context, span trace.Span, orderID int64, msg string, err error, result string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	p.metrics.IncReservation(result)
	slog.ErrorContext(ctx, msg, "order_id", orderID, "error", err)
}
