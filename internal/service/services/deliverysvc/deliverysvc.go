package deliverysvc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/checkout/internal/metrics"
	"github.com/corray333/backend-labs/checkout/internal/service/models/delivery"
	"github.com/corray333/backend-labs/checkout/internal/service/models/order"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DefaultTimeout bounds a notification when no positive timeout is configured.
const DefaultTimeout = 5 * time.Second

type poster interface {
	Post(ctx context.Context, url string, body []byte) error
}

// Notifier tells the delivery service about placed orders.
type Notifier struct {
	poster  poster
	url     string
	timeout time.Duration
	metrics *metrics.Registry
}

type option func(*Notifier)

// MustNewNotifier creates a new Notifier.
func MustNewNotifier(opts ...option) *Notifier {
	n := &Notifier{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(n)
	}

	return n
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithPoster(p poster) option {
	return func(n *Notifier) {
		n.poster = p
	}
}

// WithURL sets the full endpoint URL, access key included.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithURL(url string) option {
	return func(n *Notifier) {
		n.url = url
	}
}

// WithTimeout bounds a single notification. Non-positive values keep DefaultTimeout.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithTimeout(d time.Duration) option {
	return func(n *Notifier) {
		if d > 0 {
			n.timeout = d
		}
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithMetrics(m *metrics.Registry) option {
	return func(n *Notifier) {
		n.metrics = m
	}
}

// Notify posts the delivery details of o. Errors are logged, not returned.
func (n *Notifier) Notify(ctx context.Context, o order.Order) {
	ctx, span := otel.Tracer("deliverysvc").Start(ctx, "Notifier.Notify")
	defer span.End()

	details := delivery.FromOrder(o)
	span.SetAttributes(
		attribute.Int64("order.id", o.ID),
		attribute.String("delivery.id", details.ID.String()),
	)

	body, err := json.Marshal(details)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode failed")
		n.metrics.IncDelivery(metrics.ResultFailed)
		slog.ErrorContext(ctx, "Failed to encode delivery details", "order_id", o.ID, "error", err)

		return
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.post(ctx, body); err != nil {
		result := metrics.ResultFailed
		if ctx.Err() != nil {
			result = metrics.ResultTimeout
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "post failed")
		n.metrics.IncDelivery(result)
		slog.ErrorContext(ctx, "Failed to notify delivery service", "order_id", o.ID, "error", err)

		return
	}

	n.metrics.IncDelivery(metrics.ResultSent)
	slog.DebugContext(ctx, "Delivery notified", "order_id", o.ID, "delivery_id", details.ID)
}

// post turns a panicking transport into an error.
func (n *Notifier) post(ctx context.Context, body []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("delivery poster panicked: %v", r)
		}
	}()

	return n.poster.Post(ctx, n.url, body)
}
