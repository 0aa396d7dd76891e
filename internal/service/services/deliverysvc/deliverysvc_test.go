package deliverysvc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/corray333/backend-labs/checkout/internal/metrics"
	"github.com/corray333/backend-labs/checkout/internal/service/models/address"
	"github.com/corray333/backend-labs/checkout/internal/service/models/order"
	"github.com/corray333/backend-labs/checkout/internal/service/models/orderitem"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
)

type fakePoster struct {
	url  string
	body []byte
	err  error
	wait bool
}

func (p *fakePoster) Post(ctx context.Context, url string, body []byte) error {
	p.url = url
	p.body = body
	if p.wait {
		<-ctx.Done()

		return ctx.Err()
	}

	return p.err
}

func placedOrder(t *testing.T) order.Order {
	t.Helper()
	item, err := orderitem.New(orderitem.ItemOrdered{CatalogItemID: 1, ProductName: "mug"}, decimal.RequireFromString("10.00"), 2)
	if err != nil {
		t.Fatal(err)
	}
	o := order.New("buyer-1", address.Address{Street: "1 Main", City: "X", Country: "US", ZipCode: "1"}, []orderitem.OrderItem{item})
	o.ID = 42

	return o
}

func TestNotify_PostsDetails(t *testing.T) {
	p := &fakePoster{}
	m := metrics.NewRegistry()
	n := MustNewNotifier(WithPoster(p), WithURL("https://fn/api/Delivery?code=key"), WithMetrics(m))

	n.Notify(context.Background(), placedOrder(t))

	if p.url != "https://fn/api/Delivery?code=key" {
		t.Fatalf("url = %s", p.url)
	}
	var got map[string]any
	if err := json.Unmarshal(p.body, &got); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if got["buyerId"] != "buyer-1" || got["finalPrice"] != 20.0 {
		t.Fatalf("unexpected body: %s", p.body)
	}
	if id, _ := got["id"].(string); id == "" {
		t.Fatalf("missing delivery id: %s", p.body)
	}
	if c := testutil.ToFloat64(m.Deliveries.WithLabelValues(metrics.ResultSent)); c != 1 {
		t.Fatalf("sent = %v", c)
	}
}

func TestNotify_SwallowsPostError(t *testing.T) {
	p := &fakePoster{err: errors.New("503")}
	m := metrics.NewRegistry()
	n := MustNewNotifier(WithPoster(p), WithMetrics(m))

	n.Notify(context.Background(), placedOrder(t))

	if c := testutil.ToFloat64(m.Deliveries.WithLabelValues(metrics.ResultFailed)); c != 1 {
		t.Fatalf("failed = %v", c)
	}
}

func TestNotify_BoundedByTimeout(t *testing.T) {
	p := &fakePoster{wait: true}
	m := metrics.NewRegistry()
	n := MustNewNotifier(WithPoster(p), WithTimeout(20*time.Millisecond), WithMetrics(m))

	start := time.Now()
	n.Notify(context.Background(), placedOrder(t))
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("notify not bounded: %s", elapsed)
	}
	if c := testutil.ToFloat64(m.Deliveries.WithLabelValues(metrics.ResultTimeout)); c != 1 {
		t.Fatalf("timeout = %v", c)
	}
}

type panickingPoster struct{}

func (panickingPoster) Post(context.Context, string, []byte) error {
	panic("nil response in transport")
}

func TestNotify_RecoversPosterPanic(t *testing.T) {
	m := metrics.NewRegistry()
	n := MustNewNotifier(WithPoster(panickingPoster{}), WithMetrics(m))

	n.Notify(context.Background(), placedOrder(t))

	if c := testutil.ToFloat64(m.Deliveries.WithLabelValues(metrics.ResultFailed)); c != 1 {
		t.Fatalf("failed = %v", c)
	}
}

func TestWithTimeout_NonPositiveKeepsDefault(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		if n := MustNewNotifier(WithTimeout(d)); n.timeout != DefaultTimeout {
			t.Fatalf("WithTimeout(%s): timeout = %s", d, n.timeout)
		}
	}
}
