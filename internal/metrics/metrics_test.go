package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegistry_CountsByResult(t *testing.T) {
	r := NewRegistry()
	r.IncOrder(ResultPlaced)
	r.IncOrder(ResultPlaced)
	r.IncOrder(ResultEmptyBasket)
	r.IncReservation(ResultTimeout)
	r.IncDelivery(ResultSent)
	r.ObserveDuration(10 * time.Millisecond)

	if got := testutil.ToFloat64(r.Orders.WithLabelValues(ResultPlaced)); got != 2 {
		t.Fatalf("placed = %v", got)
	}
	if got := testutil.ToFloat64(r.Orders.WithLabelValues(ResultEmptyBasket)); got != 1 {
		t.Fatalf("empty_basket = %v", got)
	}
	if got := testutil.ToFloat64(r.Reservations.WithLabelValues(ResultTimeout)); got != 1 {
		t.Fatalf("reservation timeout = %v", got)
	}
}

func TestRegistry_NilIsNoop(t *testing.T) {
	var r *Registry
	r.IncOrder(ResultPlaced)
	r.IncReservation(ResultSent)
	r.IncDelivery(ResultFailed)
	r.ObserveDuration(time.Second)
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.IncDelivery(ResultFailed)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `checkout_delivery_notify_total{result="failed"} 1`) {
		t.Fatalf("metric missing from output:\n%s", body)
	}
}
