package rabbitmqrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corray333/backend-labs/checkout/internal/dal/rabbitmq"
	"github.com/streadway/amqp"
)

type fakeChannel struct {
	declareErr error
	publishErr error
	closeErr   error

	published []amqp.Publishing
	queues    []string
	closed    int
}

func (c *fakeChannel) DeclareQueue(cfg rabbitmq.DeclareQueueConfig) (amqp.Queue, error) {
	if c.declareErr != nil {
		return amqp.Queue{}, c.declareErr
	}

	return amqp.Queue{Name: cfg.Name}, nil
}

func (c *fakeChannel) Publish(queue string, msg amqp.Publishing) error {
	if c.publishErr != nil {
		return c.publishErr
	}
	c.queues = append(c.queues, queue)
	c.published = append(c.published, msg)

	return nil
}

func (c *fakeChannel) Close() error {
	c.closed++

	return c.closeErr
}

func newSender(ch *fakeChannel, dialErr error) (*ReservationRabbitMQSender, *int) {
	dials := 0
	s := NewReservationRabbitMQSender("amqp://broker", "orderitems")
	s.dial = func(string, time.Duration) (channel, error) {
		dials++
		if dialErr != nil {
			return nil, dialErr
		}

		return ch, nil
	}

	return s, &dials
}

func TestSend_PublishesAndCloses(t *testing.T) {
	ch := &fakeChannel{}
	s, dials := newSender(ch, nil)

	body := []byte(`[{"itemId":1,"quantity":2}]`)
	if err := s.Send(context.Background(), body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *dials != 1 || ch.closed != 1 {
		t.Fatalf("dials=%d closed=%d", *dials, ch.closed)
	}
	if len(ch.published) != 1 || string(ch.published[0].Body) != string(body) {
		t.Fatalf("unexpected publish: %+v", ch.published)
	}
	if ch.queues[0] != "orderitems" || ch.published[0].ContentType != "application/json" {
		t.Fatalf("unexpected message: queue=%s %+v", ch.queues[0], ch.published[0])
	}
}

func TestSend_ClosesOnPublishError(t *testing.T) {
	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	s, _ := newSender(ch, nil)

	if err := s.Send(context.Background(), []byte("[]")); !errors.Is(err, ch.publishErr) {
		t.Fatalf("expected publish error, got %v", err)
	}
	if ch.closed != 1 {
		t.Fatalf("connection not closed: %d", ch.closed)
	}
}

func TestSend_ClosesOnDeclareError(t *testing.T) {
	ch := &fakeChannel{declareErr: errors.New("access refused")}
	s, _ := newSender(ch, nil)

	if err := s.Send(context.Background(), []byte("[]")); !errors.Is(err, ch.declareErr) {
		t.Fatalf("expected declare error, got %v", err)
	}
	if ch.closed != 1 || len(ch.published) != 0 {
		t.Fatalf("closed=%d published=%d", ch.closed, len(ch.published))
	}
}

func TestSend_CloseErrorIsNotReturned(t *testing.T) {
	ch := &fakeChannel{closeErr: errors.New("already closed")}
	s, _ := newSender(ch, nil)

	if err := s.Send(context.Background(), []byte("[]")); err != nil {
		t.Fatalf("close error leaked: %v", err)
	}
}

func TestSend_DialError(t *testing.T) {
	dialErr := errors.New("connection refused")
	s, _ := newSender(nil, dialErr)

	if err := s.Send(context.Background(), []byte("[]")); !errors.Is(err, dialErr) {
		t.Fatalf("expected dial error, got %v", err)
	}
}

func TestSend_CancelledContextDoesNotDial(t *testing.T) {
	s, dials := newSender(&fakeChannel{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Send(ctx, []byte("[]")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if *dials != 0 {
		t.Fatalf("dialled %d times", *dials)
	}
}
