package rabbitmq

import (
	"errors"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// Client represents a RabbitMQ connection with one open channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Close closes the channel and then the connection. Both are attempted even
// if the first one fails.
func (r *Client) Close() error {
	var errs []error
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if r.conn != nil {
		if err := r.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Dial connects to url and opens a channel. A zero timeout uses the library default.
func Dial(url string, timeout time.Duration) (*Client, error) {
	cfg := amqp.Config{}
	if timeout > 0 {
		cfg.Dial = amqp.DefaultDial(timeout)
	}

	conn, err := amqp.DialConfig(url, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		openErr := fmt.Errorf("failed to open a channel: %w", err)
		if closeErr := conn.Close(); closeErr != nil {
			return nil, errors.Join(openErr, fmt.Errorf("failed to close a connection: %w", closeErr))
		}

		return nil, openErr
	}

	return &Client{
		conn:    conn,
		channel: channel,
	}, nil
}

type DeclareQueueConfig struct {
	Name       string
	Durable    bool
	AutoDelete bool
	Exclusive  bool
	NoWait     bool
	Args       amqp.Table
}

// DeclareQueue declares a queue with the given configuration.
func (r *Client) DeclareQueue(cfg DeclareQueueConfig) (amqp.Queue, error) {
	return r.channel.QueueDeclare(
		cfg.Name,
		cfg.Durable,
		cfg.AutoDelete,
		cfg.Exclusive,
		cfg.NoWait,
		cfg.Args,
	)
}

// Publish publishes msg to queue through the default exchange.
func (r *Client) Publish(queue string, msg amqp.Publishing) error {
	return r.channel.Publish("", queue, false, false, msg)
}
