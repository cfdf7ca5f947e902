package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RideExchange is the topic exchange ride request events are published to.
// Routing keys look like "ride_request.accepted".
const RideExchange = "ride_topic"

const publishTimeout = 5 * time.Second

// Publisher sends domain events to an external broker.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// AMQPPublisher publishes JSON events to a RabbitMQ topic exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	log      echo.Logger

	mu     sync.Mutex
	closed bool
}

// NewAMQPPublisher dials the broker, retrying with backoff, and declares the exchange.
func NewAMQPPublisher(ctx context.Context, url, exchange string, log echo.Logger) (*AMQPPublisher, error) {
	const maxRetries = 5
	retryDelay := time.Second

	var (
		conn *amqp.Connection
		err  error
	)
	for attempt := 1; attempt <= maxRetries; attempt++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		log.Warnf("rabbitmq connection attempt %d/%d failed: %v", attempt, maxRetries, err)
		if attempt == maxRetries {
			return nil, fmt.Errorf("events.NewAMQPPublisher: failed to connect after %d attempts: %w", maxRetries, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
			retryDelay = retryDelay * 3 / 2
		}
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("events.NewAMQPPublisher: open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("events.NewAMQPPublisher: declare exchange %s: %w", exchange, err)
	}

	log.Infof("connected to rabbitmq, publishing to exchange %s", exchange)
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange, log: log}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("events.Publish: marshal: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("events.Publish: publisher is closed")
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(
		publishCtx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("events.Publish %s: %w", routingKey, err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	if err := p.ch.Close(); err != nil {
		p.log.Warnf("rabbitmq channel close: %v", err)
	}
	return p.conn.Close()
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }
func (NoopPublisher) Close() error                                { return nil }
