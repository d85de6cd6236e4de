package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/famledger/pkg/domain/events"
	"github.com/amirasaad/famledger/pkg/eventbus"

	"github.com/rabbitmq/amqp091-go"
)

// AMQPEventBus publishes events to a durable topic exchange, routed by
// event type.
type AMQPEventBus struct {
	conn      *amqp091.Connection
	channel   *amqp091.Channel
	exchange  string
	queue     string
	factories map[string]func() events.Event
	logger    *slog.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWithAMQP dials url and declares exchange. queue is the prefix of the
// per-type queues created by Register.
func NewWithAMQP(url, exchange, queue string, logger *slog.Logger) (*AMQPEventBus, error) {
	if url == "" || exchange == "" {
		return nil, fmt.Errorf("amqp event bus: url and exchange are required")
	}
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp event bus: dial: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp event bus: open channel: %w", err)
	}
	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp event bus: declare exchange: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &AMQPEventBus{
		conn:      conn,
		channel:   channel,
		exchange:  exchange,
		queue:     queue,
		factories: events.Factories(),
		logger:    logger.With("component", "amqp-event-bus"),
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Emit publishes event with its type as routing key.
func (b *AMQPEventBus) Emit(ctx context.Context, event events.Event) error {
	body, err := encode(event)
	if err != nil {
		return fmt.Errorf("amqp event bus: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	b.mu.Lock()
	err = b.channel.PublishWithContext(
		ctx,
		b.exchange,   // exchange
		event.Type(), // routing key
		false,        // mandatory
		false,        // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Type:         event.Type(),
			Body:         body,
		},
	)
	b.mu.Unlock()
	if err != nil {
		b.logger.Error("failed to publish event", "error", err, "type", event.Type())
		return fmt.Errorf("amqp event bus: publish: %w", err)
	}
	b.logger.Debug("event published", "type", event.Type(), "exchange", b.exchange)
	return nil
}

// Register declares "<queue>.<eventType>", binds it to the exchange and
// consumes it on a dedicated channel. Failed handlers nack without requeue.
func (b *AMQPEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	queue := b.queue + "." + eventType
	ch, err := b.conn.Channel()
	if err != nil {
		b.logger.Error("failed to open consumer channel", "error", err, "queue", queue)
		return
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		b.logger.Error("failed to declare queue", "error", err, "queue", queue)
		_ = ch.Close()
		return
	}
	if err := ch.QueueBind(queue, eventType, b.exchange, false, nil); err != nil {
		b.logger.Error("failed to bind queue", "error", err, "queue", queue)
		_ = ch.Close()
		return
	}
	msgs, err := ch.Consume(
		queue, // queue
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		b.logger.Error("failed to start consuming", "error", err, "queue", queue)
		_ = ch.Close()
		return
	}
	b.logger.Info("registered handler", "event_type", eventType, "queue", queue)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer func() { _ = ch.Close() }()
		for {
			select {
			case <-b.ctx.Done():
				return
			case delivery, ok := <-msgs:
				if !ok {
					b.logger.Warn("delivery channel closed", "queue", queue)
					return
				}
				b.dispatch(delivery, handler)
			}
		}
	}()
}

func (b *AMQPEventBus) dispatch(delivery amqp091.Delivery, handler eventbus.HandlerFunc) {
	evt, err := decode(delivery.Body, b.factories)
	if err != nil {
		b.logger.Error("failed to decode event", "error", err)
		_ = delivery.Nack(false, false)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panic recovered", "panic", r, "type", evt.Type())
			_ = delivery.Nack(false, false)
		}
	}()
	if err := handler(b.ctx, evt); err != nil {
		b.logger.Error("handler error", "error", err, "type", evt.Type())
		_ = delivery.Nack(false, false)
		return
	}
	_ = delivery.Ack(false)
}

// Close stops the consumers and closes the connection.
func (b *AMQPEventBus) Close() error {
	b.cancel()
	b.wg.Wait()
	if b.channel != nil {
		_ = b.channel.Close()
	}
	return b.conn.Close()
}

var _ eventbus.Bus = (*AMQPEventBus)(nil)
