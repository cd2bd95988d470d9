package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type RabbitClient struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	queue    string
	logger   *zap.Logger

	// amqp channels are not safe for concurrent publishing
	mu sync.Mutex
}

func NewRabbitClient(url, exchange, queue string, logger *zap.Logger) (*RabbitClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to RabbitMQ")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "failed to open RabbitMQ channel")
	}

	c := &RabbitClient{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		queue:    queue,
		logger:   logger,
	}

	if err = ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		c.Close()
		return nil, errors.Wrap(err, "failed to declare exchange")
	}

	if _, err = ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		c.Close()
		return nil, errors.Wrap(err, "failed to declare queue")
	}

	if err = ch.QueueBind(queue, "registration.#", exchange, false, nil); err != nil {
		c.Close()
		return nil, errors.Wrap(err, "failed to bind queue")
	}

	logger.Info("rabbitmq initialized", zap.String("exchange", exchange), zap.String("queue", queue))

	return c, nil
}

func (c *RabbitClient) Close() {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Publish sends the message with its type as the routing key.
func (c *RabbitClient) Publish(ctx context.Context, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshal message")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.channel.PublishWithContext(ctx, c.exchange, string(msg.Type), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.RegistrationID,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return errors.Wrapf(err, "publish %s", msg.Type)
	}

	c.logger.Debug("message published",
		zap.String("type", string(msg.Type)),
		zap.String("registration_id", msg.RegistrationID))
	return nil
}

// Consume delivers messages to handler until ctx is cancelled. Handler failures are
// requeued once; a redelivered message that fails again is dropped.
func (c *RabbitClient) Consume(ctx context.Context, handler func(context.Context, *Message) error) error {
	deliveries, err := c.channel.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return errors.Wrap(err, "failed to start consuming messages")
	}

	c.logger.Info("started consuming", zap.String("queue", c.queue))

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}

			msg := &Message{}
			if err = json.Unmarshal(d.Body, msg); err != nil {
				c.logger.Error("failed to decode message", zap.Error(err), zap.ByteString("body", d.Body))
				_ = d.Nack(false, false)
				continue
			}

			if err = handler(ctx, msg); err != nil {
				c.logger.Warn("failed to process message",
					zap.String("registration_id", msg.RegistrationID),
					zap.Bool("redelivered", d.Redelivered),
					zap.Error(err))
				_ = d.Nack(false, !d.Redelivered)
				continue
			}
			_ = d.Ack(false)
		}
	}
}
