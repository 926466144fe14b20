package rabbitmq

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/streadway/amqp"

	"crm/internal/core/ports"
)

// MailSender delivers one notification to its recipient. The SMTP adapter
// implements it.
type MailSender interface {
	Send(notification ports.Notification) error
}

// Consumer drains the notification queue and hands each message to the mail
// sender. Malformed and undeliverable messages are logged and dropped rather
// than requeued, so one bad message cannot wedge the queue.
type Consumer struct {
	channel *amqp.Channel
	sender  MailSender
	logger  *slog.Logger
}

// NewConsumer opens a channel on the given connection and declares the
// notification queue.
func NewConsumer(conn *amqp.Connection, sender MailSender, logger *slog.Logger) (*Consumer, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	if _, err = channel.QueueDeclare(NotificationQueue, true, false, false, false, nil); err != nil {
		_ = channel.Close()
		return nil, err
	}

	return &Consumer{
		channel: channel,
		sender:  sender,
		logger:  logger.With("component", "notification-consumer"),
	}, nil
}

// Run consumes until the context is cancelled or the channel closes.
func (c *Consumer) Run(ctx context.Context) error {
	deliveries, err := c.channel.Consume(NotificationQueue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return c.channel.Close()
		case delivery, ok := <-deliveries:
			if !ok {
				return nil
			}
			c.handle(delivery)
		}
	}
}

func (c *Consumer) handle(delivery amqp.Delivery) {
	var notification ports.Notification
	if err := json.Unmarshal(delivery.Body, &notification); err != nil {
		c.logger.Error("dropping malformed notification", "error", err)
		_ = delivery.Nack(false, false)
		return
	}

	if err := c.sender.Send(notification); err != nil {
		c.logger.Error("notification delivery failed",
			"recipient", notification.Recipient, "error", err)
		_ = delivery.Nack(false, false)
		return
	}

	c.logger.Info("notification delivered",
		"recipient", notification.Recipient, "subject", notification.Subject)
	_ = delivery.Ack(false)
}
