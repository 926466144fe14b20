// Package rabbitmq carries notifications through a durable RabbitMQ queue.
// The publisher side enqueues JSON messages inside command handlers; the
// consumer side drains them and hands each to a mail sender, so a slow mail
// server never blocks a business operation.
package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/streadway/amqp"

	"crm/internal/core/ports"
)

// NotificationQueue is the durable queue notifications travel through.
const NotificationQueue = "crm.notifications"

// Publisher enqueues notifications onto the notification queue.
type Publisher struct {
	channel *amqp.Channel
}

// NewPublisher opens a channel on the given connection and declares the
// notification queue.
func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	if _, err = channel.QueueDeclare(NotificationQueue, true, false, false, false, nil); err != nil {
		_ = channel.Close()
		return nil, err
	}

	return &Publisher{channel: channel}, nil
}

// Publish enqueues one notification as a persistent JSON message.
func (p *Publisher) Publish(_ context.Context, notification ports.Notification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	return p.channel.Publish("", NotificationQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

// Close releases the underlying channel.
func (p *Publisher) Close() error {
	return p.channel.Close()
}

var _ ports.NotificationPublisher = (*Publisher)(nil)
