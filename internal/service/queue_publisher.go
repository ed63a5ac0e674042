package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	q "github.com/mahamabbas5/HospitalManagement-DSA/internal/queue"
)

// EventPublisher delivers facility events to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, ev q.FacilityEvent) error
}

// NopPublisher drops every event. It is used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, q.FacilityEvent) error { return nil }

// AMQPPublisher publishes events to a durable RabbitMQ queue through the
// default exchange. Each call opens its own connection, so a broker
// outage only affects the calls made while it lasts.
type AMQPPublisher struct {
	URL    string
	Queue  string
	Logger *zap.Logger
}

// Publish sends ev as a persistent JSON message. Errors are logged and
// returned so the caller can choose to ignore them.
func (p *AMQPPublisher) Publish(ctx context.Context, ev q.FacilityEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Logger.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Logger.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		p.Queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		p.Logger.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Type:         ev.Type,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		p.Queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		pub,
	); err != nil {
		p.Logger.Warn("rabbitmq: publish failed", zap.Error(err), zap.String("event_type", ev.Type))
		return err
	}
	return nil
}
