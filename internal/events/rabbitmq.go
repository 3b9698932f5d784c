package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tour-booking/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// RabbitMQPublisher delivers guide-assignment events to a durable
// queue consumed by the notification dispatcher.
type RabbitMQPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	log     *zap.Logger
}

func NewRabbitMQPublisher(config utils.AMQPConfig, log *zap.Logger) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(config.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	q, err := channel.QueueDeclare(
		config.QueueName, // name
		true,             // durable
		false,            // delete when unused
		false,            // exclusive
		false,            // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", config.QueueName, err)
	}

	return &RabbitMQPublisher{
		conn:    conn,
		channel: channel,
		queue:   q,
		log:     log.With(zap.String("publisher", "rabbitmq")),
	}, nil
}

func (p *RabbitMQPublisher) PublishGuideAssigned(ctx context.Context, event GuideAssignedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal guide assigned event: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		"",           // exchange
		p.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.log.Error("Failed to publish guide assigned event",
			zap.Error(err),
			zap.String("schedule_id", event.ScheduleID),
			zap.String("guide_id", event.GuideID),
		)
		return fmt.Errorf("publish guide assigned event: %w", err)
	}

	return nil
}

func (p *RabbitMQPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return fmt.Errorf("close channel: %w", err)
	}
	return p.conn.Close()
}
