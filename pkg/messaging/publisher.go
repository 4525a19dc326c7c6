// Package messaging publishes domain events to RabbitMQ.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"propertyhub-api/pkg/config"
	"propertyhub-api/pkg/logger"

	"github.com/rabbitmq/amqp091-go"
)

// Routing keys
const (
	InquiryCreated = "inquiry.created"
)

// InquiryCreatedEvent tells a listing owner that someone asked about their property.
type InquiryCreatedEvent struct {
	InquiryID     string    `json:"inquiry_id"`
	PropertyID    string    `json:"property_id"`
	PropertyTitle string    `json:"property_title"`
	OwnerID       string    `json:"owner_id"`
	SenderID      string    `json:"sender_id"`
	SenderName    string    `json:"sender_name"`
	SenderEmail   string    `json:"sender_email"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"created_at"`
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
	Close() error
}

type RabbitPublisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

// NewRabbitPublisher connects and declares a durable topic exchange.
func NewRabbitPublisher(cfg config.RabbitMQConfig) (*RabbitPublisher, error) {
	conn, err := amqp091.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %v", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %v", err)
	}

	err = channel.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-delete
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %v", cfg.Exchange, err)
	}

	logger.GlobalLogger.Printf("RabbitMQ connected (exchange=%s)", cfg.Exchange)
	return &RabbitPublisher{conn: conn, channel: channel, exchange: cfg.Exchange}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(ctx,
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (p *RabbitPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NoopPublisher drops every event. It is used when RabbitMQ is not configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(_ context.Context, routingKey string, _ interface{}) error {
	logger.GlobalLogger.Debugf("messaging disabled, dropping %s event", routingKey)
	return nil
}

func (NoopPublisher) Close() error { return nil }
