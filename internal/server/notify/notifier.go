// Package notify delivers password reset links to users. Delivery itself
// (e-mail) happens outside this service.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/guardianeye/guardianeye/internal/logging"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Notifier hands a reset link to whatever delivers it.
type Notifier interface {
	NotifyPasswordReset(ctx context.Context, email, rawToken, resetURL string) error
}

// LogNotifier writes the reset link to the log. Useful for local development.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(log logging.Logger) *LogNotifier {
	return &LogNotifier{log: log.With("component", "notifier")}
}

func (n *LogNotifier) NotifyPasswordReset(ctx context.Context, email, rawToken, resetURL string) error {
	n.log.Info(ctx, "password reset requested", "email", email, "reset_url", resetURL)
	return nil
}

// publisher is the part of *amqp.Channel used by AMQPNotifier.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// PasswordResetEvent is the message published for the mail worker.
type PasswordResetEvent struct {
	Type     string    `json:"type"`
	Email    string    `json:"email"`
	Token    string    `json:"token"`
	ResetURL string    `json:"resetUrl"`
	IssuedAt time.Time `json:"issuedAt"`
}

const passwordResetEventType = "password_reset"

// AMQPNotifier publishes reset events to a RabbitMQ exchange.
type AMQPNotifier struct {
	ch         publisher
	exchange   string
	routingKey string
	now        func() time.Time
}

func NewAMQPNotifier(ch publisher, exchange, routingKey string) *AMQPNotifier {
	return &AMQPNotifier{ch: ch, exchange: exchange, routingKey: routingKey, now: time.Now}
}

func (n *AMQPNotifier) NotifyPasswordReset(ctx context.Context, email, rawToken, resetURL string) error {
	event := PasswordResetEvent{
		Type:     passwordResetEventType,
		Email:    email,
		Token:    rawToken,
		ResetURL: resetURL,
		IssuedAt: n.now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal reset event: %w", err)
	}

	err = n.ch.PublishWithContext(ctx, n.exchange, n.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.IssuedAt,
		Type:         passwordResetEventType,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish reset event: %w", err)
	}

	return nil
}

// DialAMQP connects to the broker, declares a durable topic exchange and
// returns a notifier plus a function releasing the connection.
func DialAMQP(url, exchange, routingKey string) (*AMQPNotifier, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("amqp channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declare exchange: %w", err)
	}

	closeFn := func() error {
		_ = ch.Close()
		return conn.Close()
	}

	return NewAMQPNotifier(ch, exchange, routingKey), closeFn, nil
}
