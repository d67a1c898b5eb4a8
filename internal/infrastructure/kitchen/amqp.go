package kitchen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/tk-rocha/garcom-api/internal/application/service"
)

// Config holds the broker connection settings
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string // default "/"
	Exchange string // default "kitchen"
}

// Notifier publishes kitchen tickets to RabbitMQ with publisher confirms.
// It implements service.KitchenNotifier.
type Notifier struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string

	acks <-chan amqp.Confirmation
	mu   sync.Mutex // serializes Publish while waiting on confirms
}

// Dial connects to the broker and declares the kitchen exchange
func Dial(cfg Config) (*Notifier, error) {
	if cfg.VHost == "" {
		cfg.VHost = "/"
	}
	if cfg.Exchange == "" {
		cfg.Exchange = "kitchen"
	}

	url := fmt.Sprintf("amqp://%s:%s@%s:%d/%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.VHost)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	// Enable publisher confirms so a lost ticket surfaces as an error
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	return &Notifier{conn: conn, ch: ch, exchange: cfg.Exchange, acks: acks}, nil
}

// Close shuts down the channel and connection
func (n *Notifier) Close() {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		_ = n.conn.Close()
	}
}

// Ping reports whether the broker connection is alive
func (n *Notifier) Ping() error {
	if n.conn == nil || n.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

// PublishTicket publishes a ticket and waits for the broker ack
func (n *Notifier) PublishTicket(ctx context.Context, ticket service.Ticket) error {
	body, err := json.Marshal(ticket)
	if err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	err = n.ch.PublishWithContext(
		ctx,
		n.exchange,
		"ticket."+ticket.ContextKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return err
	}

	select {
	case conf := <-n.acks:
		if conf.Ack {
			return nil
		}
		return errors.New("publish NACK from broker")
	case <-ctx.Done():
		return ctx.Err()
	}
}
