package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"prive-ledger/pkg/config"
	"prive-ledger/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	LedgerEventsQueueName = "ledger_events"
	LedgerExchange        = "ledger"
)

// Routing keys for ledger events consumed by the notification service.
const (
	RoutingKeyTipReceived     = "tip.received"
	RoutingKeyPayoutRequested = "payout.requested"
	RoutingKeyPayoutSettled   = "payout.settled"
	RoutingKeyPayoutFailed    = "payout.failed"
)

// LedgerEvent is the payload published for every noteworthy balance event.
// Amount is in minor currency units and signed the same way as the
// transaction it documents.
type LedgerEvent struct {
	TransactionID string    `json:"transaction_id"`
	AccountID     string    `json:"account_id"`
	UserID        string    `json:"user_id,omitempty"`
	Kind          string    `json:"kind"`
	Amount        int64     `json:"amount"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		LedgerExchange, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		LedgerEventsQueueName, // name
		true,                  // durable
		false,                 // delete when unused
		false,                 // exclusive
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		LedgerEventsQueueName, // queue
		"#",                   // routing key: all ledger events
		LedgerExchange,        // exchange
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	return &Client{conn: conn, channel: channel, logger: log}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishLedgerEvent publishes a persistent ledger event under the given
// routing key. Publishing is best-effort from the caller's point of view: the
// ledger mutation has already committed, so failures are logged, never rolled
// back.
func (c *Client) PublishLedgerEvent(routingKey string, event LedgerEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = c.channel.Publish(
		LedgerExchange, // exchange
		routingKey,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         eventJSON,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish to exchange=%s, routing_key=%s: %v", LedgerExchange, routingKey, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published ledger event routing_key=%s tx=%s", routingKey, event.TransactionID)
	return nil
}
