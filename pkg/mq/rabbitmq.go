package mq

import (
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const heartbeat = 10 * time.Second

var ErrConnectionClosed = errors.New("amqp connection is closed")

type Config struct {
	URL            string `mapstructure:"url"`
	ConnectionName string `mapstructure:"connection_name"`
}

type RabbitMQ struct {
	conn   *amqp.Connection
	logger *zap.Logger
}

// NewConnection dials the broker. The URL is never logged since it carries credentials.
func NewConnection(cfg Config, logger *zap.Logger) (*RabbitMQ, error) {
	logger = logger.With(zap.String("host", Host(cfg.URL)))

	props := amqp.NewConnectionProperties()
	if cfg.ConnectionName != "" {
		props.SetClientConnectionName(cfg.ConnectionName)
	}

	conn, err := amqp.DialConfig(cfg.URL, amqp.Config{Heartbeat: heartbeat, Properties: props})
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", zap.Error(err))
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	logger.Info("Connected to RabbitMQ")

	return &RabbitMQ{conn: conn, logger: logger}, nil
}

// Host returns the broker address of an AMQP URI without its credentials.
func Host(uri string) string {
	parsed, err := amqp.ParseURI(uri)
	if err != nil {
		return "invalid-uri"
	}

	return fmt.Sprintf("%s:%d", parsed.Host, parsed.Port)
}

func (r *RabbitMQ) OpenChannel() (*amqp.Channel, error) {
	if r.conn == nil || r.conn.IsClosed() {
		return nil, ErrConnectionClosed
	}

	ch, err := r.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	return ch, nil
}

// DeclareQueues declares durable queues on a short-lived channel.
func (r *RabbitMQ) DeclareQueues(queues ...string) error {
	ch, err := r.OpenChannel()
	if err != nil {
		return err
	}
	defer ch.Close()

	for _, queue := range queues {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}
	}

	r.logger.Info("Queues declared", zap.Strings("queues", queues))

	return nil
}

// CreatePublisher opens a channel in confirm mode so every publish waits for the broker ack.
func (r *RabbitMQ) CreatePublisher() (*RabbitPublisher, error) {
	ch, err := r.OpenChannel()
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("enable publisher confirms: %w", err)
	}

	return NewRabbitPublisher(ch), nil
}

func (r *RabbitMQ) Close() error {
	if r.conn == nil || r.conn.IsClosed() {
		return nil
	}

	return r.conn.Close()
}
