package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/youtube-seguro/video-catalog-go/internal/config"
	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
	"github.com/youtube-seguro/video-catalog-go/internal/metrics"
	"github.com/youtube-seguro/video-catalog-go/pkg/logger"
)

const confirmTimeout = 5 * time.Second

// EventPublisher fans catalog events out to subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event *models.CatalogEvent) error
	IsHealthy() bool
	Close() error
}

// NopPublisher drops every event. It is used when RabbitMQ is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *models.CatalogEvent) error { return nil }
func (NopPublisher) IsHealthy() bool                                     { return true }
func (NopPublisher) Close() error                                        { return nil }

// MessagePublisher publishes catalog events to a RabbitMQ topic exchange with
// publisher confirms. Each publish waits on its own deferred confirmation, so
// a confirm that arrives after its caller gave up is never read by another
// publish.
type MessagePublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	config  *config.RabbitMQConfig
	mu      sync.Mutex
}

func NewMessagePublisher(cfg *config.RabbitMQConfig) (*MessagePublisher, error) {
	mp := &MessagePublisher{
		config: cfg,
	}

	if err := mp.connect(); err != nil {
		return nil, err
	}

	return mp, nil
}

func (mp *MessagePublisher) connect() error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	conn, err := amqp.Dial(amqpURL(mp.config))
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	// Enable publisher confirms
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	if err := ch.ExchangeDeclare(
		mp.config.Exchange, // name
		"topic",            // type
		true,               // durable
		false,              // auto-deleted
		false,              // internal
		false,              // no-wait
		nil,                // arguments
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	// Audit queue receives every event matching the binding key.
	_, err = ch.QueueDeclare(
		mp.config.Queue, // name
		true,            // durable
		false,           // delete when unused
		false,           // exclusive
		false,           // no-wait
		amqp.Table{
			"x-message-ttl": 86400000, // 24 hours
			"x-max-length":  100000,
		},
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(
		mp.config.Queue,      // queue name
		mp.config.BindingKey, // binding key
		mp.config.Exchange,   // exchange
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	mp.conn = conn
	mp.channel = ch

	logger.Log.Info("Connected to RabbitMQ",
		zap.String("exchange", mp.config.Exchange),
		zap.String("queue", mp.config.Queue),
	)

	return nil
}

// Publish sends event with its type as routing key and waits up to
// confirmTimeout for the broker confirm of that message.
func (mp *MessagePublisher) Publish(ctx context.Context, event *models.CatalogEvent) (err error) {
	defer func() {
		metrics.RecordEventPublish(string(event.Type), err)
	}()

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	mp.mu.Lock()
	ch := mp.channel
	if ch == nil {
		mp.mu.Unlock()
		return errors.New("channel is not initialized")
	}
	confirmation, err := ch.PublishWithDeferredConfirmWithContext(
		ctx,
		mp.config.Exchange, // exchange
		string(event.Type), // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			MessageId:    event.ID.String(),
			Type:         string(event.Type),
		},
	)
	mp.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, confirmTimeout)
	defer cancel()

	acked, err := confirmation.WaitContext(waitCtx)
	if err != nil {
		return fmt.Errorf("waiting for publish confirmation (delivery tag %d): %w", confirmation.DeliveryTag, err)
	}
	if !acked {
		return fmt.Errorf("message with delivery tag %d was not acknowledged by broker", confirmation.DeliveryTag)
	}

	logger.Log.Debug("Published event to RabbitMQ",
		zap.String("eventId", event.ID.String()),
		zap.String("routingKey", string(event.Type)),
		zap.Uint64("deliveryTag", confirmation.DeliveryTag),
		zap.Int64("videoId", event.VideoID),
	)

	return nil
}

func (mp *MessagePublisher) Close() error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	var errs []error
	if mp.channel != nil {
		if err := mp.channel.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if mp.conn != nil {
		if err := mp.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing publisher: %w", errors.Join(errs...))
	}

	logger.Log.Info("RabbitMQ publisher closed")
	return nil
}

func (mp *MessagePublisher) IsHealthy() bool {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	return mp.conn != nil && !mp.conn.IsClosed() && mp.channel != nil
}

func amqpURL(cfg *config.RabbitMQConfig) string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", cfg.User, cfg.Password, cfg.Host, cfg.Port)
}

// publishBestEffort sends an event after a committed write. Failures are
// logged and never surface to the caller.
func publishBestEffort(ctx context.Context, publisher EventPublisher, event *models.CatalogEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Log.Warn("Failed to publish catalog event",
			zap.Error(err),
			zap.String("eventId", event.ID.String()),
			zap.String("type", string(event.Type)),
			zap.Int64("videoId", event.VideoID),
		)
	}
}
