package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/youtube-seguro/video-catalog-go/internal/db/models"
	"github.com/youtube-seguro/video-catalog-go/internal/metrics"
	"github.com/youtube-seguro/video-catalog-go/pkg/logger"
)

// DefaultEventBuffer is the number of events AsyncPublisher holds before it
// starts dropping.
const DefaultEventBuffer = 1024

var (
	// ErrEventQueueFull is returned when the buffer is full and the event was dropped.
	ErrEventQueueFull = errors.New("event queue full")
	// ErrPublisherClosed is returned by Publish after Close.
	ErrPublisherClosed = errors.New("publisher closed")
)

// AsyncPublisher queues events and hands them to the wrapped publisher from
// one background goroutine, so callers never wait on the broker.
type AsyncPublisher struct {
	next   EventPublisher
	queue  chan *models.CatalogEvent
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
}

// NewAsyncPublisher starts the delivery goroutine. A non-positive buffer uses
// DefaultEventBuffer.
func NewAsyncPublisher(next EventPublisher, buffer int) *AsyncPublisher {
	if buffer <= 0 {
		buffer = DefaultEventBuffer
	}
	p := &AsyncPublisher{
		next:  next,
		queue: make(chan *models.CatalogEvent, buffer),
		done:  make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish enqueues event without blocking. The caller's context only guards
// the enqueue; delivery runs on its own deadline.
func (p *AsyncPublisher) Publish(ctx context.Context, event *models.CatalogEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPublisherClosed
	}

	select {
	case p.queue <- event:
		return nil
	default:
		metrics.RecordEventPublish(string(event.Type), ErrEventQueueFull)
		return ErrEventQueueFull
	}
}

func (p *AsyncPublisher) run() {
	defer close(p.done)

	for event := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), confirmTimeout)
		if err := p.next.Publish(ctx, event); err != nil {
			logger.Log.Warn("Failed to deliver catalog event",
				zap.Error(err),
				zap.String("eventId", event.ID.String()),
				zap.String("type", string(event.Type)),
			)
		}
		cancel()
	}
}

// IsHealthy reports the health of the wrapped publisher.
func (p *AsyncPublisher) IsHealthy() bool {
	return p.next.IsHealthy()
}

// Close stops accepting events, delivers what is queued and closes the
// wrapped publisher.
func (p *AsyncPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	return p.next.Close()
}
