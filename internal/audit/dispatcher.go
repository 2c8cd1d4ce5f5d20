package audit

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-admin/internal/metrics"
)

const (
	DefaultQueueSize = 100
	processTimeout   = 5 * time.Second
)

// Dispatcher moves audit writes off the request path. Events are queued
// without blocking and dropped when the queue is full.
type Dispatcher struct {
	sink  Sink
	queue chan Event
	log   *logrus.Logger
}

func NewDispatcher(sink Sink, size int, log *logrus.Logger) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Dispatcher{
		sink:  sink,
		queue: make(chan Event, size),
		log:   log,
	}
}

// Track enqueues ev. The request context is not carried over since the
// write happens after the response.
func (d *Dispatcher) Track(_ context.Context, ev Event) {
	select {
	case d.queue <- ev:
		metrics.AuditQueueDepth.Set(float64(len(d.queue)))
	default:
		metrics.AuditEventsDropped.Inc()
		d.log.WithFields(logrus.Fields{
			"entity_type": ev.EntityType,
			"entity_id":   ev.EntityID,
			"action":      ev.Action,
		}).Warn("audit queue full, dropping event")
	}
}

// Run processes events until ctx is cancelled, then drains what is left.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case ev := <-d.queue:
			d.process(ev)
		case <-ctx.Done():
			d.drain()
			return
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case ev := <-d.queue:
			d.process(ev)
		default:
			return
		}
	}
}

func (d *Dispatcher) process(ev Event) {
	metrics.AuditQueueDepth.Set(float64(len(d.queue)))

	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	d.sink.Track(ctx, ev)
}
