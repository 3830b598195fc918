package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sink delivers a message to one channel.
type Sink interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher delivers messages in the background. Dispatch never blocks the
// caller: when the queue is full the message is dropped and logged.
type Dispatcher struct {
	sink    Sink
	logger  *zap.Logger
	timeout time.Duration

	queue chan Message
	wg    sync.WaitGroup
	once  sync.Once
}

func NewDispatcher(sink Sink, queueSize int, logger *zap.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 100
	}

	d := &Dispatcher{
		sink:    sink,
		logger:  logger,
		timeout: 10 * time.Second,
		queue:   make(chan Message, queueSize),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := d.sink.Send(ctx, msg); err != nil {
			d.logger.Error("notification delivery failed",
				zap.String("notification_id", msg.ID),
				zap.String("user_id", msg.UserID),
				zap.String("type", msg.Type),
				zap.Error(err),
			)
		}
		cancel()
	}
}

// Dispatch queues msg and reports whether it was accepted.
func (d *Dispatcher) Dispatch(msg Message) bool {
	select {
	case d.queue <- msg:
		return true
	default:
		d.logger.Warn("notification queue full, dropping message",
			zap.String("user_id", msg.UserID),
			zap.String("type", msg.Type),
		)
		return false
	}
}

// Close stops accepting messages and waits for the queue to drain or ctx to
// end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.once.Do(func() { close(d.queue) })

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
