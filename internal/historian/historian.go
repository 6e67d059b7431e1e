// internal/historian/historian.go is an asynchronous historian that pops game events from a
// Redis queue and persists them to PostgreSQL in batches.
package historian

import (
	"context"
	"errors"
	"time"

	"github.com/jason-s-yu/bidquiz/internal/cache"
	"github.com/jason-s-yu/bidquiz/internal/models"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Queue is the part of the Redis client the historian reads with.
type Queue interface {
	BLPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
}

// Sink persists a batch of events atomically.
type Sink interface {
	InsertEvents(ctx context.Context, events []models.GameEvent) error
}

// Options tunes the batching behavior.
type Options struct {
	QueueName  string
	BatchSize  int
	FlushDelay time.Duration
	// PopTimeout bounds each BLPop so cancellation and timed flushes are noticed.
	PopTimeout time.Duration
	Logger     *log.Logger
}

// Service drains the event queue into the sink. Run owns all of its state; it is not safe to
// call Run twice concurrently.
type Service struct {
	queue Queue
	sink  Sink
	opts  Options

	batch []models.GameEvent
}

// maxPendingBatches bounds how much is held in memory while the sink is failing.
const maxPendingBatches = 50

// New builds a Service. Zero options fall back to the defaults used by the server.
func New(queue Queue, sink Sink, opts Options) *Service {
	if opts.QueueName == "" {
		opts.QueueName = cache.DefaultQueueName
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 20
	}
	if opts.FlushDelay <= 0 {
		opts.FlushDelay = 500 * time.Millisecond
	}
	if opts.PopTimeout <= 0 {
		opts.PopTimeout = time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.StandardLogger()
	}
	return &Service{
		queue: queue,
		sink:  sink,
		opts:  opts,
		batch: make([]models.GameEvent, 0, opts.BatchSize),
	}
}

// Run reads until ctx is cancelled, then flushes whatever is left.
func (s *Service) Run(ctx context.Context) {
	s.opts.Logger.WithField("queue", s.opts.QueueName).Info("historian started")
	ticker := time.NewTicker(s.opts.FlushDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			s.flush(flushCtx)
			cancel()
			s.opts.Logger.Info("historian shutting down")
			return

		case <-ticker.C:
			s.flush(ctx)

		default:
			s.pop(ctx)
		}
	}
}

func (s *Service) pop(ctx context.Context) {
	res, err := s.queue.BLPop(ctx, s.opts.PopTimeout, s.opts.QueueName).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			s.opts.Logger.WithError(err).Error("BLPop failed")
			time.Sleep(s.opts.PopTimeout)
		}
		return
	}
	// res[0] is the queue name and res[1] the payload
	if len(res) < 2 {
		return
	}
	ev, err := cache.DecodeEvent([]byte(res[1]))
	if err != nil {
		s.opts.Logger.WithError(err).Warn("dropping malformed event")
		return
	}
	s.batch = append(s.batch, ev)
	if len(s.batch) >= s.opts.BatchSize {
		s.flush(ctx)
	}
}

// flush writes the pending batch. On failure the events stay pending for the next attempt.
func (s *Service) flush(ctx context.Context) {
	if len(s.batch) == 0 {
		return
	}
	if err := s.sink.InsertEvents(ctx, s.batch); err != nil {
		s.opts.Logger.WithError(err).WithField("pending", len(s.batch)).Error("flush failed")
		if limit := s.opts.BatchSize * maxPendingBatches; len(s.batch) > limit {
			dropped := len(s.batch) - limit
			s.batch = append(s.batch[:0], s.batch[dropped:]...)
			s.opts.Logger.WithField("dropped", dropped).Warn("historian backlog full")
		}
		return
	}
	s.opts.Logger.WithField("count", len(s.batch)).Debug("flushed events")
	s.batch = make([]models.GameEvent, 0, s.opts.BatchSize)
}
