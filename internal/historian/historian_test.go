// internal/historian/historian_test.go
package historian

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/bidquiz/internal/cache"
	"github.com/jason-s-yu/bidquiz/internal/models"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeQueue serves queued payloads and then reports an empty list.
type fakeQueue struct {
	mu    sync.Mutex
	items []string
}

func (q *fakeQueue) push(t *testing.T, ev models.GameEvent) {
	data, err := cache.EncodeEvent(ev)
	require.NoError(t, err)
	q.mu.Lock()
	q.items = append(q.items, string(data))
	q.mu.Unlock()
}

func (q *fakeQueue) BLPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		time.Sleep(time.Millisecond)
		return redis.NewStringSliceResult(nil, redis.Nil)
	}
	item := q.items[0]
	q.items = q.items[1:]
	return redis.NewStringSliceResult([]string{keys[0], item}, nil)
}

type fakeSink struct {
	mu      sync.Mutex
	batches [][]models.GameEvent
	fail    bool
}

func (s *fakeSink) InsertEvents(_ context.Context, events []models.GameEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("db down")
	}
	s.batches = append(s.batches, append([]models.GameEvent(nil), events...))
	return nil
}

func (s *fakeSink) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.batches {
		n += len(b)
	}
	return n
}

func quiet() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

func event(typ string) models.GameEvent {
	return models.GameEvent{ID: uuid.New(), Type: typ, Round: 1, Timestamp: time.Now().UnixMilli()}
}

func TestFlushesFullBatches(t *testing.T) {
	q := &fakeQueue{}
	sink := &fakeSink{}
	for i := 0; i < 5; i++ {
		q.push(t, event("bid_placed"))
	}
	s := New(q, sink, Options{BatchSize: 5, FlushDelay: time.Hour, PopTimeout: time.Millisecond, Logger: quiet()})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return sink.total() == 5 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.batches, 1)
	assert.Len(t, sink.batches[0], 5)
}

func TestFlushesOnShutdown(t *testing.T) {
	q := &fakeQueue{}
	sink := &fakeSink{}
	q.push(t, event("game_started"))
	q.push(t, event("bidding_opened"))
	s := New(q, sink, Options{BatchSize: 100, FlushDelay: time.Hour, PopTimeout: time.Millisecond, Logger: quiet()})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	// wait for both pops before stopping
	assert.Eventually(t, func() bool {
		q.mu.Lock()
		defer q.mu.Unlock()
		return len(q.items) == 0
	}, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, 2, sink.total())
}

func TestFailedFlushKeepsEvents(t *testing.T) {
	sink := &fakeSink{fail: true}
	s := New(&fakeQueue{}, sink, Options{BatchSize: 2, Logger: quiet()})
	s.batch = append(s.batch, event("a"), event("b"))

	s.flush(context.Background())
	assert.Len(t, s.batch, 2)

	sink.fail = false
	s.flush(context.Background())
	assert.Empty(t, s.batch)
	assert.Equal(t, 2, sink.total())
}

func TestBacklogIsBounded(t *testing.T) {
	sink := &fakeSink{fail: true}
	s := New(&fakeQueue{}, sink, Options{BatchSize: 1, Logger: quiet()})
	for i := 0; i < maxPendingBatches+10; i++ {
		s.batch = append(s.batch, event("x"))
	}
	last := s.batch[len(s.batch)-1].ID

	s.flush(context.Background())
	assert.Len(t, s.batch, maxPendingBatches)
	assert.Equal(t, last, s.batch[len(s.batch)-1].ID, "oldest events are dropped first")
}

func TestMalformedPayloadIsSkipped(t *testing.T) {
	q := &fakeQueue{items: []string{"garbage"}}
	sink := &fakeSink{}
	s := New(q, sink, Options{BatchSize: 1, Logger: quiet()})
	s.pop(context.Background())
	assert.Empty(t, s.batch)
	assert.Zero(t, sink.total())
}
