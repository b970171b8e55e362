package event

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyBus records every publish and fails while fail returns true
type flakyBus struct {
	mu    sync.Mutex
	calls []time.Time
	seen  []Event
	fail  func(call int) bool
	delay time.Duration
}

func (b *flakyBus) Publish(_ context.Context, evt Event) error {
	b.mu.Lock()
	b.calls = append(b.calls, time.Now())
	b.seen = append(b.seen, evt)
	n := len(b.calls)
	b.mu.Unlock()

	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	if b.fail != nil && b.fail(n) {
		return errors.New("bus unavailable")
	}
	return nil
}

func (b *flakyBus) Subscribe(Type, Handler) {}

func (b *flakyBus) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func (b *flakyBus) times() []time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]time.Time(nil), b.calls...)
}

func always(int) bool { return true }

func newPublisher(t *testing.T, bus Bus, maxRetries int, delay time.Duration) (*ResilientPublisher, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	p, err := NewResilientPublisher(bus, maxRetries, delay, path)
	require.NoError(t, err)
	return p, path
}

func shutdown(t *testing.T, p *ResilientPublisher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, p.Shutdown(ctx))
}

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	entries, err := ReadDeadLetters(f)
	require.NoError(t, err)
	return entries
}

func TestResilientPublisher_FirstAttemptSucceeds(t *testing.T) {
	bus := &flakyBus{}
	p, path := newPublisher(t, bus, 3, 50*time.Millisecond)

	evt := NewSettlementOpenedEvent(testSettlement())
	p.PublishWithRetry(context.Background(), evt)
	shutdown(t, p)

	assert.Equal(t, 1, bus.count())
	assert.Equal(t, SettlementOpened, bus.seen[0].Type)
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_RetryRecovers(t *testing.T) {
	bus := &flakyBus{fail: func(call int) bool { return call == 1 }}
	p, path := newPublisher(t, bus, 3, 20*time.Millisecond)

	p.PublishWithRetry(context.Background(), NewSettlementFinalizedEvent(testSettlement()))

	assert.Eventually(t, func() bool { return bus.count() == 2 }, time.Second, 5*time.Millisecond)
	shutdown(t, p)
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_ExhaustedRetriesAreDeadLettered(t *testing.T) {
	bus := &flakyBus{fail: always}
	p, path := newPublisher(t, bus, 3, 10*time.Millisecond)

	s := testSettlement()
	p.PublishWithRetry(context.Background(), NewSettlementFinalizedEvent(s))

	// initial attempt plus three retries
	assert.Eventually(t, func() bool { return bus.count() == 4 }, 2*time.Second, 5*time.Millisecond)
	shutdown(t, p)

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, DeadLetterSchemaVersion, entries[0].SchemaVersion)
	assert.Equal(t, SettlementFinalized, entries[0].Event.Type)
	assert.Equal(t, 3, entries[0].Attempts)
	assert.Equal(t, "bus unavailable", entries[0].LastError)

	payload, err := DecodePayload[SettlementFinalizedPayloadV1](entries[0].Event.Payload)
	require.NoError(t, err)
	assert.Equal(t, s.ID, payload.SessionID)
	assert.Equal(t, s.AccountID, payload.AccountID)
}

func TestResilientPublisher_QueueOverflowGoesStraightToDeadLetter(t *testing.T) {
	bus := &flakyBus{fail: always, delay: 20 * time.Millisecond}
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)

	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, 2),
		maxRetries: 3,
		retryDelay: time.Hour,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}
	// no retry worker: the queue only fills

	for i := 0; i < 5; i++ {
		p.PublishWithRetry(context.Background(), NewSettlementOpenedEvent(testSettlement()))
	}

	entries := readDeadLetters(t, path)
	assert.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, 1, e.Attempts)
	}
	require.NoError(t, dl.Close())
}

func TestResilientPublisher_ShutdownDrainsQueue(t *testing.T) {
	// first three publishes fail, everything after succeeds
	bus := &flakyBus{fail: func(call int) bool { return call <= 3 }}
	p, path := newPublisher(t, bus, 5, time.Hour)

	for i := 0; i < 3; i++ {
		p.PublishWithRetry(context.Background(), NewSettlementOpenedEvent(testSettlement()))
	}
	shutdown(t, p)

	// each queued event got one final attempt during shutdown
	assert.Equal(t, 6, bus.count())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_BackoffDoubles(t *testing.T) {
	base := 40 * time.Millisecond
	bus := &flakyBus{fail: func(call int) bool { return call < 4 }}
	p, _ := newPublisher(t, bus, 5, base)

	p.PublishWithRetry(context.Background(), NewSettlementOpenedEvent(testSettlement()))
	assert.Eventually(t, func() bool { return bus.count() == 4 }, 2*time.Second, 5*time.Millisecond)
	shutdown(t, p)

	calls := bus.times()
	assert.InDelta(t, base.Milliseconds(), calls[1].Sub(calls[0]).Milliseconds(), 30)
	assert.InDelta(t, (2 * base).Milliseconds(), calls[2].Sub(calls[1]).Milliseconds(), 30)
	assert.InDelta(t, (4 * base).Milliseconds(), calls[3].Sub(calls[2]).Milliseconds(), 30)
}

func TestResilientPublisher_ConcurrentPublishes(t *testing.T) {
	bus := &flakyBus{}
	p, _ := newPublisher(t, bus, 3, 10*time.Millisecond)

	const goroutines, perGoroutine = 10, 5
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				p.PublishWithRetry(context.Background(), NewSettlementOpenedEvent(testSettlement()))
			}
		}()
	}
	wg.Wait()
	shutdown(t, p)

	assert.Equal(t, goroutines*perGoroutine, bus.count())
}

func TestReadDeadLetters(t *testing.T) {
	t.Run("skips blank lines", func(t *testing.T) {
		in := `{"schema_version":"1.0","event":{"type":"settlement.opened"},"attempts":2}

{"schema_version":"1.0","event":{"type":"settlement.finalized"},"attempts":1,"last_error":"x"}
`
		entries, err := ReadDeadLetters(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, SettlementFinalized, entries[1].Event.Type)
		assert.Equal(t, "x", entries[1].LastError)
	})

	t.Run("rejects unknown schema version", func(t *testing.T) {
		_, err := ReadDeadLetters(strings.NewReader(`{"schema_version":"2.0"}`))
		assert.ErrorContains(t, err, "line 1")
	})

	t.Run("rejects malformed line", func(t *testing.T) {
		_, err := ReadDeadLetters(strings.NewReader("{\"schema_version\":\"1.0\"}\nnot json\n"))
		assert.ErrorContains(t, err, "line 2")
	})
}
