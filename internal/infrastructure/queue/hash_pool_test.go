package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/todo-api/todo-service/internal/core/service"
)

var discardLogger = zerolog.Nop()

// slowHasher records how many calls run at the same time.
type slowHasher struct {
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
}

func (h *slowHasher) enter() {
	n := h.inFlight.Add(1)
	for {
		p := h.peak.Load()
		if n <= p || h.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(h.delay)
	h.inFlight.Add(-1)
}

func (h *slowHasher) Hash(_ context.Context, plaintext string) (string, error) {
	h.enter()
	return "hashed:" + plaintext, nil
}

func (h *slowHasher) Verify(_ context.Context, plaintext, hash string) bool {
	h.enter()
	return hash == "hashed:"+plaintext
}

func TestHashPool_DelegatesToBcrypt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := NewHashPool(2, service.NewBcryptHasher(bcrypt.MinCost), discardLogger)
	pool.Start(ctx)

	hash, err := pool.Hash(ctx, "pw123!")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !pool.Verify(ctx, "pw123!", hash) {
		t.Fatal("Verify rejected the matching password")
	}
	if pool.Verify(ctx, "wrong", hash) {
		t.Fatal("Verify accepted a wrong password")
	}
}

func TestHashPool_BoundsConcurrency(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hasher := &slowHasher{delay: 20 * time.Millisecond}
	pool := NewHashPool(2, hasher, discardLogger)
	pool.Start(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := pool.Hash(ctx, "pw"); err != nil {
				t.Errorf("Hash: %v", err)
			}
		}()
	}
	wg.Wait()

	if peak := hasher.peak.Load(); peak > 2 {
		t.Fatalf("expected at most 2 concurrent hashes, saw %d", peak)
	}
}

func TestHashPool_ClosedAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	pool := NewHashPool(1, &slowHasher{}, discardLogger)
	pool.Start(ctx)
	cancel()
	pool.Wait()

	// The closing goroutine runs independently of the workers.
	deadline := time.After(time.Second)
	for {
		_, err := pool.Hash(context.Background(), "pw")
		if errors.Is(err, ErrPoolClosed) {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("expected ErrPoolClosed, got %v", err)
		case <-time.After(5 * time.Millisecond):
		}
	}

	if pool.Verify(context.Background(), "pw", "hashed:pw") {
		t.Fatal("Verify on a closed pool must be false")
	}
}

func TestHashPool_CallerCancellation(t *testing.T) {
	poolCtx, stop := context.WithCancel(context.Background())
	defer stop()

	pool := NewHashPool(1, &slowHasher{delay: 200 * time.Millisecond}, discardLogger)
	pool.Start(poolCtx)

	// Occupy the only worker.
	go func() { _, _ = pool.Hash(poolCtx, "busy") }()
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := pool.Hash(ctx, "pw"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestNewHashPool_DefaultWorkers(t *testing.T) {
	if pool := NewHashPool(0, &slowHasher{}, discardLogger); pool.workers < 1 {
		t.Fatalf("expected at least one worker, got %d", pool.workers)
	}
}
