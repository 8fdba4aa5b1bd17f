package queue

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/rs/zerolog"

	"github.com/todo-api/todo-service/internal/core/ports"
)

const channelBuffer = 64

// ErrPoolClosed is returned for work submitted after the pool stopped.
var ErrPoolClosed = errors.New("hash pool closed")

type hashJob struct {
	ctx  context.Context
	run  func()
	done chan struct{}
}

// HashPool runs password hashing on a fixed set of workers so bcrypt's CPU
// cost is bounded no matter how many requests arrive at once. It implements
// ports.PasswordHasher by delegating to the wrapped hasher.
type HashPool struct {
	hasher  ports.PasswordHasher
	jobs    chan hashJob
	workers int
	log     zerolog.Logger

	closed    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewHashPool creates a pool of numWorkers workers around hasher.
// If numWorkers <= 0, runtime.GOMAXPROCS(0) is used.
func NewHashPool(numWorkers int, hasher ports.PasswordHasher, log zerolog.Logger) *HashPool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	return &HashPool{
		hasher:  hasher,
		jobs:    make(chan hashJob, channelBuffer),
		workers: numWorkers,
		log:     log,
		closed:  make(chan struct{}),
	}
}

// Start launches all workers. They stop when ctx is cancelled, after which
// every submission fails with ErrPoolClosed.
func (p *HashPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.runWorker(ctx, i)
	}
	go func() {
		<-ctx.Done()
		p.closeOnce.Do(func() { close(p.closed) })
	}()
}

// Wait blocks until every worker has returned.
func (p *HashPool) Wait() {
	p.wg.Wait()
}

func (p *HashPool) Hash(ctx context.Context, plaintext string) (string, error) {
	var (
		hash string
		err  error
	)
	if submitErr := p.submit(ctx, func() { hash, err = p.hasher.Hash(ctx, plaintext) }); submitErr != nil {
		return "", submitErr
	}
	return hash, err
}

// Verify reports false when the comparison could not run at all.
func (p *HashPool) Verify(ctx context.Context, plaintext, hash string) bool {
	var ok bool
	if err := p.submit(ctx, func() { ok = p.hasher.Verify(ctx, plaintext, hash) }); err != nil {
		p.log.Warn().Err(err).Msg("password verification not executed")
		return false
	}
	return ok
}

// submit hands fn to a worker and waits for it to finish.
func (p *HashPool) submit(ctx context.Context, fn func()) error {
	job := hashJob{ctx: ctx, run: fn, done: make(chan struct{})}

	select {
	case p.jobs <- job:
	case <-p.closed:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-job.done:
		return nil
	case <-p.closed:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *HashPool) runWorker(ctx context.Context, id int) {
	defer p.wg.Done()
	p.log.Debug().Int("worker_id", id).Msg("hash worker started")

	for {
		select {
		case <-ctx.Done():
			p.log.Debug().Int("worker_id", id).Msg("hash worker stopped")
			return
		case job := <-p.jobs:
			// The submitter already gave up; skip the expensive work.
			if job.ctx.Err() == nil {
				job.run()
			}
			close(job.done)
		}
	}
}
