package ecgamal

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/curve"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/logging"
)

// Library is an opened context bound to one curve. It owns the randomness
// source, the logger and the worker pool; keys, tables and ciphertexts are
// checked against its curve.
//
// Several Libraries, on the same or different curves, may coexist. A Library
// is safe for concurrent use. Tasks handed to Run after Close fail with
// ErrConfiguration.
type Library struct {
	mu      sync.RWMutex
	curve   curve.Curve
	workers int
	logger  logging.Logger
	rand    io.Reader
	pool    *ants.Pool
	closed  bool
}

// Open validates cfg and prepares a Library.
func Open(cfg Config) (*Library, error) {
	c := cfg.Curve
	if c == curve.Unknown {
		c = curve.Default
	}
	if err := c.Validate(); err != nil {
		return nil, NewError("Open", ErrConfiguration, err)
	}

	workers := cfg.Workers
	if workers < 0 {
		return nil, Errorf("Open", ErrConfiguration, "workers must not be negative, got %d", workers)
	}
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	l := &Library{
		curve:   c,
		workers: workers,
		logger:  logging.New(cfg.Logger).With("curve", c.String()),
		rand:    rand.Reader,
	}
	if cfg.Rand != nil {
		l.rand = &lockedReader{r: cfg.Rand}
	}
	if workers > 1 {
		pool, err := ants.NewPool(workers, ants.WithPreAlloc(true))
		if err != nil {
			return nil, NewError("Open", ErrConfiguration, err)
		}
		l.pool = pool
	}

	l.logger.Debug(context.Background(), "library opened", "workers", workers)
	return l, nil
}

// Close releases the worker pool. The method is idempotent, returning
// ErrLibraryClosed when called twice.
func (l *Library) Close() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrLibraryClosed
	}
	if l.pool != nil {
		l.pool.Release()
		l.pool = nil
	}
	l.closed = true
	l.logger.Debug(context.Background(), "library closed")
	return nil
}

// Ready reports whether l can serve op. A nil or closed Library yields an
// ErrConfiguration error naming op.
func (l *Library) Ready(op string) error {
	if l == nil {
		return Errorf(op, ErrConfiguration, "nil library")
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return NewError(op, ErrConfiguration, ErrLibraryClosed)
	}
	return nil
}

// Curve returns the curve the Library was opened with, or curve.Unknown for a
// nil Library.
func (l *Library) Curve() curve.Curve {
	if l == nil {
		return curve.Unknown
	}
	return l.curve
}

// CheckCurve returns an ErrConfiguration error when c differs from the
// Library curve.
func (l *Library) CheckCurve(op string, c curve.Curve) error {
	if err := l.Ready(op); err != nil {
		return err
	}
	if c != l.curve {
		return NewError(op, ErrConfiguration, fmt.Errorf("%w: library on %s, operand on %s", curve.ErrCurveMismatch, l.curve, c))
	}
	return nil
}

// Rand returns the randomness source.
func (l *Library) Rand() io.Reader {
	if l == nil {
		return rand.Reader
	}
	return l.rand
}

// Logger returns the Library logger. A nil Library yields a discarding logger.
func (l *Library) Logger() logging.Logger {
	if l == nil {
		return logging.Discard()
	}
	return l.logger
}

// Workers returns the worker pool size.
func (l *Library) Workers() int {
	if l == nil {
		return 1
	}
	return l.workers
}

// Run executes tasks on the worker pool and waits for all of them. The
// returned error joins every task failure in task order. With a single
// worker the tasks run sequentially on the calling goroutine.
//
// Tasks must not call Run themselves.
func (l *Library) Run(tasks ...func() error) error {
	if err := l.Ready("Run"); err != nil {
		return err
	}
	l.mu.RLock()
	pool := l.pool
	l.mu.RUnlock()

	errs := make([]error, len(tasks))
	if pool == nil || len(tasks) < 2 {
		for i, task := range tasks {
			errs[i] = task()
		}
		return errors.Join(errs...)
	}

	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			errs[i] = task()
		}); err != nil {
			wg.Done()
			errs[i] = NewError("Run", ErrConfiguration, err)
		}
	}
	wg.Wait()
	return errors.Join(errs...)
}

// lockedReader serializes reads from a caller-supplied randomness source so
// that parallel residue encryption never shares an unsynchronized reader.
type lockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

func (lr *lockedReader) Read(p []byte) (int, error) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return lr.r.Read(p)
}
