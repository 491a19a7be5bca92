package bsgs

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/curve"
)

const (
	// MaxTableBits bounds FromTableBits so that baby-step indices fit in
	// uint32 and the covered range fits in uint64.
	MaxTableBits = 31

	maxBabySteps = 1 << 32

	// cancellation is checked once per this many baby steps.
	cancelCheckInterval = 1024
)

// Table recovers x from x·G for every x in [0, Capacity()).
//
// Baby steps j·G for j < BabySteps() are indexed by the xxhash of their
// compressed encoding. A lookup subtracts m·G from the target up to
// GiantSteps() times and, on every index hit, confirms the candidate by
// recomputing x·G, so hash collisions never produce a wrong answer.
//
// A Table is read-only after construction and safe for concurrent lookups.
type Table struct {
	curve      curve.Curve
	babySteps  uint64
	giantSteps uint64
	capacity   uint64
	stride     *curve.Point // -m·G

	mu       sync.RWMutex
	index    map[uint64]uint32
	overflow map[uint64][]uint32
	freed    bool
}

// New builds a table covering [0, capacity) on the Library curve with
// ceil(sqrt(capacity)) baby steps.
func New(ctx context.Context, lib *ecgamal.Library, capacity uint64, opts ...Option) (*Table, error) {
	const op = "bsgs.New"
	if err := lib.Ready(op); err != nil {
		return nil, err
	}
	if capacity == 0 {
		return nil, ecgamal.Errorf(op, ecgamal.ErrConfiguration, "capacity must be positive")
	}

	o := options{workers: lib.Workers()}
	for _, opt := range opts {
		opt(&o)
	}
	m := o.babySteps
	if m == 0 {
		m = ceilSqrt(capacity)
	}
	if m > capacity {
		m = capacity
	}
	if m > maxBabySteps {
		return nil, ecgamal.Errorf(op, ecgamal.ErrConfiguration, "%d baby steps exceed the limit of %d", m, uint64(maxBabySteps))
	}
	if capacity > math.MaxUint64-m {
		return nil, ecgamal.Errorf(op, ecgamal.ErrConfiguration, "capacity %d leaves no room for a final giant step", capacity)
	}
	giant := capacity / m
	if capacity%m != 0 {
		giant++
	}
	if o.workers < 1 {
		o.workers = 1
	}

	c := lib.Curve()
	t := &Table{
		curve:      c,
		babySteps:  m,
		giantSteps: giant,
		capacity:   capacity,
	}

	start := time.Now()
	if err := t.build(ctx, o.workers); err != nil {
		return nil, err
	}

	step, err := curve.MulGeneratorUint64(c, m)
	if err != nil {
		return nil, ecgamal.NewError(op, ecgamal.ErrConfiguration, err)
	}
	if t.stride, err = step.Neg(); err != nil {
		return nil, ecgamal.NewError(op, ecgamal.ErrConfiguration, err)
	}

	lib.Logger().Debug(ctx, "bsgs table built",
		"baby_steps", m,
		"giant_steps", giant,
		"capacity", capacity,
		"collisions", len(t.overflow),
		"workers", o.workers,
		"elapsed", time.Since(start),
	)
	return t, nil
}

// FromTableBits builds a table with 2^bits baby steps and 2^bits giant steps,
// covering [0, 2^(2·bits)).
func FromTableBits(ctx context.Context, lib *ecgamal.Library, bits uint, opts ...Option) (*Table, error) {
	if bits == 0 || bits > MaxTableBits {
		return nil, ecgamal.Errorf("bsgs.FromTableBits", ecgamal.ErrConfiguration, "table bits must be in [1, %d], got %d", MaxTableBits, bits)
	}
	opts = append([]Option{WithBabySteps(1 << bits)}, opts...)
	return New(ctx, lib, 1<<(2*bits), opts...)
}

// build fills the index with j·G for j < m. Workers own disjoint ranges of
// the hash slice; the maps are assembled after the join.
func (t *Table) build(ctx context.Context, workers int) error {
	const op = "bsgs.New"
	m := t.babySteps
	if uint64(workers) > m {
		workers = int(m)
	}
	hashes := make([]uint64, m)
	chunk := (m + uint64(workers) - 1) / uint64(workers)

	g, gctx := errgroup.WithContext(ctx)
	for lo := uint64(0); lo < m; lo += chunk {
		hi := min(lo+chunk, m)
		g.Go(func() error {
			return t.fill(gctx, hashes, lo, hi)
		})
	}
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return ecgamal.NewError(op, ecgamal.ErrConfiguration, ctx.Err())
		}
		return ecgamal.NewError(op, ecgamal.ErrConfiguration, err)
	}

	t.index = make(map[uint64]uint32, m)
	for j, h := range hashes {
		if _, dup := t.index[h]; dup {
			if t.overflow == nil {
				t.overflow = make(map[uint64][]uint32)
			}
			t.overflow[h] = append(t.overflow[h], uint32(j))
			continue
		}
		t.index[h] = uint32(j)
	}
	return nil
}

func (t *Table) fill(ctx context.Context, hashes []uint64, lo, hi uint64) error {
	gen, err := curve.Generator(t.curve)
	if err != nil {
		return err
	}
	p, err := curve.MulGeneratorUint64(t.curve, lo)
	if err != nil {
		return err
	}
	for j := lo; j < hi; j++ {
		if (j-lo)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		enc, err := p.Bytes()
		if err != nil {
			return err
		}
		hashes[j] = xxhash.Sum64(enc)
		if p, err = p.Add(gen); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns x such that x·G == p and x < Capacity(). A point outside the
// covered range yields ErrCapacity.
func (t *Table) Lookup(p *curve.Point) (uint64, error) {
	const op = "bsgs.Lookup"
	if t == nil {
		return 0, ecgamal.Errorf(op, ecgamal.ErrConfiguration, "nil table")
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.freed {
		return 0, ecgamal.Errorf(op, ecgamal.ErrConfiguration, "table freed")
	}
	if p == nil {
		return 0, ecgamal.Errorf(op, ecgamal.ErrConfiguration, "nil point")
	}
	if p.Curve() != t.curve {
		return 0, ecgamal.NewError(op, ecgamal.ErrConfiguration,
			fmt.Errorf("%w: table on %s, point on %s", curve.ErrCurveMismatch, t.curve, p.Curve()))
	}

	cur := p
	for i := uint64(0); i < t.giantSteps; i++ {
		enc, err := cur.Bytes()
		if err != nil {
			return 0, ecgamal.NewError(op, ecgamal.ErrValidation, err)
		}
		h := xxhash.Sum64(enc)
		if j, ok := t.index[h]; ok {
			if x, found, err := t.confirm(p, i, j); found || err != nil {
				return x, err
			}
			for _, j := range t.overflow[h] {
				if x, found, err := t.confirm(p, i, j); found || err != nil {
					return x, err
				}
			}
		}
		if cur, err = cur.Add(t.stride); err != nil {
			return 0, ecgamal.NewError(op, ecgamal.ErrConfiguration, err)
		}
	}
	return 0, ecgamal.Errorf(op, ecgamal.ErrCapacity, "no discrete log below %d", t.capacity)
}

// confirm checks the candidate i·m + j against p. A confirmed candidate at or
// above the capacity is the true logarithm, so no covered answer exists.
func (t *Table) confirm(p *curve.Point, i uint64, j uint32) (uint64, bool, error) {
	x := i*t.babySteps + uint64(j)
	q, err := curve.MulGeneratorUint64(t.curve, x)
	if err != nil {
		return 0, false, ecgamal.NewError("bsgs.Lookup", ecgamal.ErrConfiguration, err)
	}
	if !q.Equal(p) {
		return 0, false, nil
	}
	if x >= t.capacity {
		return 0, true, ecgamal.Errorf("bsgs.Lookup", ecgamal.ErrCapacity, "discrete log %d is not below %d", x, t.capacity)
	}
	return x, true, nil
}

// Free releases the index. Later lookups fail with ErrConfiguration.
func (t *Table) Free() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.index = nil
	t.overflow = nil
	t.freed = true
}

// Capacity returns the exclusive upper bound of recoverable values, or 0
// for a nil table.
func (t *Table) Capacity() uint64 {
	if t == nil {
		return 0
	}
	return t.capacity
}

// BabySteps returns the number of indexed points m.
func (t *Table) BabySteps() uint64 { return t.babySteps }

// GiantSteps returns the maximum number of strides a lookup takes.
func (t *Table) GiantSteps() uint64 { return t.giantSteps }

// Curve returns the curve the table was built on, or curve.Unknown for a nil
// table.
func (t *Table) Curve() curve.Curve {
	if t == nil {
		return curve.Unknown
	}
	return t.curve
}

func ceilSqrt(n uint64) uint64 {
	r := new(big.Int).Sqrt(new(big.Int).SetUint64(n)).Uint64()
	if r*r < n {
		r++
	}
	return r
}
