package curve

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/internal/backend"
)

// Point represents an element of a curve group. Points are immutable; every
// operation returns a new Point.
//
// Concurrency Safety:
//   - Point methods are safe to call concurrently from multiple goroutines.
type Point struct {
	curve Curve
	e     backend.Element
}

// Generator returns the standard generator G of c.
func Generator(c Curve) (*Point, error) {
	g, err := c.group()
	if err != nil {
		return nil, err
	}
	return &Point{curve: c, e: g.Generator()}, nil
}

// Identity returns the neutral element of c.
func Identity(c Curve) (*Point, error) {
	g, err := c.group()
	if err != nil {
		return nil, err
	}
	return &Point{curve: c, e: g.Identity()}, nil
}

// MulGenerator returns s·G.
func MulGenerator(c Curve, s *Scalar) (*Point, error) {
	if s == nil || len(s.b) == 0 {
		return nil, errNilScalar
	}
	if s.curve != c {
		return nil, fmt.Errorf("%w: scalar on %s, generator on %s", ErrCurveMismatch, s.curve, c)
	}
	g, err := c.group()
	if err != nil {
		return nil, err
	}
	k := s.BigInt()
	defer zeroizeBig(k)
	return &Point{curve: c, e: g.MulBase(k)}, nil
}

// MulGeneratorUint64 returns v·G. It is the plaintext embedding used by
// exact ElGamal.
func MulGeneratorUint64(c Curve, v uint64) (*Point, error) {
	g, err := c.group()
	if err != nil {
		return nil, err
	}
	return &Point{curve: c, e: g.MulBase(new(big.Int).SetUint64(v))}, nil
}

// NewPointFromBytes decodes a point in compressed or uncompressed form and
// validates curve membership. An all-zero buffer of either fixed width
// decodes to the identity.
func NewPointFromBytes(c Curve, b []byte) (*Point, error) {
	g, err := c.group()
	if err != nil {
		return nil, err
	}
	if len(b) != g.ElementSize(true) && len(b) != g.ElementSize(false) {
		return nil, fmt.Errorf("%w: %s point must be %d or %d bytes, got %d",
			ErrInvalidPoint, c, g.ElementSize(true), g.ElementSize(false), len(b))
	}
	if allZero(b) {
		return &Point{curve: c, e: g.Identity()}, nil
	}
	e, err := g.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	if e.IsIdentity() {
		return nil, fmt.Errorf("%w: non-canonical identity encoding", ErrInvalidPoint)
	}
	return &Point{curve: c, e: e}, nil
}

// Curve returns the curve for this point.
func (p *Point) Curve() Curve {
	if p == nil || p.e == nil {
		return Unknown
	}
	return p.curve
}

// Bytes serializes the point in compressed form.
func (p *Point) Bytes() ([]byte, error) {
	return p.Encode(true)
}

// Encode serializes the point at the curve's fixed width for the chosen form.
// The identity is written as zero bytes.
func (p *Point) Encode(compressed bool) ([]byte, error) {
	if p == nil || p.e == nil {
		return nil, errNilPoint
	}
	if p.e.IsIdentity() {
		return make([]byte, p.curve.PointSize(compressed)), nil
	}
	return p.e.Encode(compressed)
}

// Add returns p + q.
func (p *Point) Add(q *Point) (*Point, error) {
	if err := p.compatible(q); err != nil {
		return nil, err
	}
	return &Point{curve: p.curve, e: p.e.Add(q.e)}, nil
}

// Sub returns p - q.
func (p *Point) Sub(q *Point) (*Point, error) {
	if err := p.compatible(q); err != nil {
		return nil, err
	}
	return &Point{curve: p.curve, e: p.e.Sub(q.e)}, nil
}

// Neg returns -p.
func (p *Point) Neg() (*Point, error) {
	if p == nil || p.e == nil {
		return nil, errNilPoint
	}
	return &Point{curve: p.curve, e: p.e.Neg()}, nil
}

// Mul multiplies this point by a scalar: result = scalar * point.
func (p *Point) Mul(s *Scalar) (*Point, error) {
	if p == nil || p.e == nil {
		return nil, errNilPoint
	}
	if s == nil || len(s.b) == 0 {
		return nil, errNilScalar
	}
	if s.curve != p.curve {
		return nil, fmt.Errorf("%w: scalar on %s, point on %s", ErrCurveMismatch, s.curve, p.curve)
	}
	k := s.BigInt()
	defer zeroizeBig(k)
	return &Point{curve: p.curve, e: p.e.Mul(k)}, nil
}

// MulUint64 returns v·p.
func (p *Point) MulUint64(v uint64) (*Point, error) {
	if p == nil || p.e == nil {
		return nil, errNilPoint
	}
	return &Point{curve: p.curve, e: p.e.Mul(new(big.Int).SetUint64(v))}, nil
}

// Equal reports whether p and q are the same point of the same curve.
func (p *Point) Equal(q *Point) bool {
	if p == nil || q == nil || p.e == nil || q.e == nil {
		return false
	}
	return p.curve == q.curve && p.e.Equal(q.e)
}

// IsIdentity reports whether p is the neutral element.
func (p *Point) IsIdentity() bool {
	return p != nil && p.e != nil && p.e.IsIdentity()
}

// String returns a short identifier for the point for logging/debugging.
func (p *Point) String() string {
	if p == nil || p.e == nil {
		return "Point(nil)"
	}
	b, err := p.Bytes()
	if err != nil {
		return "Point(error)"
	}
	if len(b) > 5 {
		b = b[:5]
	}
	return "Point(" + p.curve.String() + ":" + hex.EncodeToString(b) + ")"
}

func (p *Point) compatible(q *Point) error {
	if p == nil || p.e == nil || q == nil || q.e == nil {
		return errNilPoint
	}
	if p.curve != q.curve {
		return fmt.Errorf("%w: %s and %s", ErrCurveMismatch, p.curve, q.curve)
	}
	return nil
}

func allZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}
