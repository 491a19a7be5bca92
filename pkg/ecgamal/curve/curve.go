package curve

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/internal/backend"
)

var (
	// ErrUnsupportedCurve is returned for curves outside the supported set.
	ErrUnsupportedCurve = errors.New("curve: unsupported curve")

	// ErrCurveMismatch is returned when operands belong to different curves.
	ErrCurveMismatch = errors.New("curve: curve mismatch")

	// ErrInvalidPoint is returned when bytes do not encode a point of the curve.
	ErrInvalidPoint = errors.New("curve: invalid point")

	// ErrInvalidScalar is returned when bytes do not encode a scalar in [0, n).
	ErrInvalidScalar = errors.New("curve: invalid scalar")

	errNilPoint  = errors.New("curve: nil point")
	errNilScalar = errors.New("curve: nil scalar")
)

// Curve represents an elliptic curve group.
// This is a stable Go enum that is independent of backend implementation details.
type Curve int

// Curves in the closed supported set.
const (
	Unknown      Curve = iota // Unknown or unsupported curve
	Secp256k1                 // Bitcoin secp256k1
	P256                      // NIST P-256 (secp256r1)
	P384                      // NIST P-384 (secp384r1)
	P521                      // NIST P-521 (secp521r1)
	Ristretto255              // ristretto255 prime-order group over Curve25519
	BN254                     // BN254 G1
	BLS12381                  // BLS12-381 G1
)

const (
	// Default is the curve used when none is configured.
	Default = Secp256k1
	// Sec256 is the 256-bit security curve.
	Sec256 = P256
)

// Curves returns every supported curve.
func Curves() []Curve {
	return []Curve{Secp256k1, P256, P384, P521, Ristretto255, BN254, BLS12381}
}

// ParseCurve maps a curve name such as "secp256k1" or "P-256" to a Curve.
func ParseCurve(name string) (Curve, error) {
	c, err := backend.CurveFromName(name)
	if err != nil {
		return Unknown, fmt.Errorf("%w: %q", ErrUnsupportedCurve, name)
	}
	return Curve(c), nil
}

// String returns a human-readable name for the curve.
func (c Curve) String() string {
	return backend.Curve(c).String()
}

// Validate reports whether c is in the supported set.
func (c Curve) Validate() error {
	_, err := c.group()
	return err
}

// Order returns a copy of the group order n, or nil for an unsupported curve.
func (c Curve) Order() *big.Int {
	g, err := c.group()
	if err != nil {
		return nil
	}
	return g.Order()
}

// ScalarSize returns the fixed width in bytes of an encoded scalar.
func (c Curve) ScalarSize() int {
	g, err := c.group()
	if err != nil {
		return 0
	}
	return g.ScalarSize()
}

// PointSize returns the fixed width in bytes of an encoded point.
func (c Curve) PointSize(compressed bool) int {
	g, err := c.group()
	if err != nil {
		return 0
	}
	return g.ElementSize(compressed)
}

func (c Curve) group() (backend.Group, error) {
	g, err := backend.GroupFor(backend.Curve(c))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurve, c)
	}
	return g, nil
}
