package backend

import (
	"errors"
	"math/big"
)

var (
	// ErrUnsupportedCurve is returned when no group implementation exists for a curve.
	ErrUnsupportedCurve = errors.New("unsupported curve")

	// ErrInvalidEncoding is returned when bytes do not decode to a group element.
	ErrInvalidEncoding = errors.New("invalid point encoding")
)

// Curve identifies a group implementation. The values mirror curve.Curve.
type Curve int

const (
	Unknown Curve = iota
	Secp256k1
	P256
	P384
	P521
	Ristretto255
	BN254
	BLS12381
)

func (c Curve) String() string {
	switch c {
	case Secp256k1:
		return "secp256k1"
	case P256:
		return "P-256"
	case P384:
		return "P-384"
	case P521:
		return "P-521"
	case Ristretto255:
		return "ristretto255"
	case BN254:
		return "BN254"
	case BLS12381:
		return "BLS12-381"
	default:
		return "Unknown"
	}
}

// Element is an immutable group element. Every operation returns a fresh
// value; operands must come from the same Group.
type Element interface {
	Add(Element) Element
	Sub(Element) Element
	Neg() Element
	// Mul returns k·e. k must already be reduced modulo the group order.
	Mul(k *big.Int) Element
	Equal(Element) bool
	IsIdentity() bool
	// Encode returns the library's point encoding. Callers must not encode
	// the identity; its fixed-width form is owned by the curve package.
	Encode(compressed bool) ([]byte, error)
}

// Group is the arithmetic surface consumed by the curve package.
type Group interface {
	Curve() Curve
	Order() *big.Int
	ScalarSize() int
	ElementSize(compressed bool) int
	Identity() Element
	Generator() Element
	// MulBase returns k·G. k must already be reduced modulo the group order.
	MulBase(k *big.Int) Element
	// Decode parses a compressed or uncompressed encoding and validates
	// curve (and subgroup) membership.
	Decode(b []byte) (Element, error)
}
