package curve

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
	"math/big"
	"runtime"
)

// Scalar represents an integer modulo the group order of a curve.
// The value is stored big-endian at the curve's fixed scalar width.
//
// Scalars may hold private key material: Free zeroizes the bytes and a
// finalizer does the same if the Scalar becomes unreachable first.
//
// Concurrency Safety:
//   - Scalar methods are safe to call concurrently from multiple goroutines.
//   - However, calling Free() while another goroutine is using the Scalar is unsafe.
//     The caller is responsible for ensuring all operations on a Scalar complete
//     before calling Free().
type Scalar struct {
	curve Curve
	b     []byte
}

// zeroizeBytes overwrites the provided slice with zeros and prevents compiler
// dead store elimination using runtime.KeepAlive.
// Local duplicate to avoid import cycles with the top-level ecgamal package.
func zeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}

// zeroizeBig clears the limbs of a temporary big.Int that held secret data.
func zeroizeBig(x *big.Int) {
	if x == nil {
		return
	}
	words := x.Bits()
	for i := range words {
		words[i] = 0
	}
	x.SetInt64(0)
	runtime.KeepAlive(words)
}

func newScalar(c Curve, v *big.Int) *Scalar {
	s := &Scalar{curve: c, b: make([]byte, c.ScalarSize())}
	v.FillBytes(s.b)
	runtime.SetFinalizer(s, (*Scalar).Free)
	return s
}

// RandomScalar draws a scalar uniformly from [1, n-1] using r, or
// crypto/rand when r is nil.
func RandomScalar(c Curve, r io.Reader) (*Scalar, error) {
	order := c.Order()
	if order == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurve, c)
	}
	if r == nil {
		r = rand.Reader
	}
	bound := new(big.Int).Sub(order, big.NewInt(1))
	v, err := rand.Int(r, bound)
	if err != nil {
		return nil, fmt.Errorf("curve: random scalar: %w", err)
	}
	v.Add(v, big.NewInt(1))
	defer zeroizeBig(v)
	return newScalar(c, v), nil
}

// NewScalarFromBytes creates a Scalar from its fixed-width big-endian
// encoding. Values outside [0, n) are rejected rather than reduced.
// The input bytes are copied to prevent external mutation of the Scalar's internal state.
func NewScalarFromBytes(c Curve, b []byte) (*Scalar, error) {
	order := c.Order()
	if order == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurve, c)
	}
	if len(b) != c.ScalarSize() {
		return nil, fmt.Errorf("%w: %s scalar must be %d bytes, got %d", ErrInvalidScalar, c, c.ScalarSize(), len(b))
	}
	v := new(big.Int).SetBytes(b)
	defer zeroizeBig(v)
	if v.Cmp(order) >= 0 {
		return nil, fmt.Errorf("%w: value not below the group order", ErrInvalidScalar)
	}
	return newScalar(c, v), nil
}

// NewScalarFromUint64 creates a Scalar holding v. Every supported group order
// exceeds 2^64, so no reduction takes place.
func NewScalarFromUint64(c Curve, v uint64) (*Scalar, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return newScalar(c, new(big.Int).SetUint64(v)), nil
}

// Curve returns the curve this scalar belongs to.
func (s *Scalar) Curve() Curve {
	if s == nil {
		return Unknown
	}
	return s.curve
}

// Bytes returns a defensive copy of the fixed-width big-endian encoding.
func (s *Scalar) Bytes() []byte {
	if s == nil || len(s.b) == 0 {
		return nil
	}
	out := make([]byte, len(s.b))
	copy(out, s.b)
	return out
}

// BigInt returns the Scalar as a big.Int.
// WARNING: big.Int operations are NOT constant-time and should not be used
// for cryptographic operations. The returned value is a copy.
func (s *Scalar) BigInt() *big.Int {
	if s == nil || len(s.b) == 0 {
		return new(big.Int)
	}
	return new(big.Int).SetBytes(s.b)
}

// IsZero reports whether the scalar is zero.
func (s *Scalar) IsZero() bool {
	if s == nil {
		return true
	}
	var acc byte
	for _, v := range s.b {
		acc |= v
	}
	return acc == 0
}

// Equal compares two scalars in constant time.
func (s *Scalar) Equal(o *Scalar) bool {
	if s == nil || o == nil || s.curve != o.curve {
		return false
	}
	return subtle.ConstantTimeCompare(s.b, o.b) == 1
}

// String never prints the value; scalars are usually secret.
func (s *Scalar) String() string {
	if s == nil || len(s.b) == 0 {
		return "Scalar(nil)"
	}
	return "Scalar(" + s.curve.String() + ":[redacted])"
}

// Free zeroizes the scalar bytes and releases references.
func (s *Scalar) Free() {
	if s == nil || len(s.b) == 0 {
		return
	}
	zeroizeBytes(s.b)
	s.b = nil
	runtime.SetFinalizer(s, nil)
}
