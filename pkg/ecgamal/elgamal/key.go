package elgamal

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/curve"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/logging"
)

// ErrNoPrivateKey is wrapped when an operation needs the private scalar of a
// key pair that was cleared or built from a public key only.
var ErrNoPrivateKey = errors.New("elgamal: no private key")

// PublicKey is the point Q = d·G.
type PublicKey struct {
	curve curve.Curve
	q     *curve.Point
}

// NewPublicKey wraps q, which must lie on the Library curve and must not be
// the identity.
func NewPublicKey(lib *ecgamal.Library, q *curve.Point) (*PublicKey, error) {
	const op = "elgamal.NewPublicKey"
	if q == nil {
		return nil, ecgamal.Errorf(op, ecgamal.ErrValidation, "nil point")
	}
	if err := lib.CheckCurve(op, q.Curve()); err != nil {
		return nil, err
	}
	if q.IsIdentity() {
		return nil, ecgamal.NewError(op, ecgamal.ErrValidation, fmt.Errorf("%w: identity public key", curve.ErrInvalidPoint))
	}
	return &PublicKey{curve: q.Curve(), q: q}, nil
}

// Curve returns the curve of the key.
func (k *PublicKey) Curve() curve.Curve {
	if k == nil {
		return curve.Unknown
	}
	return k.curve
}

// Point returns Q.
func (k *PublicKey) Point() *curve.Point {
	if k == nil {
		return nil
	}
	return k.q
}

// Equal reports whether both keys hold the same point.
func (k *PublicKey) Equal(o *PublicKey) bool {
	if k == nil || o == nil {
		return false
	}
	return k.q.Equal(o.q)
}

// KeyPair holds a public key and, until Clear, its private scalar d.
//
// Concurrency Safety:
//   - KeyPair methods are safe to call concurrently from multiple goroutines.
//   - Decrypt calls racing with Clear either complete with the scalar or fail
//     with ErrConfiguration.
type KeyPair struct {
	pub PublicKey

	mu sync.RWMutex
	d  *curve.Scalar
}

// GenerateKey draws d uniformly from [1, n-1] with the Library randomness
// source and sets Q = d·G.
func GenerateKey(lib *ecgamal.Library) (*KeyPair, error) {
	const op = "elgamal.GenerateKey"
	if err := lib.Ready(op); err != nil {
		return nil, err
	}
	c := lib.Curve()
	d, err := curve.RandomScalar(c, lib.Rand())
	if err != nil {
		return nil, ecgamal.NewError(op, ecgamal.ErrConfiguration, err)
	}
	q, err := curve.MulGenerator(c, d)
	if err != nil {
		d.Free()
		return nil, ecgamal.NewError(op, ecgamal.ErrConfiguration, err)
	}
	lib.Logger().Debug(context.Background(), "key pair generated",
		"public", q.String(),
		logging.Redacted("private"),
	)
	return newKeyPair(c, q, d), nil
}

// NewKeyPair assembles a key pair from its parts. d must be in [1, n-1] and
// satisfy q == d·G. The scalar is copied; the caller keeps ownership of d.
func NewKeyPair(lib *ecgamal.Library, q *curve.Point, d *curve.Scalar) (*KeyPair, error) {
	const op = "elgamal.NewKeyPair"
	pub, err := NewPublicKey(lib, q)
	if err != nil {
		return nil, err
	}
	if d == nil || d.IsZero() {
		return nil, ecgamal.NewError(op, ecgamal.ErrValidation, fmt.Errorf("%w: private scalar must be in [1, n-1]", curve.ErrInvalidScalar))
	}
	if d.Curve() != pub.curve {
		return nil, ecgamal.NewError(op, ecgamal.ErrConfiguration, curve.ErrCurveMismatch)
	}
	b := d.Bytes()
	defer ecgamal.ZeroizeBytes(b)
	own, err := curve.NewScalarFromBytes(pub.curve, b)
	if err != nil {
		return nil, ecgamal.NewError(op, ecgamal.ErrValidation, err)
	}
	check, err := curve.MulGenerator(pub.curve, own)
	if err != nil {
		own.Free()
		return nil, ecgamal.NewError(op, ecgamal.ErrValidation, err)
	}
	if !check.Equal(q) {
		own.Free()
		return nil, ecgamal.Errorf(op, ecgamal.ErrValidation, "public point does not match the private scalar")
	}
	return newKeyPair(pub.curve, q, own), nil
}

// PublicOnly wraps pub in a key pair without a private scalar. Such a pair
// encrypts but cannot decrypt.
func PublicOnly(pub *PublicKey) *KeyPair {
	if pub == nil {
		return nil
	}
	return &KeyPair{pub: PublicKey{curve: pub.curve, q: pub.q}}
}

func newKeyPair(c curve.Curve, q *curve.Point, d *curve.Scalar) *KeyPair {
	k := &KeyPair{pub: PublicKey{curve: c, q: q}, d: d}
	runtime.SetFinalizer(k, (*KeyPair).Clear)
	return k
}

// Public returns the public half of the pair.
func (k *KeyPair) Public() *PublicKey {
	if k == nil {
		return nil
	}
	return &k.pub
}

// Curve returns the curve of the key pair.
func (k *KeyPair) Curve() curve.Curve {
	if k == nil {
		return curve.Unknown
	}
	return k.pub.curve
}

// HasPrivate reports whether the private scalar is still present.
func (k *KeyPair) HasPrivate() bool {
	if k == nil {
		return false
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.d != nil
}

// ExportPrivate returns a copy of the fixed-width big-endian private scalar.
// The caller must zeroize it, e.g. with ecgamal.ZeroizeBytes.
func (k *KeyPair) ExportPrivate() ([]byte, error) {
	if k == nil {
		return nil, ErrNoPrivateKey
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.d == nil {
		return nil, ErrNoPrivateKey
	}
	return k.d.Bytes(), nil
}

// Clear zeroizes the private scalar. The pair remains usable as a public key.
// It is also installed as a finalizer.
func (k *KeyPair) Clear() {
	if k == nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.d != nil {
		k.d.Free()
		k.d = nil
	}
	runtime.SetFinalizer(k, nil)
}

// String identifies the pair by its public point only.
func (k *KeyPair) String() string {
	if k == nil {
		return "KeyPair(nil)"
	}
	return "KeyPair(" + k.pub.q.String() + ")"
}

// sharedSecret returns d·c1.
func (k *KeyPair) sharedSecret(c1 *curve.Point) (*curve.Point, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.d == nil {
		return nil, ErrNoPrivateKey
	}
	return c1.Mul(k.d)
}
