package elgamal

import (
	"fmt"

	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/curve"
)

// Ciphertext is the pair (C1, C2) = (k·G, m·G + k·Q).
type Ciphertext struct {
	C1 *curve.Point
	C2 *curve.Point
}

// NewCiphertext pairs two points of the same curve.
func NewCiphertext(c1, c2 *curve.Point) (*Ciphertext, error) {
	if c1 == nil || c2 == nil {
		return nil, fmt.Errorf("elgamal: nil ciphertext component")
	}
	if c1.Curve() != c2.Curve() {
		return nil, fmt.Errorf("%w: %s and %s", curve.ErrCurveMismatch, c1.Curve(), c2.Curve())
	}
	return &Ciphertext{C1: c1, C2: c2}, nil
}

// Curve returns the curve of the components, or curve.Unknown when they are
// missing or disagree.
func (ct *Ciphertext) Curve() curve.Curve {
	if ct == nil || ct.C1 == nil || ct.C2 == nil {
		return curve.Unknown
	}
	if c := ct.C1.Curve(); c == ct.C2.Curve() {
		return c
	}
	return curve.Unknown
}

// Equal reports whether both components match.
func (ct *Ciphertext) Equal(o *Ciphertext) bool {
	if ct == nil || o == nil {
		return false
	}
	return ct.C1.Equal(o.C1) && ct.C2.Equal(o.C2)
}

func (ct *Ciphertext) String() string {
	if ct == nil {
		return "Ciphertext(nil)"
	}
	return "Ciphertext(" + ct.C1.String() + ", " + ct.C2.String() + ")"
}
