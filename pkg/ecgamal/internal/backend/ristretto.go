package backend

import (
	"fmt"
	"math/big"

	"github.com/gtank/ristretto255"
)

const ristrettoLen = 32

// ristrettoOrder is l = 2^252 + 27742317777372353535851937790883648493.
var ristrettoOrder, _ = new(big.Int).SetString(
	"7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

type ristrettoGroup struct{}

type ristrettoElement struct {
	v ristretto255.Element
}

func (ristrettoGroup) Curve() Curve { return Ristretto255 }

func (ristrettoGroup) Order() *big.Int { return new(big.Int).Set(ristrettoOrder) }

func (ristrettoGroup) ScalarSize() int { return 32 }

// ElementSize is the same in both forms: ristretto255 has a single canonical
// 32-byte encoding.
func (ristrettoGroup) ElementSize(bool) int { return ristrettoLen }

func (ristrettoGroup) Identity() Element {
	out := &ristrettoElement{}
	out.v.Zero()
	return out
}

func (ristrettoGroup) Generator() Element {
	out := &ristrettoElement{}
	out.v.Base()
	return out
}

func (ristrettoGroup) MulBase(k *big.Int) Element {
	s := ristrettoScalar(k)
	out := &ristrettoElement{}
	out.v.ScalarBaseMult(s)
	return out
}

func (ristrettoGroup) Decode(b []byte) (Element, error) {
	if len(b) != ristrettoLen {
		return nil, fmt.Errorf("%w: ristretto255 expects %d bytes, got %d", ErrInvalidEncoding, ristrettoLen, len(b))
	}
	out := &ristrettoElement{}
	if _, err := out.v.SetCanonicalBytes(b); err != nil {
		return nil, fmt.Errorf("%w: non-canonical: %v", ErrInvalidEncoding, err)
	}
	return out, nil
}

func (e *ristrettoElement) Add(o Element) Element {
	other := o.(*ristrettoElement)
	out := &ristrettoElement{}
	out.v.Add(&e.v, &other.v)
	return out
}

func (e *ristrettoElement) Sub(o Element) Element {
	other := o.(*ristrettoElement)
	out := &ristrettoElement{}
	out.v.Subtract(&e.v, &other.v)
	return out
}

func (e *ristrettoElement) Neg() Element {
	out := &ristrettoElement{}
	out.v.Negate(&e.v)
	return out
}

func (e *ristrettoElement) Mul(k *big.Int) Element {
	s := ristrettoScalar(k)
	out := &ristrettoElement{}
	out.v.ScalarMult(s, &e.v)
	return out
}

func (e *ristrettoElement) Equal(o Element) bool {
	other, ok := o.(*ristrettoElement)
	if !ok {
		return false
	}
	return e.v.Equal(&other.v) == 1
}

func (e *ristrettoElement) IsIdentity() bool {
	var zero ristretto255.Element
	zero.Zero()
	return e.v.Equal(&zero) == 1
}

func (e *ristrettoElement) Encode(bool) ([]byte, error) {
	return e.v.Bytes(), nil
}

// ristrettoScalar converts a reduced big-endian integer into the canonical
// little-endian scalar encoding expected by ristretto255.
func ristrettoScalar(k *big.Int) *ristretto255.Scalar {
	var buf [32]byte
	k.FillBytes(buf[:])
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	s := new(ristretto255.Scalar)
	if _, err := s.SetCanonicalBytes(buf[:]); err != nil {
		// k is reduced modulo l by the caller, so this cannot happen.
		panic("backend: unreduced ristretto255 scalar")
	}
	for i := range buf {
		buf[i] = 0
	}
	return s
}
