package backend

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
)

const (
	secp256k1CompressedLen   = 33
	secp256k1UncompressedLen = 65
)

type secp256k1Group struct{}

// secp256k1Element keeps the point in affine form (Z = 1) or as the point
// at infinity so that equality and encoding need no further normalisation.
type secp256k1Element struct {
	p btcec.JacobianPoint
}

func (secp256k1Group) Curve() Curve { return Secp256k1 }

func (secp256k1Group) Order() *big.Int {
	return new(big.Int).Set(btcec.S256().Params().N)
}

func (secp256k1Group) ScalarSize() int { return 32 }

func (secp256k1Group) ElementSize(compressed bool) int {
	if compressed {
		return secp256k1CompressedLen
	}
	return secp256k1UncompressedLen
}

func (secp256k1Group) Identity() Element {
	return &secp256k1Element{}
}

func (g secp256k1Group) Generator() Element {
	return g.MulBase(big.NewInt(1))
}

func (secp256k1Group) MulBase(k *big.Int) Element {
	s := secp256k1Scalar(k)
	defer s.Zero()

	out := &secp256k1Element{}
	btcec.ScalarBaseMultNonConst(s, &out.p)
	out.p.ToAffine()
	return out
}

func (secp256k1Group) Decode(b []byte) (Element, error) {
	if len(b) != secp256k1CompressedLen && len(b) != secp256k1UncompressedLen {
		return nil, fmt.Errorf("%w: secp256k1 expects %d or %d bytes, got %d",
			ErrInvalidEncoding, secp256k1CompressedLen, secp256k1UncompressedLen, len(b))
	}
	pk, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	out := &secp256k1Element{}
	pk.AsJacobian(&out.p)
	return out, nil
}

func (e *secp256k1Element) Add(o Element) Element {
	other := o.(*secp256k1Element)
	out := &secp256k1Element{}
	btcec.AddNonConst(&e.p, &other.p, &out.p)
	out.p.ToAffine()
	return out
}

func (e *secp256k1Element) Sub(o Element) Element {
	return e.Add(o.Neg())
}

func (e *secp256k1Element) Neg() Element {
	out := &secp256k1Element{p: e.p}
	if out.IsIdentity() {
		return out
	}
	out.p.Y.Negate(1).Normalize()
	return out
}

func (e *secp256k1Element) Mul(k *big.Int) Element {
	s := secp256k1Scalar(k)
	defer s.Zero()

	out := &secp256k1Element{}
	btcec.ScalarMultNonConst(s, &e.p, &out.p)
	out.p.ToAffine()
	return out
}

func (e *secp256k1Element) Equal(o Element) bool {
	other, ok := o.(*secp256k1Element)
	if !ok {
		return false
	}
	a, b := e.IsIdentity(), other.IsIdentity()
	if a || b {
		return a == b
	}
	return e.p.X.Equals(&other.p.X) && e.p.Y.Equals(&other.p.Y)
}

func (e *secp256k1Element) IsIdentity() bool {
	return (e.p.X.IsZero() && e.p.Y.IsZero()) || e.p.Z.IsZero()
}

func (e *secp256k1Element) Encode(compressed bool) ([]byte, error) {
	if e.IsIdentity() {
		return nil, fmt.Errorf("%w: identity has no secp256k1 encoding", ErrInvalidEncoding)
	}
	pk := btcec.NewPublicKey(&e.p.X, &e.p.Y)
	if compressed {
		return pk.SerializeCompressed(), nil
	}
	return pk.SerializeUncompressed(), nil
}

// secp256k1Scalar converts a reduced big integer into a ModNScalar. The
// intermediate buffer is wiped before returning.
func secp256k1Scalar(k *big.Int) *btcec.ModNScalar {
	var buf [32]byte
	k.FillBytes(buf[:])
	s := new(btcec.ModNScalar)
	s.SetByteSlice(buf[:])
	for i := range buf {
		buf[i] = 0
	}
	return s
}
