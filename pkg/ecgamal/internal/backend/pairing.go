package backend

import (
	"fmt"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	blsfr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254"
	bnfr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// The pairing-friendly curves are used through their G1 subgroup only; no
// pairing is ever computed.

type bn254Group struct{}

type bn254Element struct {
	p bn254.G1Affine
}

func (bn254Group) Curve() Curve { return BN254 }

func (bn254Group) Order() *big.Int { return bnfr.Modulus() }

func (bn254Group) ScalarSize() int { return bnfr.Bytes }

func (bn254Group) ElementSize(compressed bool) int {
	if compressed {
		return bn254.SizeOfG1AffineCompressed
	}
	return bn254.SizeOfG1AffineUncompressed
}

func (bn254Group) Identity() Element { return &bn254Element{} }

func (bn254Group) Generator() Element {
	_, _, g1, _ := bn254.Generators()
	return &bn254Element{p: g1}
}

func (bn254Group) MulBase(k *big.Int) Element {
	out := &bn254Element{}
	out.p.ScalarMultiplicationBase(k)
	return out
}

func (g bn254Group) Decode(b []byte) (Element, error) {
	if len(b) != g.ElementSize(true) && len(b) != g.ElementSize(false) {
		return nil, fmt.Errorf("%w: BN254 expects %d or %d bytes, got %d",
			ErrInvalidEncoding, g.ElementSize(true), g.ElementSize(false), len(b))
	}
	out := &bn254Element{}
	n, err := out.p.SetBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	if n != len(b) {
		return nil, fmt.Errorf("%w: BN254 consumed %d of %d bytes", ErrInvalidEncoding, n, len(b))
	}
	return out, nil
}

func (e *bn254Element) Add(o Element) Element {
	other := o.(*bn254Element)
	out := &bn254Element{}
	out.p.Add(&e.p, &other.p)
	return out
}

func (e *bn254Element) Sub(o Element) Element {
	other := o.(*bn254Element)
	out := &bn254Element{}
	out.p.Sub(&e.p, &other.p)
	return out
}

func (e *bn254Element) Neg() Element {
	out := &bn254Element{}
	out.p.Neg(&e.p)
	return out
}

func (e *bn254Element) Mul(k *big.Int) Element {
	out := &bn254Element{}
	out.p.ScalarMultiplication(&e.p, k)
	return out
}

func (e *bn254Element) Equal(o Element) bool {
	other, ok := o.(*bn254Element)
	if !ok {
		return false
	}
	return e.p.Equal(&other.p)
}

func (e *bn254Element) IsIdentity() bool { return e.p.IsInfinity() }

func (e *bn254Element) Encode(compressed bool) ([]byte, error) {
	if e.IsIdentity() {
		return nil, fmt.Errorf("%w: identity has no fixed-width encoding", ErrInvalidEncoding)
	}
	if compressed {
		b := e.p.Bytes()
		return b[:], nil
	}
	b := e.p.RawBytes()
	return b[:], nil
}

type bls12381Group struct{}

type bls12381Element struct {
	p bls12381.G1Affine
}

func (bls12381Group) Curve() Curve { return BLS12381 }

func (bls12381Group) Order() *big.Int { return blsfr.Modulus() }

func (bls12381Group) ScalarSize() int { return blsfr.Bytes }

func (bls12381Group) ElementSize(compressed bool) int {
	if compressed {
		return bls12381.SizeOfG1AffineCompressed
	}
	return bls12381.SizeOfG1AffineUncompressed
}

func (bls12381Group) Identity() Element { return &bls12381Element{} }

func (bls12381Group) Generator() Element {
	_, _, g1, _ := bls12381.Generators()
	return &bls12381Element{p: g1}
}

func (bls12381Group) MulBase(k *big.Int) Element {
	out := &bls12381Element{}
	out.p.ScalarMultiplicationBase(k)
	return out
}

func (g bls12381Group) Decode(b []byte) (Element, error) {
	if len(b) != g.ElementSize(true) && len(b) != g.ElementSize(false) {
		return nil, fmt.Errorf("%w: BLS12-381 expects %d or %d bytes, got %d",
			ErrInvalidEncoding, g.ElementSize(true), g.ElementSize(false), len(b))
	}
	out := &bls12381Element{}
	n, err := out.p.SetBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	if n != len(b) {
		return nil, fmt.Errorf("%w: BLS12-381 consumed %d of %d bytes", ErrInvalidEncoding, n, len(b))
	}
	return out, nil
}

func (e *bls12381Element) Add(o Element) Element {
	other := o.(*bls12381Element)
	out := &bls12381Element{}
	out.p.Add(&e.p, &other.p)
	return out
}

func (e *bls12381Element) Sub(o Element) Element {
	other := o.(*bls12381Element)
	out := &bls12381Element{}
	out.p.Sub(&e.p, &other.p)
	return out
}

func (e *bls12381Element) Neg() Element {
	out := &bls12381Element{}
	out.p.Neg(&e.p)
	return out
}

func (e *bls12381Element) Mul(k *big.Int) Element {
	out := &bls12381Element{}
	out.p.ScalarMultiplication(&e.p, k)
	return out
}

func (e *bls12381Element) Equal(o Element) bool {
	other, ok := o.(*bls12381Element)
	if !ok {
		return false
	}
	return e.p.Equal(&other.p)
}

func (e *bls12381Element) IsIdentity() bool { return e.p.IsInfinity() }

func (e *bls12381Element) Encode(compressed bool) ([]byte, error) {
	if e.IsIdentity() {
		return nil, fmt.Errorf("%w: identity has no fixed-width encoding", ErrInvalidEncoding)
	}
	if compressed {
		b := e.p.Bytes()
		return b[:], nil
	}
	b := e.p.RawBytes()
	return b[:], nil
}
