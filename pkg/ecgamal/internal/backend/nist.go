package backend

import (
	"crypto/elliptic"
	"fmt"
	"math/big"

	"github.com/cloudflare/circl/group"
)

// nistGroup adapts a circl short-Weierstrass group. The order is taken from
// the matching crypto/elliptic parameters because circl exposes it only as
// an opaque Scalar.
type nistGroup struct {
	curve Curve
	g     group.Group
	order *big.Int
}

type nistElement struct {
	g group.Group
	v group.Element
}

func newNISTGroup(c Curve, g group.Group, params *elliptic.CurveParams) *nistGroup {
	return &nistGroup{curve: c, g: g, order: new(big.Int).Set(params.N)}
}

func (n *nistGroup) Curve() Curve { return n.curve }

func (n *nistGroup) Order() *big.Int { return new(big.Int).Set(n.order) }

func (n *nistGroup) ScalarSize() int { return int(n.g.Params().ScalarLength) }

func (n *nistGroup) ElementSize(compressed bool) int {
	if compressed {
		return int(n.g.Params().CompressedElementLength)
	}
	return int(n.g.Params().ElementLength)
}

func (n *nistGroup) Identity() Element {
	return &nistElement{g: n.g, v: n.g.Identity()}
}

func (n *nistGroup) Generator() Element {
	return &nistElement{g: n.g, v: n.g.Generator()}
}

func (n *nistGroup) MulBase(k *big.Int) Element {
	s := n.g.NewScalar().SetBigInt(k)
	return &nistElement{g: n.g, v: n.g.NewElement().MulGen(s)}
}

func (n *nistGroup) Decode(b []byte) (Element, error) {
	if len(b) != n.ElementSize(true) && len(b) != n.ElementSize(false) {
		return nil, fmt.Errorf("%w: %s expects %d or %d bytes, got %d",
			ErrInvalidEncoding, n.curve, n.ElementSize(true), n.ElementSize(false), len(b))
	}
	v := n.g.NewElement()
	if err := v.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return &nistElement{g: n.g, v: v}, nil
}

func (e *nistElement) Add(o Element) Element {
	other := o.(*nistElement)
	return &nistElement{g: e.g, v: e.g.NewElement().Add(e.v, other.v)}
}

func (e *nistElement) Sub(o Element) Element {
	return e.Add(o.Neg())
}

func (e *nistElement) Neg() Element {
	return &nistElement{g: e.g, v: e.g.NewElement().Neg(e.v)}
}

func (e *nistElement) Mul(k *big.Int) Element {
	s := e.g.NewScalar().SetBigInt(k)
	return &nistElement{g: e.g, v: e.g.NewElement().Mul(e.v, s)}
}

func (e *nistElement) Equal(o Element) bool {
	other, ok := o.(*nistElement)
	if !ok {
		return false
	}
	return e.v.IsEqual(other.v)
}

func (e *nistElement) IsIdentity() bool {
	return e.v.IsIdentity()
}

func (e *nistElement) Encode(compressed bool) ([]byte, error) {
	if e.IsIdentity() {
		return nil, fmt.Errorf("%w: identity has no fixed-width encoding", ErrInvalidEncoding)
	}
	if compressed {
		return e.v.MarshalBinaryCompress()
	}
	return e.v.MarshalBinary()
}
