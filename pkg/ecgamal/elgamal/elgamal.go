package elgamal

import (
	"errors"

	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/curve"
)

// Table recovers small discrete logarithms; *bsgs.Table implements it.
type Table interface {
	Curve() curve.Curve
	Lookup(p *curve.Point) (uint64, error)
}

// Encrypt encrypts m under pub with a fresh ephemeral scalar, which is
// zeroized before returning.
func Encrypt(lib *ecgamal.Library, pub *PublicKey, m uint64) (*Ciphertext, error) {
	const op = "elgamal.Encrypt"
	if pub == nil || pub.q == nil {
		return nil, ecgamal.Errorf(op, ecgamal.ErrConfiguration, "nil public key")
	}
	if err := lib.CheckCurve(op, pub.curve); err != nil {
		return nil, err
	}
	c := pub.curve

	k, err := curve.RandomScalar(c, lib.Rand())
	if err != nil {
		return nil, ecgamal.NewError(op, ecgamal.ErrConfiguration, err)
	}
	defer k.Free()

	c1, err := curve.MulGenerator(c, k)
	if err != nil {
		return nil, ecgamal.NewError(op, ecgamal.ErrConfiguration, err)
	}
	s, err := pub.q.Mul(k)
	if err != nil {
		return nil, ecgamal.NewError(op, ecgamal.ErrConfiguration, err)
	}
	mG, err := curve.MulGeneratorUint64(c, m)
	if err != nil {
		return nil, ecgamal.NewError(op, ecgamal.ErrConfiguration, err)
	}
	c2, err := mG.Add(s)
	if err != nil {
		return nil, ecgamal.NewError(op, ecgamal.ErrConfiguration, err)
	}
	return &Ciphertext{C1: c1, C2: c2}, nil
}

// Decrypt recovers m from ct. The plaintext must lie in the table range;
// otherwise, and also when ct was produced under another key, the lookup
// fails with ErrCapacity.
func Decrypt(lib *ecgamal.Library, key *KeyPair, ct *Ciphertext, table Table) (uint64, error) {
	const op = "elgamal.Decrypt"
	if key == nil {
		return 0, ecgamal.Errorf(op, ecgamal.ErrConfiguration, "nil key")
	}
	if table == nil {
		return 0, ecgamal.Errorf(op, ecgamal.ErrConfiguration, "nil table")
	}
	if ct == nil || ct.C1 == nil || ct.C2 == nil {
		return 0, ecgamal.Errorf(op, ecgamal.ErrValidation, "incomplete ciphertext")
	}
	for _, c := range []curve.Curve{key.Curve(), ct.C1.Curve(), ct.C2.Curve(), table.Curve()} {
		if err := lib.CheckCurve(op, c); err != nil {
			return 0, err
		}
	}

	s, err := key.sharedSecret(ct.C1)
	if err != nil {
		return 0, ecgamal.NewError(op, ecgamal.ErrConfiguration, err)
	}
	mG, err := ct.C2.Sub(s)
	if err != nil {
		return 0, ecgamal.NewError(op, ecgamal.ErrConfiguration, err)
	}
	m, err := table.Lookup(mG)
	if err != nil {
		var e *ecgamal.Error
		if errors.As(err, &e) {
			return 0, err
		}
		return 0, ecgamal.NewError(op, ecgamal.ErrCapacity, err)
	}
	return m, nil
}

// Add returns an encryption of ma + mb from encryptions of ma and mb under
// the same key. Decrypting the sum needs a table covering ma + mb.
func Add(lib *ecgamal.Library, a, b *Ciphertext) (*Ciphertext, error) {
	const op = "elgamal.Add"
	if a == nil || b == nil || a.C1 == nil || a.C2 == nil || b.C1 == nil || b.C2 == nil {
		return nil, ecgamal.Errorf(op, ecgamal.ErrValidation, "incomplete ciphertext")
	}
	for _, c := range []curve.Curve{a.Curve(), b.Curve()} {
		if err := lib.CheckCurve(op, c); err != nil {
			return nil, err
		}
	}
	c1, err := a.C1.Add(b.C1)
	if err != nil {
		return nil, ecgamal.NewError(op, ecgamal.ErrConfiguration, err)
	}
	c2, err := a.C2.Add(b.C2)
	if err != nil {
		return nil, ecgamal.NewError(op, ecgamal.ErrConfiguration, err)
	}
	return &Ciphertext{C1: c1, C2: c2}, nil
}
