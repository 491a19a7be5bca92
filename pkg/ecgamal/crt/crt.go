package crt

import (
	"context"
	"fmt"

	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/curve"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/elgamal"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/logging"
)

// Table is a discrete-log table with a known range; *bsgs.Table implements it.
type Table interface {
	elgamal.Table
	Capacity() uint64
}

// KeyPair is one ElGamal key pair shared by every residue, bound to the
// parameters it encrypts under.
type KeyPair struct {
	key    *elgamal.KeyPair
	params *Params
}

// GenerateKey creates a fresh ElGamal key pair for params.
func GenerateKey(lib *ecgamal.Library, params *Params) (*KeyPair, error) {
	if params.Len() == 0 {
		return nil, ecgamal.Errorf("crt.GenerateKey", ecgamal.ErrConfiguration, "empty params")
	}
	key, err := elgamal.GenerateKey(lib)
	if err != nil {
		return nil, err
	}
	return &KeyPair{key: key, params: params}, nil
}

// NewKeyPair binds an existing ElGamal key pair to params.
func NewKeyPair(key *elgamal.KeyPair, params *Params) (*KeyPair, error) {
	if key == nil || params.Len() == 0 {
		return nil, ecgamal.Errorf("crt.NewKeyPair", ecgamal.ErrConfiguration, "nil key or empty params")
	}
	return &KeyPair{key: key, params: params}, nil
}

// ElGamal returns the underlying key pair.
func (k *KeyPair) ElGamal() *elgamal.KeyPair { return k.key }

// Params returns the parameters the key is bound to.
func (k *KeyPair) Params() *Params { return k.params }

// Public returns the public key.
func (k *KeyPair) Public() *elgamal.PublicKey { return k.key.Public() }

// Clear zeroizes the private scalar.
func (k *KeyPair) Clear() {
	if k != nil {
		k.key.Clear()
	}
}

// check rejects nil and zero-value pairs.
func (k *KeyPair) check(op string) error {
	if k == nil || k.key == nil || k.params.Len() == 0 {
		return ecgamal.Errorf(op, ecgamal.ErrConfiguration, "nil or incomplete key")
	}
	return nil
}

// Ciphertext holds one ElGamal ciphertext per modulus, in modulus order.
type Ciphertext struct {
	Parts []*elgamal.Ciphertext
}

// Curve returns the common curve of the parts, or curve.Unknown.
func (ct *Ciphertext) Curve() curve.Curve {
	if ct == nil || len(ct.Parts) == 0 {
		return curve.Unknown
	}
	c := ct.Parts[0].Curve()
	for _, p := range ct.Parts[1:] {
		if p.Curve() != c {
			return curve.Unknown
		}
	}
	return c
}

// Equal reports whether every part matches.
func (ct *Ciphertext) Equal(o *Ciphertext) bool {
	if ct == nil || o == nil || len(ct.Parts) != len(o.Parts) {
		return false
	}
	for i := range ct.Parts {
		if !ct.Parts[i].Equal(o.Parts[i]) {
			return false
		}
	}
	return true
}

// Encrypt splits m into residues and encrypts each on the Library worker
// pool. m must be below 2^TargetBits().
func Encrypt(lib *ecgamal.Library, key *KeyPair, m uint64) (*Ciphertext, error) {
	const op = "crt.Encrypt"
	if err := key.check(op); err != nil {
		return nil, err
	}
	if err := lib.Ready(op); err != nil {
		return nil, err
	}
	params := key.params
	if !params.Fits(m) {
		return nil, ecgamal.Errorf(op, ecgamal.ErrCapacity, "plaintext exceeds %d bits", params.targetBits)
	}

	residues := params.Residues(m)
	parts := make([]*elgamal.Ciphertext, len(residues))
	tasks := make([]func() error, len(residues))
	for i, r := range residues {
		tasks[i] = func() error {
			ct, err := elgamal.Encrypt(lib, key.Public(), r)
			parts[i] = ct
			return err
		}
	}
	if err := lib.Run(tasks...); err != nil {
		return nil, err
	}
	return &Ciphertext{Parts: parts}, nil
}

// Decrypt recovers every residue in parallel and recombines them. Any
// residue failure discards the whole result with ErrCRTConsistency; the
// residue error stays reachable through errors.Is.
func Decrypt(lib *ecgamal.Library, key *KeyPair, ct *Ciphertext, table Table) (uint64, error) {
	const op = "crt.Decrypt"
	if err := key.check(op); err != nil {
		return 0, err
	}
	if table == nil {
		return 0, ecgamal.Errorf(op, ecgamal.ErrConfiguration, "nil table")
	}
	if ct == nil {
		return 0, ecgamal.Errorf(op, ecgamal.ErrValidation, "nil ciphertext")
	}
	if err := lib.CheckCurve(op, key.key.Curve()); err != nil {
		return 0, err
	}
	if err := lib.CheckCurve(op, table.Curve()); err != nil {
		return 0, err
	}
	if !key.key.HasPrivate() {
		return 0, ecgamal.NewError(op, ecgamal.ErrConfiguration, elgamal.ErrNoPrivateKey)
	}
	params := key.params
	if table.Capacity() < params.MaxModulus() {
		return 0, ecgamal.Errorf(op, ecgamal.ErrConfiguration, "table capacity %d is below the largest modulus %d", table.Capacity(), params.MaxModulus())
	}
	if len(ct.Parts) != params.Len() {
		return 0, ecgamal.Errorf(op, ecgamal.ErrCRTConsistency, "ciphertext has %d residues, params have %d", len(ct.Parts), params.Len())
	}

	residues := make([]uint64, len(ct.Parts))
	tasks := make([]func() error, len(ct.Parts))
	for i, part := range ct.Parts {
		tasks[i] = func() error {
			r, err := elgamal.Decrypt(lib, key.key, part, table)
			if err != nil {
				return fmt.Errorf("residue %d: %w", i, err)
			}
			residues[i] = r
			return nil
		}
	}
	if err := lib.Run(tasks...); err != nil {
		lib.Logger().Warn(context.Background(), "crt residue decryption failed",
			"residues", len(ct.Parts), "error", err)
		return 0, ecgamal.NewError(op, ecgamal.ErrCRTConsistency, err)
	}

	m, err := params.Combine(residues)
	if err != nil {
		lib.Logger().Warn(context.Background(), "crt recombination failed", "error", err)
		return 0, err
	}
	lib.Logger().Debug(context.Background(), "crt residues recombined",
		"residues", len(residues),
		logging.Redacted("plaintext"),
	)
	return m, nil
}
