package crt

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal"
)

// Profile names a fixed CRT parameter set.
type Profile int

const (
	Bits32 Profile = 32
	Bits64 Profile = 64
)

func (p Profile) String() string {
	switch p {
	case Bits32:
		return "32"
	case Bits64:
		return "64"
	default:
		return fmt.Sprintf("Profile(%d)", int(p))
	}
}

// ParseProfile accepts "32" or "64".
func ParseProfile(s string) (Profile, error) {
	switch s {
	case "32":
		return Bits32, nil
	case "64":
		return Bits64, nil
	default:
		return 0, ecgamal.Errorf("crt.ParseProfile", ecgamal.ErrConfiguration, "unknown profile %q", s)
	}
}

// Primes just below 2^17, so every residue is recoverable from a table of
// 131071 entries. Each profile carries one modulus beyond what coverage of
// 2^TargetBits needs; a tampered residue then recombines to a value of about
// 17 bits more than the target, which Combine rejects.
var profileModuli = map[Profile][]uint64{
	Bits32: {131071, 131063, 131059},
	Bits64: {131071, 131063, 131059, 131041, 131023},
}

// Params is an immutable set of pairwise coprime moduli whose product covers
// [0, 2^TargetBits()).
type Params struct {
	targetBits uint
	moduli     []uint64
	product    *big.Int
	coeffs     []*big.Int // coeffs[i] ≡ 1 mod moduli[i], ≡ 0 mod the others
}

// DefaultParams returns the fixed parameters of a profile.
func DefaultParams(p Profile) (*Params, error) {
	moduli, ok := profileModuli[p]
	if !ok {
		return nil, ecgamal.Errorf("crt.DefaultParams", ecgamal.ErrConfiguration, "unknown profile %s", p)
	}
	return NewParams(uint(p), moduli)
}

// NewParams validates a custom modulus set. Moduli must be at least 2,
// pairwise coprime, and their product must reach 2^targetBits.
func NewParams(targetBits uint, moduli []uint64) (*Params, error) {
	const op = "crt.NewParams"
	if targetBits == 0 || targetBits > 64 {
		return nil, ecgamal.Errorf(op, ecgamal.ErrConfiguration, "target bits must be in [1, 64], got %d", targetBits)
	}
	if len(moduli) == 0 {
		return nil, ecgamal.Errorf(op, ecgamal.ErrConfiguration, "no moduli")
	}

	product := big.NewInt(1)
	for i, p := range moduli {
		if p < 2 {
			return nil, ecgamal.Errorf(op, ecgamal.ErrCRTConsistency, "modulus %d is %d", i, p)
		}
		for j := range i {
			if gcd(p, moduli[j]) != 1 {
				return nil, ecgamal.Errorf(op, ecgamal.ErrCRTConsistency, "moduli %d and %d share a factor", j, i)
			}
		}
		product.Mul(product, new(big.Int).SetUint64(p))
	}
	bound := new(big.Int).Lsh(big.NewInt(1), targetBits)
	if product.Cmp(bound) < 0 {
		return nil, ecgamal.Errorf(op, ecgamal.ErrCRTConsistency, "moduli product has %d bits, need %d", product.BitLen()-1, targetBits)
	}

	coeffs := make([]*big.Int, len(moduli))
	for i, p := range moduli {
		pi := new(big.Int).SetUint64(p)
		ni := new(big.Int).Quo(product, pi)
		inv := new(big.Int).ModInverse(new(big.Int).Mod(ni, pi), pi)
		coeffs[i] = ni.Mul(ni, inv).Mod(ni, product)
	}

	return &Params{
		targetBits: targetBits,
		moduli:     slices.Clone(moduli),
		product:    product,
		coeffs:     coeffs,
	}, nil
}

// TargetBits returns the plaintext width.
func (p *Params) TargetBits() uint { return p.targetBits }

// Len returns the number of residues.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.moduli)
}

// Moduli returns a copy of the moduli.
func (p *Params) Moduli() []uint64 { return slices.Clone(p.moduli) }

// MaxModulus returns the largest modulus, or 0 for empty parameters. A
// decryption table must cover it.
func (p *Params) MaxModulus() uint64 {
	if p.Len() == 0 {
		return 0
	}
	return slices.Max(p.moduli)
}

// Product returns a copy of the product of the moduli.
func (p *Params) Product() *big.Int { return new(big.Int).Set(p.product) }

// Fits reports whether m is below 2^TargetBits().
func (p *Params) Fits(m uint64) bool {
	return p.targetBits >= 64 || m>>p.targetBits == 0
}

// Residues splits m into m mod p_i.
func (p *Params) Residues(m uint64) []uint64 {
	out := make([]uint64, len(p.moduli))
	for i, q := range p.moduli {
		out[i] = m % q
	}
	return out
}

// Combine returns the unique value below the product with the given
// residues. Every residue must be below its modulus and the result below
// 2^TargetBits(); anything else is an ErrCRTConsistency.
func (p *Params) Combine(residues []uint64) (uint64, error) {
	const op = "crt.Combine"
	if len(residues) != len(p.moduli) {
		return 0, ecgamal.Errorf(op, ecgamal.ErrCRTConsistency, "got %d residues, want %d", len(residues), len(p.moduli))
	}
	x := new(big.Int)
	term := new(big.Int)
	for i, r := range residues {
		if r >= p.moduli[i] {
			return 0, ecgamal.Errorf(op, ecgamal.ErrCRTConsistency, "residue %d is %d, modulus is %d", i, r, p.moduli[i])
		}
		term.SetUint64(r)
		term.Mul(term, p.coeffs[i])
		x.Add(x, term)
	}
	x.Mod(x, p.product)
	if !x.IsUint64() || !p.Fits(x.Uint64()) {
		return 0, ecgamal.Errorf(op, ecgamal.ErrCRTConsistency, "recombined value has %d bits, limit is %d", x.BitLen(), p.targetBits)
	}
	return x.Uint64(), nil
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
