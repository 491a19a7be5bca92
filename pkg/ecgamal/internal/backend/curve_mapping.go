package backend

import (
	"crypto/elliptic"
	"fmt"
	"strings"

	"github.com/cloudflare/circl/group"
)

var groups = map[Curve]Group{
	Secp256k1:    secp256k1Group{},
	P256:         newNISTGroup(P256, group.P256, elliptic.P256().Params()),
	P384:         newNISTGroup(P384, group.P384, elliptic.P384().Params()),
	P521:         newNISTGroup(P521, group.P521, elliptic.P521().Params()),
	Ristretto255: ristrettoGroup{},
	BN254:        bn254Group{},
	BLS12381:     bls12381Group{},
}

// GroupFor returns the group implementation for c.
// This is the only place where curves are bound to libraries.
func GroupFor(c Curve) (Group, error) {
	g, ok := groups[c]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurve, c)
	}
	return g, nil
}

// CurveFromName parses the case-insensitive curve names accepted on command
// lines and in configuration files.
func CurveFromName(name string) (Curve, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "secp256k1", "k256":
		return Secp256k1, nil
	case "p-256", "p256", "secp256r1", "prime256v1":
		return P256, nil
	case "p-384", "p384", "secp384r1":
		return P384, nil
	case "p-521", "p521", "secp521r1":
		return P521, nil
	case "ristretto255", "ristretto":
		return Ristretto255, nil
	case "bn254", "bn256":
		return BN254, nil
	case "bls12-381", "bls12381":
		return BLS12381, nil
	default:
		return Unknown, fmt.Errorf("%w: %q", ErrUnsupportedCurve, name)
	}
}
