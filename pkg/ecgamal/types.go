package ecgamal

import "github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/curve"

// Type aliases for convenience. These allow callers to reference
// ecgamal.Curve and ecgamal.Point without importing the curve package.

// Curve is an alias for curve.Curve.
type Curve = curve.Curve

// Point is an alias for curve.Point.
type Point = curve.Point

// Standard curve constants re-exported for convenience.
const (
	CurveSecp256k1    = curve.Secp256k1
	CurveP256         = curve.P256
	CurveP384         = curve.P384
	CurveP521         = curve.P521
	CurveRistretto255 = curve.Ristretto255
	CurveBN254        = curve.BN254
	CurveBLS12381     = curve.BLS12381
)
