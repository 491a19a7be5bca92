// Package curve provides the elliptic curve groups used by exact EC-ElGamal.
//
// This package defines a stable public API for group operations: points
// (Point), scalars (Scalar), and the closed set of supported curves. The
// arithmetic itself is delegated to established Go libraries; this package
// never implements field or point arithmetic.
//
// # Supported Curves
//
//   - Secp256k1 (default curve, btcec)
//   - P256, P384, P521 (NIST curves, circl)
//   - Ristretto255 (prime-order group, ristretto255)
//   - BN254, BLS12381 (G1 of the pairing curves, gnark-crypto)
//
// # Encodings
//
// Every curve has two fixed point widths, compressed and uncompressed
// (identical for Ristretto255). The identity is encoded as zero bytes of the
// chosen width; no valid non-identity point has that encoding on any
// supported curve.
//
// # Common Operations
//
//	// Random scalar in [1, n-1]
//	k, err := curve.RandomScalar(curve.P256, nil)
//	defer k.Free()
//
//	// Q = k * G
//	q, err := curve.MulGenerator(curve.P256, k)
//
//	// M = m * G for an integer plaintext
//	m, err := curve.MulGeneratorUint64(curve.P256, 42)
package curve
