// Package ecgamal implements exact EC-ElGamal: additively homomorphic
// encryption of small integers whose decryption recovers the integer itself
// through a baby-step giant-step discrete-log table.
//
// # Layout
//
//   - ecgamal: Library (curve context, randomness, logging, worker pool) and
//     the error taxonomy shared by every subpackage
//   - curve: supported groups, points and scalars
//   - bsgs: discrete-log tables
//   - elgamal: key pairs, encryption, decryption and homomorphic addition
//   - crt: 32 and 64-bit plaintexts split into residues below 2^17
//   - codec: binary encodings of keys and ciphertexts
//   - logging: slog facade
//
// # Example
//
//	lib, err := ecgamal.Open(ecgamal.Config{Curve: curve.Secp256k1})
//	if err != nil {
//	    return err
//	}
//	defer lib.Close()
//
//	key, err := elgamal.GenerateKey(lib)
//	defer key.Clear()
//	table, err := bsgs.FromTableBits(ctx, lib, 16)
//	defer table.Free()
//
//	ct, err := elgamal.Encrypt(lib, key.Public(), 36435345)
//	m, err := elgamal.Decrypt(lib, key, ct, table) // 36435345
//
// # Errors
//
// Failures are *Error values. Match the kind with errors.Is against
// ErrConfiguration, ErrCapacity, ErrBuffer, ErrValidation or
// ErrCRTConsistency; the underlying cause (for example curve.ErrInvalidPoint)
// is reachable the same way.
//
// # Security
//
// Decryption time depends on the plaintext and the group libraries are used
// through their variable-time APIs. Private scalars are zeroized on Clear and
// ephemeral scalars right after use, on a best-effort basis.
package ecgamal
