// Package elgamal implements exact EC-ElGamal over the curves of package curve.
//
// A plaintext m is embedded as m·G, so decryption yields m·G and finishes
// with a discrete-log lookup (package bsgs). Only plaintexts inside the
// table range decrypt; larger values fail with ecgamal.ErrCapacity instead
// of returning a wrong number. Use package crt for full 32 or 64-bit values.
//
// Ciphertexts are additively homomorphic: Add(Enc(a), Enc(b)) decrypts to
// a+b.
package elgamal
