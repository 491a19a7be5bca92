// Package crt extends exact ElGamal to 32 and 64-bit plaintexts.
//
// A plaintext m is split into residues m mod p_i for small pairwise coprime
// moduli p_i. Each residue is encrypted separately under one key, so a single
// table covering the largest modulus decrypts all of them. The residues are
// recombined with the Chinese Remainder Theorem.
//
//	params, _ := crt.DefaultParams(crt.Bits64)
//	key, _ := crt.GenerateKey(lib, params)
//	table, _ := bsgs.New(ctx, lib, params.MaxModulus())
//
//	ct, _ := crt.Encrypt(lib, key, 1<<64-1000)
//	m, _ := crt.Decrypt(lib, key, ct, table)
package crt
