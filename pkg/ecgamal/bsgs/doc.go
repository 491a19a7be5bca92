// Package bsgs implements baby-step giant-step discrete-log tables.
//
// A Table answers "which x produced x·G" for x in a bounded range. Exact
// ElGamal decryption ends with such a lookup, and the CRT extension performs
// one per residue against a table sized to the largest modulus.
//
//	table, err := bsgs.New(ctx, lib, 1<<20)  // covers [0, 2^20)
//	table, err := bsgs.FromTableBits(ctx, lib, 16) // 2^16 × 2^16, covers [0, 2^32)
//	defer table.Free()
//
//	x, err := table.Lookup(p)
//	if errors.Is(err, ecgamal.ErrCapacity) {
//	    // p is not x·G for any covered x
//	}
package bsgs
