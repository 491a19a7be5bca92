package crt_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/bsgs"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/crt"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/curve"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/elgamal"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/logging"
)

type fixture struct {
	lib    *ecgamal.Library
	params *crt.Params
	key    *crt.KeyPair
	table  *bsgs.Table
}

func setup(t *testing.T, c curve.Curve, profile crt.Profile) fixture {
	t.Helper()
	lib, err := ecgamal.Open(ecgamal.Config{Curve: c, Workers: 4})
	require.NoError(t, err)
	t.Cleanup(func() { _ = lib.Close() })

	params, err := crt.DefaultParams(profile)
	require.NoError(t, err)
	key, err := crt.GenerateKey(lib, params)
	require.NoError(t, err)
	t.Cleanup(key.Clear)

	table, err := bsgs.New(context.Background(), lib, params.MaxModulus())
	require.NoError(t, err)
	t.Cleanup(table.Free)
	return fixture{lib: lib, params: params, key: key, table: table}
}

func TestRoundTrip32(t *testing.T) {
	f := setup(t, curve.Default, crt.Bits32)
	for _, m := range []uint64{0, 1, 131071, 36435345, 1<<32 - 1} {
		ct, err := crt.Encrypt(f.lib, f.key, m)
		require.NoError(t, err)
		require.Len(t, ct.Parts, 3)

		got, err := crt.Decrypt(f.lib, f.key, ct, f.table)
		require.NoError(t, err)
		require.Equal(t, m, got)
	}

	_, err := crt.Encrypt(f.lib, f.key, 1<<32)
	require.ErrorIs(t, err, ecgamal.ErrCapacity)
}

func TestRoundTrip64(t *testing.T) {
	for _, c := range []curve.Curve{curve.Secp256k1, curve.P256, curve.Ristretto255} {
		t.Run(c.String(), func(t *testing.T) {
			f := setup(t, c, crt.Bits64)
			m := uint64(1<<64 - 1000)
			ct, err := crt.Encrypt(f.lib, f.key, m)
			require.NoError(t, err)
			require.Equal(t, c, ct.Curve())

			got, err := crt.Decrypt(f.lib, f.key, ct, f.table)
			require.NoError(t, err)
			require.Equal(t, m, got)
		})
	}
}

// TestCorruptedResidue alters one residue two ways: to a value the table
// cannot cover, and to another in-range value that recombines outside
// 2^64.
func TestCorruptedResidue(t *testing.T) {
	f := setup(t, curve.Default, crt.Bits64)
	m := uint64(1<<64 - 1000)
	ct, err := crt.Encrypt(f.lib, f.key, m)
	require.NoError(t, err)

	big, err := elgamal.Encrypt(f.lib, f.key.Public(), 1<<40)
	require.NoError(t, err)
	bad, err := elgamal.Add(f.lib, ct.Parts[1], big)
	require.NoError(t, err)
	corrupted := &crt.Ciphertext{Parts: append([]*elgamal.Ciphertext(nil), ct.Parts...)}
	corrupted.Parts[1] = bad

	_, err = crt.Decrypt(f.lib, f.key, corrupted, f.table)
	require.ErrorIs(t, err, ecgamal.ErrCRTConsistency)
	require.ErrorIs(t, err, ecgamal.ErrCapacity)

	one, err := elgamal.Encrypt(f.lib, f.key.Public(), 1)
	require.NoError(t, err)
	shifted, err := elgamal.Add(f.lib, ct.Parts[0], one)
	require.NoError(t, err)
	corrupted.Parts[1] = ct.Parts[1]
	corrupted.Parts[0] = shifted

	_, err = crt.Decrypt(f.lib, f.key, corrupted, f.table)
	require.ErrorIs(t, err, ecgamal.ErrCRTConsistency)

	corrupted.Parts = corrupted.Parts[:3]
	_, err = crt.Decrypt(f.lib, f.key, corrupted, f.table)
	require.ErrorIs(t, err, ecgamal.ErrCRTConsistency)
}

func TestTableTooSmall(t *testing.T) {
	f := setup(t, curve.Default, crt.Bits32)
	small, err := bsgs.New(context.Background(), f.lib, 1<<10)
	require.NoError(t, err)

	ct, err := crt.Encrypt(f.lib, f.key, 5)
	require.NoError(t, err)
	_, err = crt.Decrypt(f.lib, f.key, ct, small)
	require.ErrorIs(t, err, ecgamal.ErrConfiguration)
}

// TestTamperedResidueSweep adds Enc(d) to one residue ciphertext for every
// d in [1, 200]. ElGamal is malleable, so this is what an attacker can do
// without the key; no such ciphertext may decrypt to a value.
func TestTamperedResidueSweep(t *testing.T) {
	tests := []struct {
		profile crt.Profile
		m       uint64
		residue int
	}{
		{crt.Bits32, 1<<32 - 1, 1},
		{crt.Bits64, 1<<64 - 1000, 0},
		{crt.Bits64, 36435345, 4},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.profile, tt.residue), func(t *testing.T) {
			f := setup(t, curve.Default, tt.profile)
			ct, err := crt.Encrypt(f.lib, f.key, tt.m)
			require.NoError(t, err)

			for d := uint64(1); d <= 200; d++ {
				delta, err := elgamal.Encrypt(f.lib, f.key.Public(), d)
				require.NoError(t, err)
				part, err := elgamal.Add(f.lib, ct.Parts[tt.residue], delta)
				require.NoError(t, err)

				tampered := &crt.Ciphertext{Parts: slices.Clone(ct.Parts)}
				tampered.Parts[tt.residue] = part
				got, err := crt.Decrypt(f.lib, f.key, tampered, f.table)
				require.ErrorIs(t, err, ecgamal.ErrCRTConsistency, "d=%d decrypted to %d", d, got)
			}
		})
	}
}

func TestZeroValues(t *testing.T) {
	f := setup(t, curve.Default, crt.Bits32)
	ct, err := crt.Encrypt(f.lib, f.key, 77)
	require.NoError(t, err)

	var table *bsgs.Table
	_, err = crt.Decrypt(f.lib, f.key, ct, table)
	require.ErrorIs(t, err, ecgamal.ErrConfiguration)

	var empty crt.KeyPair
	_, err = crt.Encrypt(f.lib, &empty, 77)
	require.ErrorIs(t, err, ecgamal.ErrConfiguration)
	_, err = crt.Decrypt(f.lib, &empty, ct, f.table)
	require.ErrorIs(t, err, ecgamal.ErrConfiguration)

	_, err = crt.GenerateKey(f.lib, &crt.Params{})
	require.ErrorIs(t, err, ecgamal.ErrConfiguration)
	_, err = crt.NewKeyPair(f.key.ElGamal(), nil)
	require.ErrorIs(t, err, ecgamal.ErrConfiguration)
}

func TestSingleWorker(t *testing.T) {
	lib, err := ecgamal.Open(ecgamal.Config{Workers: 1})
	require.NoError(t, err)
	defer lib.Close()
	params, err := crt.DefaultParams(crt.Bits32)
	require.NoError(t, err)
	key, err := crt.GenerateKey(lib, params)
	require.NoError(t, err)
	table, err := bsgs.New(context.Background(), lib, params.MaxModulus())
	require.NoError(t, err)

	ct, err := crt.Encrypt(lib, key, 4000000000)
	require.NoError(t, err)
	got, err := crt.Decrypt(lib, key, ct, table)
	require.NoError(t, err)
	require.Equal(t, uint64(4000000000), got)
}

func TestClearedKey(t *testing.T) {
	f := setup(t, curve.Default, crt.Bits32)
	ct, err := crt.Encrypt(f.lib, f.key, 9)
	require.NoError(t, err)
	f.key.Clear()
	_, err = crt.Decrypt(f.lib, f.key, ct, f.table)
	require.ErrorIs(t, err, ecgamal.ErrConfiguration)
	require.ErrorIs(t, err, elgamal.ErrNoPrivateKey)
}

func TestDecryptLogsRedactedPlaintext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	lib, err := ecgamal.Open(ecgamal.Config{Logger: logger, Workers: 2})
	require.NoError(t, err)
	defer lib.Close()

	params, err := crt.DefaultParams(crt.Bits32)
	require.NoError(t, err)
	key, err := crt.GenerateKey(lib, params)
	require.NoError(t, err)
	table, err := bsgs.New(context.Background(), lib, params.MaxModulus())
	require.NoError(t, err)

	const m = 3141592653
	ct, err := crt.Encrypt(lib, key, m)
	require.NoError(t, err)
	got, err := crt.Decrypt(lib, key, ct, table)
	require.NoError(t, err)
	require.Equal(t, uint64(m), got)

	out := buf.String()
	require.Contains(t, out, "plaintext="+logging.Placeholder())
	require.NotContains(t, out, strconv.FormatUint(m, 10))
}
