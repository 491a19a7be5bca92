package bsgs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/bsgs"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/curve"
)

func openLib(t *testing.T, c curve.Curve) *ecgamal.Library {
	t.Helper()
	lib, err := ecgamal.Open(ecgamal.Config{Curve: c, Workers: 4})
	require.NoError(t, err)
	t.Cleanup(func() { _ = lib.Close() })
	return lib
}

func point(t *testing.T, c curve.Curve, x uint64) *curve.Point {
	t.Helper()
	p, err := curve.MulGeneratorUint64(c, x)
	require.NoError(t, err)
	return p
}

// TestLookupCoversRange recovers every x below a small capacity and fails
// exactly at the capacity.
func TestLookupCoversRange(t *testing.T) {
	for _, c := range curve.Curves() {
		t.Run(c.String(), func(t *testing.T) {
			lib := openLib(t, c)
			for _, capacity := range []uint64{49, 50} {
				table, err := bsgs.New(context.Background(), lib, capacity)
				require.NoError(t, err)

				for x := uint64(0); x < capacity; x++ {
					got, err := table.Lookup(point(t, c, x))
					require.NoError(t, err, "x=%d", x)
					require.Equal(t, x, got)
				}

				_, err = table.Lookup(point(t, c, capacity))
				require.ErrorIs(t, err, ecgamal.ErrCapacity)
				table.Free()
			}
		})
	}
}

func TestTableSizing(t *testing.T) {
	lib := openLib(t, curve.Secp256k1)
	ctx := context.Background()

	table, err := bsgs.New(ctx, lib, 1000)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), table.Capacity())
	require.Equal(t, uint64(32), table.BabySteps())
	require.Equal(t, uint64(32), table.GiantSteps())
	require.Equal(t, curve.Secp256k1, table.Curve())

	table, err = bsgs.New(ctx, lib, 1000, bsgs.WithBabySteps(100), bsgs.WithWorkers(3))
	require.NoError(t, err)
	require.Equal(t, uint64(100), table.BabySteps())
	require.Equal(t, uint64(10), table.GiantSteps())
	got, err := table.Lookup(point(t, curve.Secp256k1, 999))
	require.NoError(t, err)
	require.Equal(t, uint64(999), got)

	table, err = bsgs.FromTableBits(ctx, lib, 4)
	require.NoError(t, err)
	require.Equal(t, uint64(16), table.BabySteps())
	require.Equal(t, uint64(16), table.GiantSteps())
	require.Equal(t, uint64(256), table.Capacity())

	_, err = bsgs.New(ctx, lib, 0)
	require.ErrorIs(t, err, ecgamal.ErrConfiguration)
	_, err = bsgs.FromTableBits(ctx, lib, 0)
	require.ErrorIs(t, err, ecgamal.ErrConfiguration)
	_, err = bsgs.FromTableBits(ctx, lib, bsgs.MaxTableBits+1)
	require.ErrorIs(t, err, ecgamal.ErrConfiguration)
}

// TestTableBitsScenario decrypts the reference value with a 2^16 table on the
// default curve.
func TestTableBitsScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("builds a 2^16 table")
	}
	lib := openLib(t, curve.Default)
	table, err := bsgs.FromTableBits(context.Background(), lib, 16)
	require.NoError(t, err)
	defer table.Free()

	got, err := table.Lookup(point(t, curve.Default, 36435345))
	require.NoError(t, err)
	require.Equal(t, uint64(36435345), got)
}

func TestConcurrentLookups(t *testing.T) {
	lib := openLib(t, curve.P256)
	table, err := bsgs.New(context.Background(), lib, 1<<12)
	require.NoError(t, err)

	var g errgroup.Group
	for w := uint64(0); w < 8; w++ {
		g.Go(func() error {
			for x := w; x < 1<<12; x += 97 {
				p, err := curve.MulGeneratorUint64(curve.P256, x)
				if err != nil {
					return err
				}
				got, err := table.Lookup(p)
				if err != nil {
					return err
				}
				if got != x {
					return errors.New("wrong discrete log")
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestLookupMisuse(t *testing.T) {
	lib := openLib(t, curve.Secp256k1)
	table, err := bsgs.New(context.Background(), lib, 64)
	require.NoError(t, err)

	_, err = table.Lookup(point(t, curve.P256, 3))
	require.ErrorIs(t, err, ecgamal.ErrConfiguration)
	require.ErrorIs(t, err, curve.ErrCurveMismatch)

	_, err = table.Lookup(nil)
	require.ErrorIs(t, err, ecgamal.ErrConfiguration)

	table.Free()
	_, err = table.Lookup(point(t, curve.Secp256k1, 3))
	require.ErrorIs(t, err, ecgamal.ErrConfiguration)

	var none *bsgs.Table
	require.Equal(t, curve.Unknown, none.Curve())
	require.Zero(t, none.Capacity())
	_, err = none.Lookup(point(t, curve.Secp256k1, 3))
	require.ErrorIs(t, err, ecgamal.ErrConfiguration)
}

func TestBuildHonoursContext(t *testing.T) {
	lib := openLib(t, curve.Secp256k1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := bsgs.New(ctx, lib, 1<<20)
	require.ErrorIs(t, err, ecgamal.ErrConfiguration)
	require.ErrorIs(t, err, context.Canceled)
}

func TestClosedLibrary(t *testing.T) {
	lib, err := ecgamal.Open(ecgamal.Config{})
	require.NoError(t, err)
	require.NoError(t, lib.Close())

	_, err = bsgs.New(context.Background(), lib, 16)
	require.ErrorIs(t, err, ecgamal.ErrConfiguration)
}
