package crt_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/crt"
)

func TestDefaultParamsCoverage(t *testing.T) {
	tests := []struct {
		profile crt.Profile
		moduli  int
	}{
		{crt.Bits32, 3},
		{crt.Bits64, 5},
	}
	for _, tt := range tests {
		t.Run(tt.profile.String(), func(t *testing.T) {
			params, err := crt.DefaultParams(tt.profile)
			require.NoError(t, err)
			require.Equal(t, tt.moduli, params.Len())
			require.Equal(t, uint(tt.profile), params.TargetBits())
			require.Equal(t, uint64(131071), params.MaxModulus())

			bound := new(big.Int).Lsh(big.NewInt(1), uint(tt.profile))
			require.GreaterOrEqual(t, params.Product().Cmp(bound), 0, "product below 2^%d", tt.profile)
		})
	}

	_, err := crt.DefaultParams(crt.Profile(48))
	require.ErrorIs(t, err, ecgamal.ErrConfiguration)
}

func TestNewParamsValidation(t *testing.T) {
	_, err := crt.NewParams(15, []uint64{256, 255})
	require.NoError(t, err)

	_, err = crt.NewParams(15, []uint64{256, 254})
	require.ErrorIs(t, err, ecgamal.ErrCRTConsistency, "shared factor")

	_, err = crt.NewParams(32, []uint64{65537, 65519})
	require.ErrorIs(t, err, ecgamal.ErrCRTConsistency, "product too small")

	_, err = crt.NewParams(8, []uint64{1, 257})
	require.ErrorIs(t, err, ecgamal.ErrCRTConsistency)

	_, err = crt.NewParams(0, []uint64{257})
	require.ErrorIs(t, err, ecgamal.ErrConfiguration)
	_, err = crt.NewParams(8, nil)
	require.ErrorIs(t, err, ecgamal.ErrConfiguration)
}

func TestResiduesCombine(t *testing.T) {
	params, err := crt.DefaultParams(crt.Bits64)
	require.NoError(t, err)

	for _, m := range []uint64{0, 1, 131070, 131071, 1 << 32, 1<<64 - 1000, 1<<64 - 1} {
		got, err := params.Combine(params.Residues(m))
		require.NoError(t, err)
		require.Equal(t, m, got)
	}

	r := params.Residues(12345)
	r[2] += params.Moduli()[2]
	_, err = params.Combine(r)
	require.ErrorIs(t, err, ecgamal.ErrCRTConsistency, "unreduced residue")

	r = params.Residues(1<<64 - 1000)
	r[0]++
	_, err = params.Combine(r)
	require.ErrorIs(t, err, ecgamal.ErrCRTConsistency)

	_, err = params.Combine(r[:3])
	require.ErrorIs(t, err, ecgamal.ErrCRTConsistency)
}

func TestParseProfile(t *testing.T) {
	p, err := crt.ParseProfile("64")
	require.NoError(t, err)
	require.Equal(t, crt.Bits64, p)
	_, err = crt.ParseProfile("128")
	require.ErrorIs(t, err, ecgamal.ErrConfiguration)
}

// TestCombineRejectsShiftedResidue shifts each residue by every d in
// [1, 200] in turn; the extra modulus must push every such recombination
// out of range.
func TestCombineRejectsShiftedResidue(t *testing.T) {
	tests := []struct {
		profile crt.Profile
		values  []uint64
	}{
		{crt.Bits32, []uint64{0, 1, 36435345, 4000000000, 1<<32 - 1}},
		{crt.Bits64, []uint64{0, 1, 36435345, 1 << 63, 1<<64 - 1000, 1<<64 - 1}},
	}
	for _, tt := range tests {
		t.Run(tt.profile.String(), func(t *testing.T) {
			params, err := crt.DefaultParams(tt.profile)
			require.NoError(t, err)
			moduli := params.Moduli()
			for _, m := range tt.values {
				for i := range moduli {
					for d := uint64(1); d <= 200; d++ {
						r := params.Residues(m)
						r[i] += d
						got, err := params.Combine(r)
						require.ErrorIs(t, err, ecgamal.ErrCRTConsistency, "m=%d residue=%d d=%d gave %d", m, i, d, got)
					}
				}
			}
		})
	}
}
