package backend_test

import (
	"errors"
	"testing"

	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/internal/backend"
)

// TestCurveFromName tests the CurveFromName parsing function.
func TestCurveFromName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCurve backend.Curve
		wantErr   bool
	}{
		{"secp256k1", "secp256k1", backend.Secp256k1, false},
		{"P-256 alias", "prime256v1", backend.P256, false},
		{"P-384 mixed case", "P-384", backend.P384, false},
		{"P-521", "secp521r1", backend.P521, false},
		{"ristretto with spaces", "  Ristretto255 ", backend.Ristretto255, false},
		{"BN254", "bn254", backend.BN254, false},
		{"BLS12-381", "BLS12-381", backend.BLS12381, false},
		{"Unknown", "ed448", backend.Unknown, true},
		{"Empty", "", backend.Unknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			crv, err := backend.CurveFromName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("CurveFromName() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && !errors.Is(err, backend.ErrUnsupportedCurve) {
				t.Errorf("CurveFromName() error = %v, want ErrUnsupportedCurve", err)
			}
			if !tt.wantErr && crv != tt.wantCurve {
				t.Errorf("CurveFromName() = %v, want %v", crv, tt.wantCurve)
			}
		})
	}
}

// TestGroupForRoundTrip tests that every named curve resolves to a group
// reporting the same curve.
func TestGroupForRoundTrip(t *testing.T) {
	curves := []backend.Curve{
		backend.Secp256k1,
		backend.P256,
		backend.P384,
		backend.P521,
		backend.Ristretto255,
		backend.BN254,
		backend.BLS12381,
	}

	for _, original := range curves {
		t.Run(original.String(), func(t *testing.T) {
			g, err := backend.GroupFor(original)
			if err != nil {
				t.Fatalf("GroupFor(%s) failed: %v", original, err)
			}
			if g.Curve() != original {
				t.Errorf("Round trip failed: got %s, want %s", g.Curve(), original)
			}

			parsed, err := backend.CurveFromName(original.String())
			if err != nil {
				t.Fatalf("CurveFromName(%s) failed: %v", original, err)
			}
			if parsed != original {
				t.Errorf("name round trip failed: got %s, want %s", parsed, original)
			}
		})
	}

	if _, err := backend.GroupFor(backend.Unknown); !errors.Is(err, backend.ErrUnsupportedCurve) {
		t.Fatalf("GroupFor(Unknown) error = %v, want ErrUnsupportedCurve", err)
	}
}
