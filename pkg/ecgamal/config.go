package ecgamal

import (
	"io"
	"log/slog"

	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/curve"
)

// Config expresses the knobs of a Library.
type Config struct {
	// Curve selects the group. The zero value selects curve.Default.
	Curve curve.Curve

	// Workers sizes the pool that runs independent operations such as CRT
	// residues. Zero means runtime.GOMAXPROCS(0); one runs everything on the
	// calling goroutine.
	Workers int

	// Logger receives library events. Nil binds to slog.Default().
	Logger *slog.Logger

	// Rand is the randomness source for keys and ephemeral scalars. Nil means
	// crypto/rand. A custom reader is serialized internally.
	Rand io.Reader
}
