package ecgamal

import "runtime/debug"

var Version = "v0.0.0-in-progress"

// ModuleVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func ModuleVersion() string {
	return Version
}

// curveModules are the libraries that provide group arithmetic.
var curveModules = []string{
	"github.com/btcsuite/btcd/btcec/v2",
	"github.com/cloudflare/circl",
	"github.com/gtank/ristretto255",
	"github.com/consensys/gnark-crypto",
}

// BackendVersions reports the versions of the curve libraries linked into the
// running binary, keyed by module path. Modules missing from the build info
// are reported as "unknown".
func BackendVersions() map[string]string {
	out := make(map[string]string, len(curveModules))
	for _, m := range curveModules {
		out[m] = "unknown"
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}
	for _, dep := range info.Deps {
		if _, tracked := out[dep.Path]; tracked {
			out[dep.Path] = dep.Version
		}
	}
	return out
}
