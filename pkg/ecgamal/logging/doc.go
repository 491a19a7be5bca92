// Package logging provides the logging facade used by ecgamal.
//
// Logger wraps the context-aware methods of log/slog. A Library carries one
// Logger; table builds, CRT recombination failures and library lifecycle
// events are reported through it.
//
//	logger := logging.New(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
//	logger.Debug(ctx, "bsgs table built", "curve", "secp256k1", "baby_steps", 65536)
//
// # Redaction
//
// Private keys, ephemeral scalars and plaintexts are never logged. Use
// Redacted when a record needs to show that such a value existed:
//
//	logger.Info(ctx, "key pair generated", "curve", c, logging.Redacted("private"))
//	// private="[redacted]"
package logging
