// Package internalcheck holds source-level policy tests for ecgamal.
//
// The tests load every package under pkg/ecgamal with go/packages and walk
// the syntax trees. They enforce that byte slices are never compared with
// ==, that hex format verbs never appear in format strings, and that
// scalars and key pairs are never passed to a logger.
//
// # Internal Use Only
//
// This package has no API; it exists only for its tests.
package internalcheck
