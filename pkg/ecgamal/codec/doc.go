// Package codec defines the binary encodings of keys and ciphertexts.
//
// All lengths are fixed per curve and point form:
//
//	key:            mode(1) || Q(W) || d(S)        d only with ModePrivate
//	ciphertext:     C1(W) || C2(W)
//	crt ciphertext: count(4, big-endian) || count × ciphertext
//
// W is the compressed or uncompressed point width and S the scalar width of
// the curve. The identity point is written as W zero bytes. Encoders write
// into caller buffers and fail with ecgamal.ErrBuffer when the buffer is
// short; decoders reject wrong lengths with ecgamal.ErrBuffer and invalid
// points or scalars with ecgamal.ErrValidation.
package codec
