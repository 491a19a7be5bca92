package codec

import (
	"encoding/binary"

	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/crt"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/curve"
	"github.com/hsiuhsiu/ecgamal-go/pkg/ecgamal/elgamal"
)

// Mode selects the key encoding. The zero value is an uncompressed public key.
type Mode uint8

const (
	ModeCompressed Mode = 1 << iota
	ModePrivate

	ModeUncompressed Mode = 0

	modeMask = ModeCompressed | ModePrivate
)

// Compressed reports whether points are written in compressed form.
func (m Mode) Compressed() bool { return m&ModeCompressed != 0 }

// Private reports whether the private scalar is included.
func (m Mode) Private() bool { return m&ModePrivate != 0 }

const countSize = 4

// KeySize returns the encoded key length on c for mode, or 0 for an
// unsupported curve or mode.
func KeySize(c curve.Curve, mode Mode) int {
	if mode&^modeMask != 0 || c.Validate() != nil {
		return 0
	}
	n := 1 + c.PointSize(mode.Compressed())
	if mode.Private() {
		n += c.ScalarSize()
	}
	return n
}

// EncodeKey writes mode || Q || d? into dst and returns the bytes written.
// d is present only with ModePrivate.
func EncodeKey(dst []byte, key *elgamal.KeyPair, mode Mode) (int, error) {
	const op = "codec.EncodeKey"
	if key == nil {
		return 0, ecgamal.Errorf(op, ecgamal.ErrConfiguration, "nil key")
	}
	if mode&^modeMask != 0 {
		return 0, ecgamal.Errorf(op, ecgamal.ErrConfiguration, "unknown mode bits %d", uint8(mode&^modeMask))
	}
	c := key.Curve()
	size := KeySize(c, mode)
	if size == 0 {
		return 0, ecgamal.Errorf(op, ecgamal.ErrConfiguration, "unsupported curve %s", c)
	}
	if len(dst) < size {
		return 0, ecgamal.Errorf(op, ecgamal.ErrBuffer, "need %d bytes, have %d", size, len(dst))
	}

	pt, err := key.Public().Point().Encode(mode.Compressed())
	if err != nil {
		return 0, ecgamal.NewError(op, ecgamal.ErrValidation, err)
	}
	var d []byte
	if mode.Private() {
		if d, err = key.ExportPrivate(); err != nil {
			return 0, ecgamal.NewError(op, ecgamal.ErrConfiguration, err)
		}
		defer ecgamal.ZeroizeBytes(d)
	}

	dst[0] = byte(mode)
	n := 1 + copy(dst[1:], pt)
	n += copy(dst[n:], d)
	return n, nil
}

// DecodeKey parses a key produced by EncodeKey on the Library curve. A
// private scalar must be in [1, n-1] and match the public point.
func DecodeKey(lib *ecgamal.Library, src []byte) (*elgamal.KeyPair, error) {
	const op = "codec.DecodeKey"
	if err := lib.Ready(op); err != nil {
		return nil, err
	}
	if len(src) == 0 {
		return nil, ecgamal.Errorf(op, ecgamal.ErrBuffer, "empty input")
	}
	mode := Mode(src[0])
	if mode&^modeMask != 0 {
		return nil, ecgamal.Errorf(op, ecgamal.ErrBuffer, "unknown mode byte %d", src[0])
	}
	c := lib.Curve()
	if size := KeySize(c, mode); len(src) != size {
		return nil, ecgamal.Errorf(op, ecgamal.ErrBuffer, "%s key in mode %d is %d bytes, got %d", c, uint8(mode), size, len(src))
	}

	w := c.PointSize(mode.Compressed())
	q, err := curve.NewPointFromBytes(c, src[1:1+w])
	if err != nil {
		return nil, ecgamal.NewError(op, ecgamal.ErrValidation, err)
	}
	pub, err := elgamal.NewPublicKey(lib, q)
	if err != nil {
		return nil, err
	}
	if !mode.Private() {
		return elgamal.PublicOnly(pub), nil
	}

	d, err := curve.NewScalarFromBytes(c, src[1+w:])
	if err != nil {
		return nil, ecgamal.NewError(op, ecgamal.ErrValidation, err)
	}
	defer d.Free()
	return elgamal.NewKeyPair(lib, q, d)
}

// CiphertextSize returns the encoded length of a ciphertext on c.
func CiphertextSize(c curve.Curve, compressed bool) int {
	return 2 * c.PointSize(compressed)
}

// EncodeCiphertext writes C1 || C2 into dst and returns the bytes written.
func EncodeCiphertext(dst []byte, ct *elgamal.Ciphertext, compressed bool) (int, error) {
	const op = "codec.EncodeCiphertext"
	if ct == nil || ct.Curve() == curve.Unknown {
		return 0, ecgamal.Errorf(op, ecgamal.ErrValidation, "incomplete ciphertext")
	}
	size := CiphertextSize(ct.Curve(), compressed)
	if len(dst) < size {
		return 0, ecgamal.Errorf(op, ecgamal.ErrBuffer, "need %d bytes, have %d", size, len(dst))
	}
	return putCiphertext(op, dst, ct, compressed)
}

func putCiphertext(op string, dst []byte, ct *elgamal.Ciphertext, compressed bool) (int, error) {
	n := 0
	for _, p := range []*curve.Point{ct.C1, ct.C2} {
		b, err := p.Encode(compressed)
		if err != nil {
			return 0, ecgamal.NewError(op, ecgamal.ErrValidation, err)
		}
		n += copy(dst[n:], b)
	}
	return n, nil
}

// DecodeCiphertext parses C1 || C2 on the Library curve. The point form is
// inferred from the length.
func DecodeCiphertext(lib *ecgamal.Library, src []byte) (*elgamal.Ciphertext, error) {
	const op = "codec.DecodeCiphertext"
	if err := lib.Ready(op); err != nil {
		return nil, err
	}
	c := lib.Curve()
	if len(src) != CiphertextSize(c, true) && len(src) != CiphertextSize(c, false) {
		return nil, ecgamal.Errorf(op, ecgamal.ErrBuffer, "%s ciphertext must be %d or %d bytes, got %d",
			c, CiphertextSize(c, true), CiphertextSize(c, false), len(src))
	}
	return parseCiphertext(op, c, src)
}

func parseCiphertext(op string, c curve.Curve, src []byte) (*elgamal.Ciphertext, error) {
	w := len(src) / 2
	c1, err := curve.NewPointFromBytes(c, src[:w])
	if err != nil {
		return nil, ecgamal.NewError(op, ecgamal.ErrValidation, err)
	}
	c2, err := curve.NewPointFromBytes(c, src[w:])
	if err != nil {
		return nil, ecgamal.NewError(op, ecgamal.ErrValidation, err)
	}
	return &elgamal.Ciphertext{C1: c1, C2: c2}, nil
}

// CRTCiphertextSize returns the encoded length of a CRT ciphertext with n
// residues on c.
func CRTCiphertextSize(c curve.Curve, n int, compressed bool) int {
	return countSize + n*CiphertextSize(c, compressed)
}

// EncodeCRTCiphertext writes count || parts into dst, count as a big-endian
// uint32, and returns the bytes written.
func EncodeCRTCiphertext(dst []byte, ct *crt.Ciphertext, compressed bool) (int, error) {
	const op = "codec.EncodeCRTCiphertext"
	if ct == nil || len(ct.Parts) == 0 {
		return 0, ecgamal.Errorf(op, ecgamal.ErrBuffer, "no residues")
	}
	c := ct.Curve()
	if c == curve.Unknown {
		return 0, ecgamal.Errorf(op, ecgamal.ErrValidation, "residues are incomplete or on different curves")
	}
	size := CRTCiphertextSize(c, len(ct.Parts), compressed)
	if len(dst) < size {
		return 0, ecgamal.Errorf(op, ecgamal.ErrBuffer, "need %d bytes, have %d", size, len(dst))
	}

	binary.BigEndian.PutUint32(dst, uint32(len(ct.Parts)))
	n := countSize
	for _, part := range ct.Parts {
		k, err := putCiphertext(op, dst[n:], part, compressed)
		if err != nil {
			return 0, err
		}
		n += k
	}
	return n, nil
}

// DecodeCRTCiphertext parses count || parts on the Library curve. All parts
// share one point form, inferred from the length.
func DecodeCRTCiphertext(lib *ecgamal.Library, src []byte) (*crt.Ciphertext, error) {
	const op = "codec.DecodeCRTCiphertext"
	if err := lib.Ready(op); err != nil {
		return nil, err
	}
	if len(src) < countSize {
		return nil, ecgamal.Errorf(op, ecgamal.ErrBuffer, "truncated residue count")
	}
	count := uint64(binary.BigEndian.Uint32(src))
	if count == 0 {
		return nil, ecgamal.Errorf(op, ecgamal.ErrBuffer, "zero residue count")
	}
	body := src[countSize:]
	c := lib.Curve()
	var each int
	switch {
	case uint64(len(body)) == count*uint64(CiphertextSize(c, true)):
		each = CiphertextSize(c, true)
	case uint64(len(body)) == count*uint64(CiphertextSize(c, false)):
		each = CiphertextSize(c, false)
	default:
		return nil, ecgamal.Errorf(op, ecgamal.ErrBuffer, "%d bytes do not hold %d %s ciphertexts", len(body), count, c)
	}

	parts := make([]*elgamal.Ciphertext, count)
	for i := range parts {
		ct, err := parseCiphertext(op, c, body[i*each:(i+1)*each])
		if err != nil {
			return nil, err
		}
		parts[i] = ct
	}
	return &crt.Ciphertext{Parts: parts}, nil
}

// MarshalKey allocates and encodes a key.
func MarshalKey(key *elgamal.KeyPair, mode Mode) ([]byte, error) {
	if key == nil {
		return nil, ecgamal.Errorf("codec.MarshalKey", ecgamal.ErrConfiguration, "nil key")
	}
	buf := make([]byte, KeySize(key.Curve(), mode))
	n, err := EncodeKey(buf, key, mode)
	if err != nil {
		ecgamal.ZeroizeBytes(buf)
		return nil, err
	}
	return buf[:n], nil
}

// MarshalCiphertext allocates and encodes a ciphertext.
func MarshalCiphertext(ct *elgamal.Ciphertext, compressed bool) ([]byte, error) {
	if ct == nil {
		return nil, ecgamal.Errorf("codec.MarshalCiphertext", ecgamal.ErrValidation, "nil ciphertext")
	}
	buf := make([]byte, CiphertextSize(ct.Curve(), compressed))
	n, err := EncodeCiphertext(buf, ct, compressed)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// MarshalCRTCiphertext allocates and encodes a CRT ciphertext.
func MarshalCRTCiphertext(ct *crt.Ciphertext, compressed bool) ([]byte, error) {
	if ct == nil {
		return nil, ecgamal.Errorf("codec.MarshalCRTCiphertext", ecgamal.ErrBuffer, "nil ciphertext")
	}
	buf := make([]byte, CRTCiphertextSize(ct.Curve(), len(ct.Parts), compressed))
	n, err := EncodeCRTCiphertext(buf, ct, compressed)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}
