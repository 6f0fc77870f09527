package cartdata

import (
	"encoding/binary"
	"io"

	"go.chromium.org/luci/common/errors"
)

// HeaderMagic is the four magic bytes at the start of every CaRT artifact.
const HeaderMagic = "CART"

// FooterMagic is the four magic bytes at the start of the fixed footer.
const FooterMagic = "TRAC"

// Version is the only format version this codec understands.
const Version uint16 = 1

// HeaderSize is the size, in bytes, of the fixed header.
const HeaderSize = 4 + 2 + 8 + 16 + 8

// FooterSize is the size, in bytes, of the fixed footer.
//
// The distilled format spec states the footer is 32 bytes, but its own
// field-by-field breakdown (magic 4 + reserved 8 + offset 8 + length 8)
// only sums to 28. The reference implementation's MANDATORY_FOOTER_SIZE
// constant is 8*3+4 == 28, and its round-trip tests pass against that
// layout, so 28 is what this codec uses on the wire.
const FooterSize = 4 + 8 + 8 + 8

// KeySize is the width of the RC4 key embedded in the header.
const KeySize = 16

// DefaultKey is the default public key, used whenever a caller supplies no
// key of their own. It is not a secret: anyone decoding a CaRT artifact
// carrying this key in its header needs no external key material.
var DefaultKey = [KeySize]byte{
	0x03, 0x01, 0x04, 0x01, 0x05, 0x09, 0x02, 0x06,
	0x05, 0x03, 0x05, 0x08, 0x09, 0x07, 0x09, 0x02,
}

// ZeroKey is written into the header's active-key field whenever the caller
// supplies their own private key: the header carries no trace of it.
var ZeroKey = [KeySize]byte{}

func isZeroKey(k [KeySize]byte) bool {
	return k == ZeroKey
}

// Header is the 38-byte fixed header that opens every CaRT artifact.
type Header struct {
	// ActiveKey is DefaultKey when the caller supplied no key, or
	// ZeroKey when the caller supplied a private key.
	ActiveKey [KeySize]byte
	// OptHeaderLen is the size, in bytes, of the encrypted header-metadata
	// block that immediately follows this header.
	OptHeaderLen uint64
}

// WriteTo serializes the fixed header to w.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, HeaderSize)
	copy(buf[0:4], HeaderMagic)
	binary.LittleEndian.PutUint16(buf[4:6], Version)
	// buf[6:14] reserved, left zero.
	copy(buf[14:14+KeySize], h.ActiveKey[:])
	binary.LittleEndian.PutUint64(buf[14+KeySize:HeaderSize], h.OptHeaderLen)
	n, err := w.Write(buf)
	return int64(n), err
}

// ReadHeader reads and validates the fixed header from r. Reserved bytes
// that are nonzero are accepted but ignored, per the format spec.
func ReadHeader(r io.Reader) (Header, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Header{}, err
	}

	if string(buf[0:4]) != HeaderMagic {
		return Header{}, errors.Reason("bad header magic: %(magic)q").D("magic", string(buf[0:4])).Err()
	}
	version := binary.LittleEndian.Uint16(buf[4:6])
	if version != Version {
		return Header{}, errors.Reason("unsupported format version %(version)d").D("version", version).Err()
	}

	var h Header
	copy(h.ActiveKey[:], buf[14:14+KeySize])
	h.OptHeaderLen = binary.LittleEndian.Uint64(buf[14+KeySize : HeaderSize])
	return h, nil
}

// EffectiveKey resolves the key that must seed the cipher: the active key,
// if it is nonzero, otherwise the caller-supplied private key. An empty
// privateKey with a zero active key is an error: the header then carries
// no usable key, so there is no key to fall back on.
func (h Header) EffectiveKey(privateKey []byte) ([]byte, error) {
	if !isZeroKey(h.ActiveKey) {
		key := make([]byte, KeySize)
		copy(key, h.ActiveKey[:])
		return key, nil
	}
	if len(privateKey) == 0 {
		return nil, errors.New("header carries a zero active key and no private key was supplied")
	}
	return privateKey, nil
}

// Footer is the 28-byte fixed footer that closes every CaRT artifact.
type Footer struct {
	// OptFooterOffset is the absolute byte offset at which the encrypted
	// footer-metadata block begins.
	OptFooterOffset uint64
	// OptFooterLen is the size, in bytes, of the encrypted footer-metadata
	// block that immediately precedes this fixed footer.
	OptFooterLen uint64
}

// WriteTo serializes the fixed footer to w.
func (f Footer) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, FooterSize)
	copy(buf[0:4], FooterMagic)
	// buf[4:12] reserved, left zero.
	binary.LittleEndian.PutUint64(buf[12:20], f.OptFooterOffset)
	binary.LittleEndian.PutUint64(buf[20:28], f.OptFooterLen)
	n, err := w.Write(buf)
	return int64(n), err
}

// ParseFooter validates and decodes a FooterSize-byte buffer already read
// from the tail of an artifact.
func ParseFooter(buf []byte) (Footer, error) {
	if len(buf) != FooterSize {
		return Footer{}, errors.Reason("footer buffer is %(got)d bytes, want %(want)d").
			D("got", len(buf)).D("want", FooterSize).Err()
	}
	if string(buf[0:4]) != FooterMagic {
		return Footer{}, errors.Reason("bad footer magic: %(magic)q").D("magic", string(buf[0:4])).Err()
	}
	return Footer{
		OptFooterOffset: binary.LittleEndian.Uint64(buf[12:20]),
		OptFooterLen:    binary.LittleEndian.Uint64(buf[20:28]),
	}, nil
}

// ProbeIsCart reads up to four bytes from r and reports whether they equal
// HeaderMagic. It does not rewind r. Insufficient bytes yield false rather
// than an error.
func ProbeIsCart(r io.Reader) (bool, error) {
	buf := make([]byte, 4)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return false, nil
		}
		return false, err
	}
	return n == 4 && string(buf) == HeaderMagic, nil
}
