package cartdata

import (
	"crypto/rc4"
	"io"

	"go.chromium.org/luci/common/errors"
)

// NewCipher seeds a fresh RC4 keystream from key. Every encrypted block in
// a CaRT artifact (header-metadata, payload, footer-metadata) is ciphered
// under its own call to NewCipher: keystream state is never shared across
// blocks, to stay bit-compatible with the reference implementation.
func NewCipher(key []byte) (*rc4.Cipher, error) {
	c, err := rc4.NewCipher(key)
	if err != nil {
		return nil, errors.Annotate(err).Reason("bad rc4 key").Err()
	}
	return c, nil
}

// CipherBytes XORs buf in place against a fresh keystream seeded from key.
// It is used for the two whole-buffer metadata blocks, where the input is
// already fully materialized.
func CipherBytes(key, buf []byte) error {
	c, err := NewCipher(key)
	if err != nil {
		return err
	}
	c.XORKeyStream(buf, buf)
	return nil
}

// cipherReader applies an RC4 keystream to every byte read from the
// wrapped reader. It retains the most recent raw chunk it pulled from the
// underlying stream, so callers that overread past the logical end of a
// stream (to pick up trailing footer bytes) can recover what was read.
type cipherReader struct {
	r      io.Reader
	cipher *rc4.Cipher
	last   []byte
}

// NewCipherReader wraps r so that every byte read through it is XORed
// against a fresh keystream seeded from key.
func NewCipherReader(r io.Reader, key []byte) (*cipherReader, error) {
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &cipherReader{r: r, cipher: c}, nil
}

func (c *cipherReader) Read(buf []byte) (int, error) {
	raw := make([]byte, len(buf))
	n, err := c.r.Read(raw)
	if n > 0 {
		raw = raw[:n]
		c.cipher.XORKeyStream(buf[:n], raw)
		c.last = raw
	}
	return n, err
}

// LastChunk returns the most recent raw (still-ciphertext) chunk pulled
// from the underlying reader. This lets the payload-decoding pipeline
// recover whatever footer bytes were swept up in the decompressor's final
// read, without needing the underlying stream to be seekable.
func (c *cipherReader) LastChunk() []byte { return c.last }

// cipherWriter applies an RC4 keystream to every byte written to it before
// forwarding the result to the wrapped writer.
type cipherWriter struct {
	w      io.Writer
	cipher *rc4.Cipher
	buf    []byte
}

// NewCipherWriter wraps w so that every byte written through it is XORed
// against a fresh keystream seeded from key before being forwarded to w.
func NewCipherWriter(w io.Writer, key []byte) (*cipherWriter, error) {
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &cipherWriter{w: w, cipher: c, buf: make([]byte, BlockSize)}, nil
}

func (c *cipherWriter) Write(buf []byte) (int, error) {
	if cap(c.buf) < len(buf) {
		c.buf = make([]byte, len(buf))
	}
	out := c.buf[:len(buf)]
	c.cipher.XORKeyStream(out, buf)
	if _, err := c.w.Write(out); err != nil {
		return 0, err
	}
	return len(buf), nil
}
