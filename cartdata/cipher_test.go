package cartdata

import (
	"bytes"
	"io"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCipherBytes(t *testing.T) {
	t.Parallel()

	Convey("CipherBytes", t, func() {
		key := []byte("0123456789abcdef")

		Convey("encrypt then decrypt recovers the original", func() {
			plain := []byte("hello cart world")
			buf := append([]byte(nil), plain...)
			So(CipherBytes(key, buf), ShouldBeNil)
			So(buf, ShouldNotResemble, plain)

			So(CipherBytes(key, buf), ShouldBeNil)
			So(buf, ShouldResemble, plain)
		})

		Convey("same key produces the same keystream every call", func() {
			a := []byte("aaaaaaaaaaaaaaaa")
			b := append([]byte(nil), a...)
			So(CipherBytes(key, a), ShouldBeNil)
			So(CipherBytes(key, b), ShouldBeNil)
			So(a, ShouldResemble, b)
		})
	})
}

func TestCipherReaderWriter(t *testing.T) {
	t.Parallel()

	Convey("cipherWriter/cipherReader", t, func() {
		key := []byte("0123456789abcdef")
		plain := bytes.Repeat([]byte("the quick brown fox "), 100)

		var encoded bytes.Buffer
		cw, err := NewCipherWriter(&encoded, key)
		So(err, ShouldBeNil)
		_, err = cw.Write(plain)
		So(err, ShouldBeNil)
		So(encoded.Bytes(), ShouldNotResemble, plain)

		Convey("decodes back to the original", func() {
			cr, err := NewCipherReader(bytes.NewReader(encoded.Bytes()), key)
			So(err, ShouldBeNil)
			decoded, err := io.ReadAll(cr)
			So(err, ShouldBeNil)
			So(decoded, ShouldResemble, plain)
		})

		Convey("LastChunk retains the most recent raw read", func() {
			cr, err := NewCipherReader(bytes.NewReader(encoded.Bytes()), key)
			So(err, ShouldBeNil)
			buf := make([]byte, 16)
			n, rerr := cr.Read(buf)
			So(rerr, ShouldBeNil)
			So(n, ShouldEqual, 16)
			So(cr.LastChunk(), ShouldResemble, encoded.Bytes()[:16])
		})

		Convey("a trailing zero-byte read does not clobber LastChunk", func() {
			cr, err := NewCipherReader(bytes.NewReader(encoded.Bytes()[:16]), key)
			So(err, ShouldBeNil)
			buf := make([]byte, 32)
			_, _ = cr.Read(buf)
			first := cr.LastChunk()
			So(first, ShouldResemble, encoded.Bytes()[:16])

			n, rerr := cr.Read(buf)
			So(n, ShouldEqual, 0)
			So(rerr, ShouldEqual, io.EOF)
			So(cr.LastChunk(), ShouldResemble, first)
		})
	})
}
