package cartdata

import (
	"bytes"
	"io"
	"testing"

	. "go.chromium.org/luci/common/testing/assertions"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHeader(t *testing.T) {
	t.Parallel()

	Convey("Header", t, func() {
		Convey("round trip", func() {
			h := Header{ActiveKey: DefaultKey, OptHeaderLen: 123}
			buf := &bytes.Buffer{}
			n, err := h.WriteTo(buf)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, HeaderSize)
			So(buf.Len(), ShouldEqual, HeaderSize)

			got, err := ReadHeader(buf)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, h)
		})

		Convey("bad magic", func() {
			buf := &bytes.Buffer{}
			h := Header{ActiveKey: DefaultKey}
			_, err := h.WriteTo(buf)
			So(err, ShouldBeNil)
			raw := buf.Bytes()
			copy(raw[0:4], "PK\x03\x04")
			_, err = ReadHeader(bytes.NewReader(raw))
			So(err, ShouldErrLike, "bad header magic")
		})

		Convey("bad version", func() {
			buf := &bytes.Buffer{}
			h := Header{ActiveKey: DefaultKey}
			_, err := h.WriteTo(buf)
			So(err, ShouldBeNil)
			raw := buf.Bytes()
			raw[4] = 9
			_, err = ReadHeader(bytes.NewReader(raw))
			So(err, ShouldErrLike, "unsupported format version")
		})

		Convey("short read", func() {
			_, err := ReadHeader(bytes.NewReader([]byte{'C', 'A'}))
			So(err, ShouldErrLike, io.ErrUnexpectedEOF)
		})

		Convey("EffectiveKey", func() {
			Convey("nonzero active key wins", func() {
				h := Header{ActiveKey: DefaultKey}
				key, err := h.EffectiveKey(nil)
				So(err, ShouldBeNil)
				So(key, ShouldResemble, DefaultKey[:])
			})

			Convey("zero active key falls back to private key", func() {
				h := Header{ActiveKey: ZeroKey}
				key, err := h.EffectiveKey([]byte("0123456789abcdef"))
				So(err, ShouldBeNil)
				So(key, ShouldResemble, []byte("0123456789abcdef"))
			})

			Convey("zero active key with no private key is an error", func() {
				h := Header{ActiveKey: ZeroKey}
				_, err := h.EffectiveKey(nil)
				So(err, ShouldErrLike, "no private key")
			})
		})
	})
}

func TestFooter(t *testing.T) {
	t.Parallel()

	Convey("Footer", t, func() {
		Convey("round trip", func() {
			f := Footer{OptFooterOffset: 42, OptFooterLen: 7}
			buf := &bytes.Buffer{}
			n, err := f.WriteTo(buf)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, FooterSize)

			got, err := ParseFooter(buf.Bytes())
			So(err, ShouldBeNil)
			So(got, ShouldResemble, f)
		})

		Convey("wrong size", func() {
			_, err := ParseFooter(make([]byte, FooterSize-1))
			So(err, ShouldErrLike, "footer buffer is")
		})

		Convey("bad magic", func() {
			buf := make([]byte, FooterSize)
			copy(buf, "XXXX")
			_, err := ParseFooter(buf)
			So(err, ShouldErrLike, "bad footer magic")
		})

		Convey("is 28 bytes, not the spec's literal 32", func() {
			So(FooterSize, ShouldEqual, 28)
		})
	})
}

func TestProbeIsCart(t *testing.T) {
	t.Parallel()

	Convey("ProbeIsCart", t, func() {
		Convey("matching magic", func() {
			ok, err := ProbeIsCart(bytes.NewReader([]byte("CART stuff after")))
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})

		Convey("non-matching magic", func() {
			ok, err := ProbeIsCart(bytes.NewReader([]byte("PK\x03\x04")))
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("short read yields false, not an error", func() {
			ok, err := ProbeIsCart(bytes.NewReader([]byte("CA")))
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("empty reader yields false, not an error", func() {
			ok, err := ProbeIsCart(bytes.NewReader(nil))
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})
	})
}
