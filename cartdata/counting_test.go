package cartdata

import (
	"bytes"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCountingWriter(t *testing.T) {
	t.Parallel()

	Convey("CountingWriter", t, func() {
		var buf bytes.Buffer
		cw := &CountingWriter{Writer: &buf}

		n, err := cw.Write([]byte("hello"))
		So(err, ShouldBeNil)
		So(n, ShouldEqual, 5)
		So(cw.Count, ShouldEqual, 5)

		_, err = cw.Write([]byte(" world"))
		So(err, ShouldBeNil)
		So(cw.Count, ShouldEqual, 11)
		So(buf.String(), ShouldEqual, "hello world")
	})
}
