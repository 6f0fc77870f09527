package cart

import (
	"bytes"
	"context"
	"testing"

	"github.com/CybercentreCanada/cart-go/cartdata"
	. "github.com/smartystreets/goconvey/convey"
)

func TestContextCancellation(t *testing.T) {
	t.Parallel()

	Convey("an already-canceled context is a processing error, not a panic", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		body := bytes.Repeat([]byte("data "), 100000)

		Convey("Pack", func() {
			var packed bytes.Buffer
			err := Pack(ctx, &packed, bytes.NewReader(body), nil)
			So(err, ShouldNotBeNil)
			ce, ok := cartdata.AsError(err)
			So(ok, ShouldBeTrue)
			So(ce.Kind, ShouldEqual, cartdata.Processing)
		})

		Convey("Unpack", func() {
			var packed bytes.Buffer
			So(Pack(context.Background(), &packed, bytes.NewReader(body), nil), ShouldBeNil)

			var out bytes.Buffer
			_, _, err := Unpack(ctx, &out, bytes.NewReader(packed.Bytes()))
			So(err, ShouldNotBeNil)
			ce, ok := cartdata.AsError(err)
			So(ok, ShouldBeTrue)
			So(ce.Kind, ShouldEqual, cartdata.Processing)
		})
	})
}
