package cartdata

import (
	"io"

	"github.com/klauspost/compress/zlib"
	"go.chromium.org/luci/common/errors"
)

// BlockSize is the per-chunk ceiling used when streaming the plaintext
// body through the digester tee, compressor, and cipher. It bounds the
// codec's memory use independent of the overall body size.
const BlockSize = 64 * 1024

// NewCompressor wraps w in a zlib-wrapped DEFLATE encoder at the default
// compression level, default window, and default memory level, matching
// the reference implementation's zlib stream exactly. Writes pushed
// through the returned WriteCloser are compressed incrementally; Close
// flushes the final DEFLATE block.
func NewCompressor(w io.Writer) io.WriteCloser {
	return zlib.NewWriter(w)
}

// NewDecompressor wraps r in a zlib-wrapped DEFLATE decoder. Reads pulled
// through the returned ReadCloser are decompressed incrementally.
func NewDecompressor(r io.Reader) (io.ReadCloser, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, errors.Annotate(err).Reason("opening zlib stream").Err()
	}
	return zr, nil
}
