package cart

import (
	"os"

	"github.com/CybercentreCanada/cart-go/cartdata"
)

// openInput opens path for reading, mapping failure to InputOpenFailed so
// callers (and, eventually, a C-ABI shim) can distinguish "couldn't read
// the source" from "couldn't write the destination".
func openInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cartdata.Wrap(cartdata.InputOpenFailed, err, "opening input file")
	}
	return f, nil
}

// createOutput creates path for writing, failing if it already exists -
// a pack or unpack operation never silently clobbers an existing
// artifact or decoded body.
func createOutput(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, cartdata.Wrap(cartdata.OutputOpenFailed, err, "creating output file")
	}
	return f, nil
}

// openSeekableInput opens path for reading and seeking, used by the
// path-mode metadata-only and full-unpack entry points to peek at the
// footer without decompressing the payload.
func openSeekableInput(path string) (*os.File, error) {
	return openInput(path)
}
