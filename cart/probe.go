package cart

import (
	"io"

	"github.com/CybercentreCanada/cart-go/cartdata"
)

// IsCart reports whether the first four bytes read from r are the CaRT
// magic. It does not rewind r afterwards.
func IsCart(r io.Reader) (bool, error) {
	ok, err := cartdata.ProbeIsCart(r)
	if err != nil {
		return false, cartdata.Wrap(cartdata.Processing, err, "probing for cart magic")
	}
	return ok, nil
}

// IsCartData reports whether data begins with the CaRT magic.
func IsCartData(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == cartdata.HeaderMagic
}

// IsFileCart reports whether the file at path begins with the CaRT magic.
// The file handle it opens internally is always closed before returning,
// on every exit path.
func IsFileCart(path string) (bool, error) {
	f, err := openInput(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	return IsCart(f)
}
