package cart

import (
	"io"

	"github.com/CybercentreCanada/cart-go/cartdata"
)

// readHeaderAndMeta decodes the fixed header and, if present, the
// encrypted header-metadata block from r. It returns the effective key
// the rest of the pipeline must use and the canonicalized header-metadata
// JSON (nil if the artifact carries none).
func readHeaderAndMeta(r io.Reader, privateKey []byte) (effectiveKey []byte, headerJSON []byte, err error) {
	header, herr := cartdata.ReadHeader(r)
	if herr != nil {
		return nil, nil, cartdata.Wrap(cartdata.Processing, herr, "reading fixed header")
	}

	effectiveKey, kerr := header.EffectiveKey(privateKey)
	if kerr != nil {
		return nil, nil, cartdata.Wrap(cartdata.Processing, kerr, "resolving decryption key")
	}

	if header.OptHeaderLen == 0 {
		return effectiveKey, nil, nil
	}

	buf := make([]byte, header.OptHeaderLen)
	if _, rerr := io.ReadFull(r, buf); rerr != nil {
		return nil, nil, cartdata.Wrap(cartdata.Processing, rerr, "reading header metadata")
	}
	if cerr := cartdata.CipherBytes(effectiveKey, buf); cerr != nil {
		return nil, nil, cartdata.Wrap(cartdata.Processing, cerr, "decrypting header metadata")
	}
	obj, jerr := jsonObject(buf)
	if jerr != nil {
		return nil, nil, cartdata.Wrap(cartdata.Processing, jerr, "parsing header metadata")
	}
	canon, jerr := canonicalJSON(obj)
	if jerr != nil {
		return nil, nil, cartdata.Wrap(cartdata.Processing, jerr, "re-encoding header metadata")
	}
	return effectiveKey, canon, nil
}

// decryptFooterMeta decrypts and parses an already-isolated footer-metadata
// block. A zero-length block means the artifact carries no footer
// metadata at all, and nil is returned.
func decryptFooterMeta(cipherBuf []byte, effectiveKey []byte) ([]byte, error) {
	if len(cipherBuf) == 0 {
		return nil, nil
	}
	plain := make([]byte, len(cipherBuf))
	copy(plain, cipherBuf)
	if err := cartdata.CipherBytes(effectiveKey, plain); err != nil {
		return nil, cartdata.Wrap(cartdata.Processing, err, "decrypting footer metadata")
	}
	obj, err := jsonObject(plain)
	if err != nil {
		return nil, cartdata.Wrap(cartdata.Processing, err, "parsing footer metadata")
	}
	return canonicalJSON(obj)
}
