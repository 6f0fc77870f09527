package cart

import (
	"bytes"
	"context"
	"io"

	"github.com/CybercentreCanada/cart-go/cartdata"
)

func resolvePackKey(privateKey []byte) (active [cartdata.KeySize]byte, effective []byte, err *cartdata.Error) {
	if privateKey == nil {
		return cartdata.DefaultKey, cartdata.DefaultKey[:], nil
	}
	if len(privateKey) != cartdata.KeySize {
		return active, nil, cartdata.Newf(cartdata.Processing,
			"private key must be %(want)d bytes, got %(got)d", "want", cartdata.KeySize, "got", len(privateKey))
	}
	return cartdata.ZeroKey, privateKey, nil
}

// Pack reads the entirety of r, encodes it as a CaRT artifact, and writes
// that artifact to w. headerMetaJSON is either nil/empty or a compact or
// pretty JSON object; anything else is a BadJSON error and nothing is
// written to w.
func Pack(ctx context.Context, w io.Writer, r io.Reader, headerMetaJSON []byte, opts ...PackOption) error {
	o := buildPackOptions(opts)
	return packStream(ctx, w, r, headerMetaJSON, o)
}

func packStream(ctx context.Context, w io.Writer, r io.Reader, headerMetaJSON []byte, o packOptionData) error {
	headerObj, err := jsonObject(headerMetaJSON)
	if err != nil {
		return err
	}
	footerObj, err := jsonObject(o.footerMeta)
	if err != nil {
		return err
	}

	activeKey, effectiveKey, kerr := resolvePackKey(o.privateKey)
	if kerr != nil {
		return kerr
	}

	var headerCipher []byte
	if headerObj != nil {
		plain, jerr := canonicalJSON(headerObj)
		if jerr != nil {
			return cartdata.Wrap(cartdata.BadJSON, jerr, "encoding header metadata")
		}
		if cerr := cartdata.CipherBytes(effectiveKey, plain); cerr != nil {
			return cartdata.Wrap(cartdata.Processing, cerr, "encrypting header metadata")
		}
		headerCipher = plain
	}

	sink := &cartdata.CountingWriter{Writer: w}

	header := cartdata.Header{ActiveKey: activeKey, OptHeaderLen: uint64(len(headerCipher))}
	if _, werr := header.WriteTo(sink); werr != nil {
		return cartdata.Wrap(cartdata.Processing, werr, "writing fixed header")
	}
	if headerCipher != nil {
		if _, werr := sink.Write(headerCipher); werr != nil {
			return cartdata.Wrap(cartdata.Processing, werr, "writing header metadata")
		}
	}

	digesters := cartdata.NewDigesters(o.schemes)

	cw, cerr := cartdata.NewCipherWriter(sink, effectiveKey)
	if cerr != nil {
		return cartdata.Wrap(cartdata.Processing, cerr, "seeding payload cipher")
	}
	comp := cartdata.NewCompressor(cw)

	buf := make([]byte, cartdata.BlockSize)
	for {
		if cerr := ctx.Err(); cerr != nil {
			return cartdata.Wrap(cartdata.Processing, cerr, "context canceled while packing body")
		}
		n, rerr := r.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			for _, d := range digesters {
				d.Write(chunk)
			}
			if _, werr := comp.Write(chunk); werr != nil {
				return cartdata.Wrap(cartdata.Processing, werr, "compressing body")
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return cartdata.Wrap(cartdata.Processing, rerr, "reading body")
		}
	}
	if cerr := comp.Close(); cerr != nil {
		return cartdata.Wrap(cartdata.Processing, cerr, "flushing compressor")
	}

	mergedFooter, merr := mergeComputedDigests(footerObj, digesters)
	if merr != nil {
		return cartdata.Wrap(cartdata.Processing, merr, "merging footer digests")
	}

	var footerPos, footerLen uint64
	if mergedFooter != nil {
		footerPos = sink.Count
		plain, jerr := canonicalJSON(mergedFooter)
		if jerr != nil {
			return cartdata.Wrap(cartdata.Processing, jerr, "encoding footer metadata")
		}
		if cerr := cartdata.CipherBytes(effectiveKey, plain); cerr != nil {
			return cartdata.Wrap(cartdata.Processing, cerr, "encrypting footer metadata")
		}
		footerLen = uint64(len(plain))
		if _, werr := sink.Write(plain); werr != nil {
			return cartdata.Wrap(cartdata.Processing, werr, "writing footer metadata")
		}
	}

	footer := cartdata.Footer{OptFooterOffset: footerPos, OptFooterLen: footerLen}
	if _, werr := footer.WriteTo(sink); werr != nil {
		return cartdata.Wrap(cartdata.Processing, werr, "writing fixed footer")
	}
	return nil
}

// PackFile encodes the file at srcPath into a new CaRT artifact written to
// dstPath, which must not already exist.
func PackFile(ctx context.Context, srcPath, dstPath string, headerMetaJSON []byte, opts ...PackOption) error {
	in, err := openInput(srcPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := createOutput(dstPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if perr := Pack(ctx, out, in, headerMetaJSON, opts...); perr != nil {
		return perr
	}
	return nil
}

// PackData encodes data into a CaRT artifact and returns it as a freshly
// allocated byte slice.
func PackData(ctx context.Context, data []byte, headerMetaJSON []byte, opts ...PackOption) ([]byte, error) {
	var out bytes.Buffer
	if err := Pack(ctx, &out, bytes.NewReader(data), headerMetaJSON, opts...); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
