package cart

import (
	"bufio"
	"context"
	"io"

	"github.com/CybercentreCanada/cart-go/cartdata"
	"go.chromium.org/luci/common/logging"
)

// Unpack decodes the CaRT artifact read from r, writing the decoded body
// to w, and returns the header-metadata and footer-metadata JSON buffers.
// r need not be seekable: Unpack reads it forward-only, exactly once, and
// locates the footer by reading all the way through the payload.
func Unpack(ctx context.Context, w io.Writer, r io.Reader, opts ...UnpackOption) (headerJSON, footerJSON []byte, err error) {
	o := buildUnpackOptions(opts)
	return unpackStream(ctx, w, r, o, false)
}

// unpackStream is the forward-only decode engine shared by Unpack and the
// stream-mode Metadata (which discards the body instead of writing it).
func unpackStream(ctx context.Context, w io.Writer, r io.Reader, o unpackOptionData, discardBody bool) (headerJSON, footerJSON []byte, err error) {
	effectiveKey, headerJSON, err := readHeaderAndMeta(r, o.privateKey)
	if err != nil {
		return nil, nil, err
	}

	cr, cerr := cartdata.NewCipherReader(r, effectiveKey)
	if cerr != nil {
		return nil, nil, cartdata.Wrap(cartdata.Processing, cerr, "seeding payload cipher")
	}
	// The decompressor pulls from br a byte at a time, so bufio only
	// refills an empty buffer: whatever is still buffered when the zlib
	// stream ends is a suffix of the raw chunk captured via cr.LastChunk.
	br := bufio.NewReaderSize(cr, o.chunkSize)
	decomp, derr := cartdata.NewDecompressor(br)
	if derr != nil {
		return nil, nil, cartdata.Wrap(cartdata.Processing, derr, "opening compressed payload")
	}
	defer decomp.Close()

	buf := make([]byte, o.chunkSize)
	for {
		if cerr := ctx.Err(); cerr != nil {
			return nil, nil, cartdata.Wrap(cartdata.Processing, cerr, "context canceled while unpacking body")
		}
		n, rerr := decomp.Read(buf)
		if n > 0 && !discardBody {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return nil, nil, cartdata.Wrap(cartdata.Processing, werr, "writing decoded body")
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, nil, cartdata.Wrap(cartdata.Processing, rerr, "decompressing payload")
		}
	}

	// The raw bytes left unread in br, followed by the rest of r, are the
	// footer-metadata block and the fixed footer.
	last := cr.LastChunk()
	unread := br.Buffered()
	if unread > len(last) {
		return nil, nil, cartdata.Newf(cartdata.Processing, "buffered trailing bytes exceed the captured chunk")
	}
	rest, rerr := io.ReadAll(r)
	if rerr != nil {
		return nil, nil, cartdata.Wrap(cartdata.Processing, rerr, "reading trailing footer")
	}
	tail := append(append([]byte(nil), last[len(last)-unread:]...), rest...)
	footerJSON, ferr := parseTrailingFooter(tail, effectiveKey)
	if ferr != nil {
		return nil, nil, ferr
	}
	return headerJSON, footerJSON, nil
}

// parseTrailingFooter locates and decrypts the footer-metadata block and
// fixed footer inside the raw trailing bytes that follow the compressed
// payload.
func parseTrailingFooter(last []byte, effectiveKey []byte) ([]byte, error) {
	if len(last) < cartdata.FooterSize {
		return nil, cartdata.Newf(cartdata.Processing, "truncated artifact: missing fixed footer")
	}
	footerStart := len(last) - cartdata.FooterSize
	footer, err := cartdata.ParseFooter(last[footerStart:])
	if err != nil {
		return nil, cartdata.Wrap(cartdata.Processing, err, "parsing fixed footer")
	}

	optLen := int(footer.OptFooterLen)
	if optLen > footerStart {
		return nil, cartdata.Newf(cartdata.Processing,
			"footer metadata (%(len)d bytes) exceeds captured trailing block", "len", optLen)
	}
	cipherBuf := last[footerStart-optLen : footerStart]
	return decryptFooterMeta(cipherBuf, effectiveKey)
}

// Metadata reads r's fixed header, decrypts the header-metadata block,
// then - since r is not assumed to be seekable - reads and discards the
// entire payload to reach the footer-metadata block. The decoded body is
// never materialized.
func Metadata(ctx context.Context, r io.Reader, opts ...UnpackOption) (headerJSON, footerJSON []byte, err error) {
	o := buildUnpackOptions(opts)
	logging.Debugf(ctx, "cart: reading metadata from stream; payload will be decoded and discarded")
	return unpackStream(ctx, io.Discard, r, o, true)
}
