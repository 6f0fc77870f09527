package cart

import (
	"io"

	"github.com/CybercentreCanada/cart-go/cartdata"
)

// seekableFooter locates the fixed footer and footer-metadata block of an
// artifact by seeking directly to the tail of r, instead of reading
// through the whole payload. It returns the byte offset where the payload
// region ends and the still-encrypted footer-metadata bytes (nil if the
// artifact carries none).
func seekableFooter(r io.ReadSeeker, payloadStart int64) (payloadEnd int64, footerMetaCipher []byte, err error) {
	end, serr := r.Seek(0, io.SeekEnd)
	if serr != nil {
		return 0, nil, cartdata.Wrap(cartdata.Processing, serr, "seeking to end of artifact")
	}
	if end-payloadStart < cartdata.FooterSize {
		return 0, nil, cartdata.Newf(cartdata.Processing, "truncated artifact: shorter than the fixed footer")
	}

	footerStart := end - cartdata.FooterSize
	if _, serr := r.Seek(footerStart, io.SeekStart); serr != nil {
		return 0, nil, cartdata.Wrap(cartdata.Processing, serr, "seeking to fixed footer")
	}
	footerBuf := make([]byte, cartdata.FooterSize)
	if _, rerr := io.ReadFull(r, footerBuf); rerr != nil {
		return 0, nil, cartdata.Wrap(cartdata.Processing, rerr, "reading fixed footer")
	}
	footer, perr := cartdata.ParseFooter(footerBuf)
	if perr != nil {
		return 0, nil, cartdata.Wrap(cartdata.Processing, perr, "parsing fixed footer")
	}

	optLen := int64(footer.OptFooterLen)
	if optLen > footerStart-payloadStart {
		return 0, nil, cartdata.Newf(cartdata.Processing, "footer metadata length exceeds artifact size")
	}
	payloadEnd = footerStart - optLen
	if optLen == 0 {
		return payloadEnd, nil, nil
	}

	if _, serr := r.Seek(payloadEnd, io.SeekStart); serr != nil {
		return 0, nil, cartdata.Wrap(cartdata.Processing, serr, "seeking to footer metadata")
	}
	footerMetaCipher = make([]byte, optLen)
	if _, rerr := io.ReadFull(r, footerMetaCipher); rerr != nil {
		return 0, nil, cartdata.Wrap(cartdata.Processing, rerr, "reading footer metadata")
	}
	return payloadEnd, footerMetaCipher, nil
}

// unpackSeekable decodes a seekable artifact in full, writing the decoded
// body to w and returning both metadata buffers.
func unpackSeekable(r io.ReadSeeker, w io.Writer, o unpackOptionData) (headerJSON, footerJSON []byte, err error) {
	effectiveKey, headerJSON, err := readHeaderAndMeta(r, o.privateKey)
	if err != nil {
		return nil, nil, err
	}
	payloadStart, serr := r.Seek(0, io.SeekCurrent)
	if serr != nil {
		return nil, nil, cartdata.Wrap(cartdata.Processing, serr, "locating payload start")
	}

	payloadEnd, footerMetaCipher, ferr := seekableFooter(r, payloadStart)
	if ferr != nil {
		return nil, nil, ferr
	}
	footerJSON, derr := decryptFooterMeta(footerMetaCipher, effectiveKey)
	if derr != nil {
		return nil, nil, derr
	}

	if _, serr := r.Seek(payloadStart, io.SeekStart); serr != nil {
		return nil, nil, cartdata.Wrap(cartdata.Processing, serr, "seeking back to payload")
	}
	cr, cerr := cartdata.NewCipherReader(io.LimitReader(r, payloadEnd-payloadStart), effectiveKey)
	if cerr != nil {
		return nil, nil, cartdata.Wrap(cartdata.Processing, cerr, "seeding payload cipher")
	}
	decomp, derr2 := cartdata.NewDecompressor(cr)
	if derr2 != nil {
		return nil, nil, cartdata.Wrap(cartdata.Processing, derr2, "opening compressed payload")
	}
	defer decomp.Close()

	if _, cerr := io.Copy(w, decomp); cerr != nil {
		return nil, nil, cartdata.Wrap(cartdata.Processing, cerr, "decompressing payload")
	}
	return headerJSON, footerJSON, nil
}

// metadataOnlySeekable reads only the header and footer metadata of a
// seekable artifact. The payload is never decompressed or materialized.
func metadataOnlySeekable(r io.ReadSeeker, o unpackOptionData) (headerJSON, footerJSON []byte, err error) {
	effectiveKey, headerJSON, err := readHeaderAndMeta(r, o.privateKey)
	if err != nil {
		return nil, nil, err
	}
	payloadStart, serr := r.Seek(0, io.SeekCurrent)
	if serr != nil {
		return nil, nil, cartdata.Wrap(cartdata.Processing, serr, "locating payload start")
	}

	_, footerMetaCipher, ferr := seekableFooter(r, payloadStart)
	if ferr != nil {
		return nil, nil, ferr
	}
	footerJSON, derr := decryptFooterMeta(footerMetaCipher, effectiveKey)
	if derr != nil {
		return nil, nil, derr
	}
	return headerJSON, footerJSON, nil
}
