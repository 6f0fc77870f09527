package cart

import (
	"bytes"
)

// UnpackData decodes a CaRT artifact held entirely in memory and returns
// the decoded body alongside the header and footer metadata JSON buffers.
func UnpackData(data []byte, opts ...UnpackOption) (body, headerJSON, footerJSON []byte, err error) {
	r := bytes.NewReader(data)
	var out bytes.Buffer
	o := buildUnpackOptions(opts)
	headerJSON, footerJSON, err = unpackSeekable(r, &out, o)
	if err != nil {
		return nil, nil, nil, err
	}
	return out.Bytes(), headerJSON, footerJSON, nil
}

// DataMetadata reads only the header and footer metadata of a CaRT
// artifact held entirely in memory; the decoded body is never
// materialized.
func DataMetadata(data []byte, opts ...UnpackOption) (headerJSON, footerJSON []byte, err error) {
	r := bytes.NewReader(data)
	o := buildUnpackOptions(opts)
	return metadataOnlySeekable(r, o)
}
