package cart

import (
	"context"

	"go.chromium.org/luci/common/logging"
)

// UnpackFile decodes the CaRT artifact at srcPath and writes the decoded
// body to dstPath, which must not already exist. It returns the header
// and footer metadata JSON buffers.
func UnpackFile(ctx context.Context, srcPath, dstPath string, opts ...UnpackOption) (headerJSON, footerJSON []byte, err error) {
	in, err := openSeekableInput(srcPath)
	if err != nil {
		return nil, nil, err
	}
	defer in.Close()

	out, err := createOutput(dstPath)
	if err != nil {
		return nil, nil, err
	}
	defer out.Close()

	o := buildUnpackOptions(opts)
	headerJSON, footerJSON, err = unpackSeekable(in, out, o)
	if err != nil {
		logging.Errorf(ctx, "cart: unpacking %q failed: %s", srcPath, err)
		return nil, nil, err
	}
	return headerJSON, footerJSON, nil
}

// FileMetadata reads only the header and footer metadata of the artifact
// at path; the decoded body is never materialized.
func FileMetadata(path string, opts ...UnpackOption) (headerJSON, footerJSON []byte, err error) {
	f, err := openSeekableInput(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	o := buildUnpackOptions(opts)
	return metadataOnlySeekable(f, o)
}
