package cart

import "github.com/CybercentreCanada/cart-go/cartdata"

type packOptionData struct {
	privateKey []byte
	footerMeta []byte
	schemes    []cartdata.Scheme
}

// PackOption functions can be supplied to any of the Pack* entry points.
type PackOption func(*packOptionData)

// WithPrivateKey causes the artifact to be encrypted under key instead of
// the default public key. key must be 16 bytes. The header's active-key
// field is written as all zeros, so decoding requires the caller to
// supply key again, out of band, via the paired UnpackOption WithKey.
func WithPrivateKey(key []byte) PackOption {
	return func(o *packOptionData) { o.privateKey = key }
}

// WithFooterMetadata supplies caller footer metadata to merge with the
// auto-computed digests. It must be an empty/absent value or a JSON
// object; computed digest keys (md5, sha1, sha256, length, ...) always
// override a caller-supplied value of the same key.
func WithFooterMetadata(footerMetaJSON []byte) PackOption {
	return func(o *packOptionData) { o.footerMeta = footerMetaJSON }
}

// WithDigestSchemes overrides the default digester set (md5, sha1,
// sha256, length) used to compute footer metadata. Passing no schemes at
// all disables footer digesting; the footer block is then present only if
// WithFooterMetadata supplied one.
func WithDigestSchemes(schemes ...cartdata.Scheme) PackOption {
	return func(o *packOptionData) { o.schemes = schemes }
}

func buildPackOptions(opts []PackOption) packOptionData {
	o := packOptionData{schemes: cartdata.DefaultSchemes()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type unpackOptionData struct {
	privateKey []byte
	chunkSize  int
}

// UnpackOption functions can be supplied to any of the Unpack*/Metadata*
// entry points.
type UnpackOption func(*unpackOptionData)

// WithKey supplies the private key an artifact was packed under. It is
// only consulted when the artifact's header carries a zero active key;
// otherwise the key embedded in the header (the default public key) is
// used and WithKey is ignored.
func WithKey(key []byte) UnpackOption {
	return func(o *unpackOptionData) { o.privateKey = key }
}

// WithChunkSize overrides the per-read buffer size used while streaming
// the payload through the decompressor. Default is cartdata.BlockSize.
func WithChunkSize(n int) UnpackOption {
	return func(o *unpackOptionData) { o.chunkSize = n }
}

func buildUnpackOptions(opts []UnpackOption) unpackOptionData {
	o := unpackOptionData{chunkSize: cartdata.BlockSize}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
