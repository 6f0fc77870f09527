// Package cart implements the CaRT ("Compressed and RC4 Transport")
// container codec: it packs a plaintext body and optional JSON metadata
// into a single encrypted, compressed artifact, and unpacks that artifact
// back into its original body and metadata.
//
// Three ingestion modes are offered for every operation:
//
//   - path mode (PackFile, UnpackFile, IsFileCart, FileMetadata) opens and
//     closes its own file handles, and can seek to peek at the footer
//     without decompressing the payload.
//   - stream mode (Pack, Unpack, IsCart, Metadata) works over any
//     io.Reader/io.Writer the caller already has open, and never assumes
//     it can seek.
//   - buffer mode (PackData, UnpackData, IsCartData, DataMetadata) works
//     entirely over in-memory byte slices.
//
// The wire format, key handling, and pipeline ordering are specified
// precisely enough to interoperate with an existing non-Go reference
// implementation; see the cartdata package for the framing primitives
// that make that possible.
package cart
