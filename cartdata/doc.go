// Package cartdata implements the low level framing primitives of the CaRT
// container format: the fixed header and footer, the RC4 passthrough
// cipher, the zlib-wrapped compressor, and the digester registry used to
// compute the advisory footer hashes.
//
// None of the types here know how to drive a full pack or unpack pipeline;
// that orchestration lives in the parent cart package. cartdata only knows
// how to read and write the pieces that make up a CaRT artifact.
package cartdata
