package cartdata

import "io"

// CountingWriter wraps an io.Writer and tracks the total number of bytes
// successfully written through it. The framing codec uses it to learn the
// absolute offset of the footer-metadata block as it streams the artifact
// out, without ever buffering the whole artifact in memory.
type CountingWriter struct {
	io.Writer
	Count uint64
}

func (c *CountingWriter) Write(p []byte) (int, error) {
	n, err := c.Writer.Write(p)
	c.Count += uint64(n)
	return n, err
}
