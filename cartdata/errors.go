package cartdata

import (
	"fmt"

	"go.chromium.org/luci/common/errors"
)

// ErrorKind is a stable, small taxonomy of failure classes. The numeric
// values match the C-ABI error codes from the format specification, so a
// future shim can marshal a *Error without re-deriving a mapping. Code 4
// is intentionally unused; it is reserved by the original numbering.
type ErrorKind uint32

const (
	// NoError indicates success. Operations that return a *Error never
	// return one with this kind; it exists so the numeric space matches
	// the C-ABI exactly.
	NoError ErrorKind = 0
	// BadArgument means a string argument was not valid UTF-8, or was
	// otherwise unparseable.
	BadArgument ErrorKind = 1
	// InputOpenFailed means the source (path, handle) could not be opened.
	InputOpenFailed ErrorKind = 2
	// OutputOpenFailed means the sink (path, handle) could not be opened.
	OutputOpenFailed ErrorKind = 3
	// BadJSON means caller-supplied metadata was not a JSON object.
	BadJSON ErrorKind = 5
	// Processing covers mid-stream I/O failure, truncation, bad magic,
	// unsupported version, decompression failure, and cipher
	// misconfiguration.
	Processing ErrorKind = 6
	// NullArgument means a required argument was unexpectedly nil/null.
	NullArgument ErrorKind = 7
)

func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return "no error"
	case BadArgument:
		return "bad argument"
	case InputOpenFailed:
		return "input open failed"
	case OutputOpenFailed:
		return "output open failed"
	case BadJSON:
		return "bad json argument"
	case Processing:
		return "processing failure"
	case NullArgument:
		return "unexpected null argument"
	default:
		return fmt.Sprintf("unknown error kind (%d)", uint32(k))
	}
}

// Error is the error type returned from the exported cart operations.
// Lower level cartdata primitives such as ReadHeader, ParseFooter and
// NewCipher return plain annotated errors, which cart wraps into an Error.
// It carries a stable Kind alongside an annotated, human readable cause.
type Error struct {
	Kind  ErrorKind
	cause error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.cause)
}

// Unwrap lets errors.Is/errors.As see through to the annotated cause chain.
func (e *Error) Unwrap() error { return e.cause }

// Wrap builds a *Error of the given kind from a lower level cause,
// annotating it with reason for a readable message. If err is nil, Wrap
// returns nil.
func Wrap(kind ErrorKind, err error, reason string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, cause: errors.Annotate(err).Reason(reason).Err()}
}

// Newf builds a *Error of the given kind directly from a reason string,
// with %(name)s-style substitutions handled by errors.Reason.
func Newf(kind ErrorKind, reason string, kv ...interface{}) *Error {
	r := errors.Reason(reason)
	for i := 0; i+1 < len(kv); i += 2 {
		name, _ := kv[i].(string)
		r = r.D(name, kv[i+1])
	}
	return &Error{Kind: kind, cause: r.Err()}
}

// AsError reports whether err is a *Error, and returns it if so.
func AsError(err error) (*Error, bool) {
	ce, ok := err.(*Error)
	return ce, ok
}
