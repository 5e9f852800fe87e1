package wire

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind categorises codec errors per the failure taxonomy.
type ErrorKind string

const (
	KindKeyDecode      ErrorKind = "key"
	KindTruncation     ErrorKind = "truncation"
	KindVarint         ErrorKind = "varint"
	KindPayload        ErrorKind = "payload"
	KindStructural     ErrorKind = "structural"
	KindTransformation ErrorKind = "transformation"
	KindSchemaFail     ErrorKind = "schemaFail"
)

// Leaf error conditions. Wrapped inside CodecError so callers can match
// with errors.Is regardless of where in the schema walk they surfaced.
var (
	ErrUnknownWireType        = errors.New("unknown wire type")
	ErrInvalidFieldNumber     = errors.New("invalid field number")
	ErrUnexpectedEndOfChunk   = errors.New("unexpected end of chunk")
	ErrNoBytesToDecode        = errors.New("no bytes to decode")
	ErrVarintTooLong          = errors.New("varint too long")
	ErrIntegerOverflow        = errors.New("integer overflow")
	ErrMalformedUTF8          = errors.New("malformed utf8")
	ErrMissingEnumerationCase = errors.New("missing enumeration case")
)

// CodecError is the error type every encode or decode failure is
// reported through. It carries the taxonomy kind, the dotted path of
// record fields leading to the failure, and the underlying cause.
type CodecError struct {
	Kind      ErrorKind
	FieldPath []string
	Err       error
}

// Error implements the error interface
func (e *CodecError) Error() string {
	if len(e.FieldPath) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("error at field path '%s': %v", strings.Join(e.FieldPath, "."), e.Err)
}

// Unwrap returns the underlying error
func (e *CodecError) Unwrap() error {
	return e.Err
}

// KindOf extracts the taxonomy kind of an error, if it is a CodecError.
func KindOf(err error) (ErrorKind, bool) {
	var ce *CodecError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}

// IsTruncation reports whether err indicates that the input ended in
// the middle of a frame, i.e. more bytes could complete the decode.
func IsTruncation(err error) bool {
	return errors.Is(err, ErrUnexpectedEndOfChunk)
}

func keyDecodeError(cause error) error {
	return &CodecError{Kind: KindKeyDecode, Err: fmt.Errorf("failed decoding key: %w", cause)}
}

func truncationError() error {
	return &CodecError{Kind: KindTruncation, Err: ErrUnexpectedEndOfChunk}
}

func varintError() error {
	return &CodecError{Kind: KindVarint, Err: ErrVarintTooLong}
}

func payloadError(format string, args ...interface{}) error {
	return &CodecError{Kind: KindPayload, Err: fmt.Errorf(format, args...)}
}

func overflowError(kind string, value int64) error {
	return &CodecError{Kind: KindPayload, Err: fmt.Errorf("%w: %d does not fit in %s", ErrIntegerOverflow, value, kind)}
}

func structuralError(cause error) error {
	return &CodecError{Kind: KindStructural, Err: cause}
}

func transformationError(cause error) error {
	return &CodecError{Kind: KindTransformation, Err: cause}
}

func schemaFailError(message string) error {
	return &CodecError{Kind: KindSchemaFail, Err: errors.New(message)}
}

// wrapWithField wraps an error with a field name, building the dotted
// field path as the record recursion unwinds.
func wrapWithField(err error, fieldName string) error {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*CodecError); ok {
		return &CodecError{
			Kind:      ce.Kind,
			FieldPath: append([]string{fieldName}, ce.FieldPath...),
			Err:       ce.Err,
		}
	}
	return &CodecError{
		Kind:      KindPayload,
		FieldPath: []string{fieldName},
		Err:       err,
	}
}
