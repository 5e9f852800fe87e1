package wire

import (
	"github.com/sviezypan/protocodec/schema"
)

// Streaming adapters. The encoder side is stateless: every value
// produces a self-contained frame. The decoder side owns a byte buffer
// and re-attempts a decode of the whole buffer whenever more bytes
// arrive. A chunk boundary inside a key, a varint, a length prefix or a
// length-delimited payload is buffered until the rest arrives; a
// boundary that falls exactly between two fields completes the value
// early when the bytes buffered so far already decode, and the bytes
// that follow then decode as a separate value.

// StreamEncoder encodes a stream of values of one schema.
type StreamEncoder struct {
	schema *schema.Schema
}

// NewStreamEncoder creates a streaming encoder for the given schema.
func NewStreamEncoder(s *schema.Schema) *StreamEncoder {
	return &StreamEncoder{schema: s}
}

// Feed encodes one value and returns its complete bytes.
func (se *StreamEncoder) Feed(value interface{}) ([]byte, error) {
	return EncodeValue(se.schema, value)
}

// StreamDecoder decodes a stream of byte chunks into values of one
// schema. A StreamDecoder is a single-owner object: concurrent use
// from multiple goroutines is undefined.
type StreamDecoder struct {
	schema *schema.Schema
	buf    []byte
	err    error
}

// NewStreamDecoder creates a streaming decoder for the given schema.
func NewStreamDecoder(s *schema.Schema) *StreamDecoder {
	return &StreamDecoder{schema: s}
}

// Feed appends a chunk to the internal buffer and returns the values
// completed by it. A decode attempt that fails with truncation leaves
// the buffered bytes in place and waits for more input; any other
// failure terminates the stream and is returned from every subsequent
// call.
func (sd *StreamDecoder) Feed(chunk []byte) ([]interface{}, error) {
	if sd.err != nil {
		return nil, sd.err
	}

	sd.buf = append(sd.buf, chunk...)
	if len(sd.buf) == 0 {
		return nil, nil
	}

	d := NewDecoder(sd.buf)
	v, err := d.DecodeValue(sd.schema)
	if err != nil {
		if IsTruncation(err) {
			// partial frame: keep the buffer and wait for more bytes
			return nil, nil
		}
		sd.err = err
		return nil, err
	}

	sd.buf = sd.buf[:0]
	return []interface{}{v}, nil
}

// Finish signals end of input. A non-empty buffer at this point is a
// partial frame and fails with unexpected end of chunk.
func (sd *StreamDecoder) Finish() error {
	if sd.err != nil {
		return sd.err
	}
	if len(sd.buf) > 0 {
		sd.err = truncationError()
		return sd.err
	}
	return nil
}
