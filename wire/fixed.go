package wire

import (
	"encoding/binary"
	"math"
)

// Fixed-width primitives: little-endian four- and eight-byte payloads
// and their IEEE 754 float views.

// EncodeFixed32 appends a 32-bit fixed-width value.
func (e *Encoder) EncodeFixed32(value uint32) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, value)
}

// EncodeFixed64 appends a 64-bit fixed-width value.
func (e *Encoder) EncodeFixed64(value uint64) {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, value)
}

// EncodeFloat32 appends a 32-bit float as fixed32.
func (e *Encoder) EncodeFloat32(v float32) {
	e.EncodeFixed32(math.Float32bits(v))
}

// EncodeFloat64 appends a 64-bit float as fixed64.
func (e *Encoder) EncodeFloat64(v float64) {
	e.EncodeFixed64(math.Float64bits(v))
}

// DecodeFixed32 decodes a 32-bit fixed-width value.
func (d *Decoder) DecodeFixed32() (uint32, error) {
	if d.pos+4 > len(d.buf) {
		return 0, truncationError()
	}

	value := binary.LittleEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return value, nil
}

// DecodeFixed64 decodes a 64-bit fixed-width value.
func (d *Decoder) DecodeFixed64() (uint64, error) {
	if d.pos+8 > len(d.buf) {
		return 0, truncationError()
	}

	value := binary.LittleEndian.Uint64(d.buf[d.pos:])
	d.pos += 8
	return value, nil
}

// DecodeFloat32 decodes a 32-bit float from fixed32 data.
func (d *Decoder) DecodeFloat32() (float32, error) {
	v, err := d.DecodeFixed32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// DecodeFloat64 decodes a 64-bit float from fixed64 data.
func (d *Decoder) DecodeFloat64() (float64, error) {
	v, err := d.DecodeFixed64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}
