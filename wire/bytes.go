package wire

// Length-delimited primitives: a varint byte count followed by that
// many payload bytes. Used for strings, binary bytes, nested records,
// packed sequences, and the textual temporal and big-number payloads.

// EncodeBytes appends a length-delimited byte array.
func (e *Encoder) EncodeBytes(data []byte) {
	e.EncodeVarint(uint64(len(data)))
	e.buf = append(e.buf, data...)
}

// EncodeString appends a length-delimited string.
func (e *Encoder) EncodeString(s string) {
	e.EncodeVarint(uint64(len(s)))
	e.buf = append(e.buf, s...)
}

// DecodeBytes decodes a length-delimited byte array. The data is copied
// so the result does not alias the input buffer.
func (d *Decoder) DecodeBytes() ([]byte, error) {
	length, err := d.DecodeVarint()
	if err != nil {
		return nil, err
	}

	if length > uint64(len(d.buf)-d.pos) {
		return nil, truncationError()
	}

	data := make([]byte, length)
	copy(data, d.buf[d.pos:d.pos+int(length)])
	d.pos += int(length)

	return data, nil
}

// DecodeString decodes a length-delimited string and validates it is
// well-formed UTF-8.
func (d *Decoder) DecodeString() (string, error) {
	data, err := d.DecodeBytes()
	if err != nil {
		return "", err
	}
	return decodeUTF8(data)
}

// SkipBytes skips over a length-delimited byte array.
func (d *Decoder) SkipBytes() error {
	length, err := d.DecodeVarint()
	if err != nil {
		return err
	}

	if length > uint64(len(d.buf)-d.pos) {
		return truncationError()
	}

	d.pos += int(length)
	return nil
}

// BytesSize returns the size needed to encode the given bytes
func BytesSize(data []byte) int {
	return VarintSize(uint64(len(data))) + len(data)
}

// StringSize returns the size needed to encode the given string
func StringSize(s string) int {
	return VarintSize(uint64(len(s))) + len(s)
}
