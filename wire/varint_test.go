package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestVarint_RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 150, 270, 300, 16383, 16384, 86942, 1<<32 - 1, 1 << 32, 1<<63 - 1, 1<<64 - 1}

	for _, v := range values {
		e := NewEncoder()
		e.EncodeVarint(v)

		if got, want := len(e.Bytes()), VarintSize(v); got != want {
			t.Errorf("VarintSize(%d) = %d, encoded %d bytes", v, want, got)
		}

		d := NewDecoder(e.Bytes())
		decoded, err := d.DecodeVarint()
		if err != nil {
			t.Fatalf("DecodeVarint(%d) failed: %v", v, err)
		}
		if decoded != v {
			t.Errorf("round trip of %d gave %d", v, decoded)
		}
	}
}

func TestVarint_KnownBytes(t *testing.T) {
	tests := []struct {
		value uint64
		bytes []byte
	}{
		{150, []byte{0x96, 0x01}},
		{270, []byte{0x8E, 0x02}},
		{86942, []byte{0x9E, 0xA7, 0x05}},
	}

	for _, tt := range tests {
		e := NewEncoder()
		e.EncodeVarint(tt.value)
		if !bytes.Equal(e.Bytes(), tt.bytes) {
			t.Errorf("EncodeVarint(%d) = % X, want % X", tt.value, e.Bytes(), tt.bytes)
		}
	}
}

func TestVarint_Truncated(t *testing.T) {
	d := NewDecoder([]byte{0x96})
	_, err := d.DecodeVarint()
	if !errors.Is(err, ErrUnexpectedEndOfChunk) {
		t.Errorf("expected unexpected end of chunk, got %v", err)
	}

	d = NewDecoder(nil)
	if _, err := d.DecodeVarint(); !errors.Is(err, ErrUnexpectedEndOfChunk) {
		t.Errorf("expected unexpected end of chunk on empty input, got %v", err)
	}
}

func TestVarint_TooLong(t *testing.T) {
	// ten continuation bytes and more data behind them
	data := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	d := NewDecoder(data)
	_, err := d.DecodeVarint()
	if !errors.Is(err, ErrVarintTooLong) {
		t.Errorf("expected varint too long, got %v", err)
	}

	if kind, ok := KindOf(err); !ok || kind != KindVarint {
		t.Errorf("expected varint error kind, got %v", err)
	}
}

func TestSkipVarint(t *testing.T) {
	e := NewEncoder()
	e.EncodeVarint(86942)
	e.EncodeVarint(7)

	d := NewDecoder(e.Bytes())
	if err := d.SkipVarint(); err != nil {
		t.Fatalf("SkipVarint failed: %v", err)
	}
	v, err := d.DecodeVarint()
	if err != nil {
		t.Fatalf("DecodeVarint after skip failed: %v", err)
	}
	if v != 7 {
		t.Errorf("expected 7 after skip, got %d", v)
	}
}

func TestZigZag(t *testing.T) {
	values := []int64{0, -1, 1, -2, 2, 150, -150, 1<<62 - 1, -(1 << 62)}

	for _, v := range values {
		if got := DecodeZigZag64(EncodeZigZag64(v)); got != v {
			t.Errorf("zigzag64 round trip of %d gave %d", v, got)
		}
	}

	// small magnitudes of either sign stay small
	if EncodeZigZag64(-1) != 1 || EncodeZigZag64(1) != 2 || EncodeZigZag64(0) != 0 {
		t.Errorf("zigzag mapping of small values is off")
	}

	for _, v := range []int32{0, -1, 1, 1<<30 - 1, -(1 << 30)} {
		if got := DecodeZigZag32(EncodeZigZag32(v)); got != v {
			t.Errorf("zigzag32 round trip of %d gave %d", v, got)
		}
	}
}

func TestFixed_RoundTrip(t *testing.T) {
	e := NewEncoder()
	e.EncodeFloat32(0.001)
	e.EncodeFloat64(0.001)

	d := NewDecoder(e.Bytes())
	f32, err := d.DecodeFloat32()
	if err != nil {
		t.Fatalf("DecodeFloat32 failed: %v", err)
	}
	if f32 != 0.001 {
		t.Errorf("float32 round trip gave %v", f32)
	}
	f64, err := d.DecodeFloat64()
	if err != nil {
		t.Fatalf("DecodeFloat64 failed: %v", err)
	}
	if f64 != 0.001 {
		t.Errorf("float64 round trip gave %v", f64)
	}
}

func TestFixed_Truncated(t *testing.T) {
	d := NewDecoder([]byte{0x01, 0x02})
	if _, err := d.DecodeFixed32(); !errors.Is(err, ErrUnexpectedEndOfChunk) {
		t.Errorf("expected truncation for fixed32, got %v", err)
	}

	d = NewDecoder([]byte{0x01, 0x02, 0x03, 0x04})
	if _, err := d.DecodeFixed64(); !errors.Is(err, ErrUnexpectedEndOfChunk) {
		t.Errorf("expected truncation for fixed64, got %v", err)
	}
}

func TestBytes_RoundTrip(t *testing.T) {
	e := NewEncoder()
	e.EncodeString("testing")
	e.EncodeBytes([]byte{0xDE, 0xAD})

	if got, want := BytesSize([]byte{0xDE, 0xAD}), 3; got != want {
		t.Errorf("BytesSize = %d, want %d", got, want)
	}
	if got, want := StringSize("testing"), 8; got != want {
		t.Errorf("StringSize = %d, want %d", got, want)
	}

	d := NewDecoder(e.Bytes())
	s, err := d.DecodeString()
	if err != nil {
		t.Fatalf("DecodeString failed: %v", err)
	}
	if s != "testing" {
		t.Errorf("string round trip gave %q", s)
	}
	b, err := d.DecodeBytes()
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	if !bytes.Equal(b, []byte{0xDE, 0xAD}) {
		t.Errorf("bytes round trip gave % X", b)
	}
}

func TestBytes_Truncated(t *testing.T) {
	d := NewDecoder([]byte{0x05, 0x61})
	if _, err := d.DecodeBytes(); !errors.Is(err, ErrUnexpectedEndOfChunk) {
		t.Errorf("expected truncation, got %v", err)
	}
}

func TestDecodeString_MalformedUTF8(t *testing.T) {
	d := NewDecoder([]byte{0x02, 0xFF, 0xFE})
	_, err := d.DecodeString()
	if !errors.Is(err, ErrMalformedUTF8) {
		t.Errorf("expected malformed utf8, got %v", err)
	}
}
