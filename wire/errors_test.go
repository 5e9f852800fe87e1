package wire

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCodecError_FieldPath(t *testing.T) {
	tests := []struct {
		name         string
		buildError   func() error
		expectedPath string
		expectedKind ErrorKind
	}{
		{
			name: "single field error",
			buildError: func() error {
				return wrapWithField(payloadError("expected string, got %T", 1.5), "name")
			},
			expectedPath: "name",
			expectedKind: KindPayload,
		},
		{
			name: "nested field error",
			buildError: func() error {
				err := payloadError("expected string, got %T", 1.5)
				err = wrapWithField(err, "street")
				err = wrapWithField(err, "address")
				err = wrapWithField(err, "owner")
				return err
			},
			expectedPath: "owner.address.street",
			expectedKind: KindPayload,
		},
		{
			name: "kind survives wrapping",
			buildError: func() error {
				return wrapWithField(wrapWithField(truncationError(), "inner"), "outer")
			},
			expectedPath: "outer.inner",
			expectedKind: KindTruncation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.buildError()

			var ce *CodecError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *CodecError, got %T", err)
			}
			if got := strings.Join(ce.FieldPath, "."); got != tt.expectedPath {
				t.Errorf("field path = %q, want %q", got, tt.expectedPath)
			}
			if ce.Kind != tt.expectedKind {
				t.Errorf("kind = %q, want %q", ce.Kind, tt.expectedKind)
			}
			if !strings.Contains(err.Error(), tt.expectedPath) {
				t.Errorf("message %q does not mention path %q", err.Error(), tt.expectedPath)
			}
		})
	}
}

func TestCodecError_Unwrap(t *testing.T) {
	err := wrapWithField(truncationError(), "payload")
	if !errors.Is(err, ErrUnexpectedEndOfChunk) {
		t.Errorf("errors.Is through wrapping failed: %v", err)
	}
	if !IsTruncation(err) {
		t.Errorf("IsTruncation failed for %v", err)
	}

	keyErr := keyDecodeError(ErrUnknownWireType)
	if !errors.Is(keyErr, ErrUnknownWireType) {
		t.Errorf("errors.Is for key error failed: %v", keyErr)
	}
	if !strings.Contains(keyErr.Error(), "failed decoding key") {
		t.Errorf("key error message = %q", keyErr.Error())
	}
}

func TestCodecError_KindOf(t *testing.T) {
	tests := []struct {
		err  error
		kind ErrorKind
	}{
		{keyDecodeError(ErrInvalidFieldNumber), KindKeyDecode},
		{truncationError(), KindTruncation},
		{varintError(), KindVarint},
		{overflowError("short", 1 << 20), KindPayload},
		{structuralError(ErrMissingEnumerationCase), KindStructural},
		{transformationError(fmt.Errorf("not a price")), KindTransformation},
		{schemaFailError("failing schema"), KindSchemaFail},
	}

	for _, tt := range tests {
		kind, ok := KindOf(tt.err)
		if !ok || kind != tt.kind {
			t.Errorf("KindOf(%v) = %q/%v, want %q", tt.err, kind, ok, tt.kind)
		}
	}

	if _, ok := KindOf(fmt.Errorf("plain")); ok {
		t.Errorf("KindOf matched a plain error")
	}
}
