package images

import (
	"bytes"
	"testing"
)

func TestEnsureJFIFAPP0_AddsMarker(t *testing.T) {
	// Minimal JPEG without APP0
	data := []byte{0xFF, 0xD8, 0xFF, 0xDB, 0x00, 0x04}

	out, added, err := EnsureJFIFAPP0(data, DpiPxPerInch, 300, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !added {
		t.Fatal("expected marker to be added")
	}
	if len(out) != len(data)+18 {
		t.Fatalf("expected output to grow by 18 bytes, got %d", len(out)-len(data))
	}
	if !bytes.Equal(out[2:4], []byte{0xFF, 0xE0}) {
		t.Fatal("expected JFIF APP0 marker at position 2-3")
	}
	// units and densities
	if out[13] != byte(DpiPxPerInch) || out[14] != 0x01 || out[15] != 0x2C {
		t.Fatalf("unexpected density bytes: % x", out[13:18])
	}
}

func TestEnsureJFIFAPP0_AlreadyPresent(t *testing.T) {
	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}

	out, added, err := EnsureJFIFAPP0(data, DpiPxPerInch, 300, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added {
		t.Fatal("expected no marker addition")
	}
	if !bytes.Equal(out, data) {
		t.Fatal("expected same bytes")
	}
}

func TestEnsureJFIFAPP0_Invalid(t *testing.T) {
	if _, _, err := EnsureJFIFAPP0([]byte{0xFF}, DpiPxPerInch, 1, 1); err == nil {
		t.Error("expected error for short data")
	}
	if _, _, err := EnsureJFIFAPP0([]byte{0x89, 0x50, 0x4E, 0x47}, DpiPxPerInch, 1, 1); err == nil {
		t.Error("expected error for non jpeg data")
	}
}
