package osc

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
	"testing/iotest"
)

func TestFrameRoundTrip(t *testing.T) {
	payload := []byte("/a/b\x00\x00\x00\x00,\x00\x00\x00")

	for _, tt := range []struct {
		name  string
		order binary.ByteOrder
	}{
		{"big_endian", binary.BigEndian},
		{"little_endian", binary.LittleEndian},
	} {
		t.Run(tt.name, func(t *testing.T) {
			framed := appendFrame(nil, payload, tt.order)
			if got, want := len(framed), frameHeaderSize+len(payload); got != want {
				t.Fatalf("framed length = %d, want %d", got, want)
			}
			if got := tt.order.Uint32(framed[:frameHeaderSize]); got != uint32(len(payload)) {
				t.Fatalf("length prefix = %d, want %d", got, len(payload))
			}

			got, err := readFrame(bytes.NewReader(framed), tt.order)
			if err != nil {
				t.Fatalf("readFrame() error = %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("readFrame() = %v, want %v", got, payload)
			}
		})
	}
}

// A stream delivers frames in arbitrary pieces; readFrame must reassemble
// them.
func TestReadFrameSegmented(t *testing.T) {
	p1 := []byte("/a\x00\x00,\x00\x00\x00")
	p2 := []byte("/synth/freq\x00,f\x00\x00\x43\xdc\x00\x00")

	stream := appendFrame(nil, p1, binary.BigEndian)
	stream = appendFrame(stream, p2, binary.BigEndian)

	r := iotest.OneByteReader(bytes.NewReader(stream))

	got1, err := readFrame(r, binary.BigEndian)
	if err != nil {
		t.Fatalf("readFrame() first error = %v", err)
	}
	got2, err := readFrame(r, binary.BigEndian)
	if err != nil {
		t.Fatalf("readFrame() second error = %v", err)
	}

	if !bytes.Equal(got1, p1) || !bytes.Equal(got2, p2) {
		t.Errorf("readFrame() = %v, %v; want %v, %v", got1, got2, p1, p2)
	}

	if _, err := readFrame(r, binary.BigEndian); err != io.EOF {
		t.Errorf("readFrame() at end of stream error = %v, want io.EOF", err)
	}
}

func TestReadFrameTooLarge(t *testing.T) {
	var hdr [frameHeaderSize]byte
	binary.BigEndian.PutUint32(hdr[:], MaxPacketSize+1)

	if _, err := readFrame(bytes.NewReader(hdr[:]), binary.BigEndian); err != ErrFrameTooLarge {
		t.Errorf("readFrame() error = %v, want ErrFrameTooLarge", err)
	}
}

func TestReadFrameTruncated(t *testing.T) {
	framed := appendFrame(nil, []byte("/a\x00\x00,\x00\x00\x00"), binary.BigEndian)

	for i := 1; i < len(framed); i++ {
		_, err := readFrame(bytes.NewReader(framed[:i]), binary.BigEndian)
		if err == nil {
			t.Fatalf("readFrame() on %d byte prefix expected error", i)
		}
	}
}
