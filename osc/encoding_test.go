package osc

import (
	"bytes"
	"io"
	"reflect"
	"testing"
)

func TestReadPaddedString(t *testing.T) {
	for _, tt := range []struct {
		buf  []byte // buffer
		n    int    // bytes consumed
		want string // resulting string
		err  error
	}{
		{[]byte("teststring\x00\x00"), 12, "teststring", nil},
		{[]byte("testers\x00"), 8, "testers", nil},
		{[]byte("tests\x00\x00\x00"), 8, "tests", nil},
		{[]byte("tes\x00\x00\x00\x00\x00"), 4, "tes", nil}, // OSC uses null terminated strings
		{[]byte("test"), 0, "", io.EOF},                    // no null byte at all
		{[]byte("tests\x00"), 0, "", io.ErrUnexpectedEOF},  // missing padding bytes
	} {
		got, n, err := readPaddedString(bytes.NewBuffer(tt.buf))
		if err != tt.err {
			t.Errorf("%q: readPaddedString() error = %v, want %v", tt.buf, err, tt.err)
			continue
		}
		if n != tt.n {
			t.Errorf("%q: bytes consumed = %d, want %d", tt.buf, n, tt.n)
		}
		if got != tt.want {
			t.Errorf("%q: readPaddedString() = %q, want %q", tt.buf, got, tt.want)
		}
	}
}

func TestWritePaddedString(t *testing.T) {
	for _, tt := range []struct {
		str  string
		want []byte
	}{
		{"testString", []byte("testString\x00\x00")},
		{"abc", []byte("abc\x00")},
		{"abcd", []byte("abcd\x00\x00\x00\x00")},
		{"", []byte("\x00\x00\x00\x00")},
	} {
		buf := new(bytes.Buffer)
		if n := writePaddedString(tt.str, buf); n != len(tt.want) {
			t.Errorf("%q: writePaddedString() = %d bytes, want %d", tt.str, n, len(tt.want))
		}
		if !bytes.Equal(buf.Bytes(), tt.want) {
			t.Errorf("%q: writePaddedString() wrote %v, want %v", tt.str, buf.Bytes(), tt.want)
		}
	}
}

func TestBlobRoundTrip(t *testing.T) {
	for _, data := range [][]byte{
		{},
		{1},
		{1, 2, 3, 4},
		{1, 2, 3, 4, 5},
	} {
		buf := new(bytes.Buffer)
		wrote := writeBlob(data, buf)
		if wrote != buf.Len() {
			t.Errorf("writeBlob(%v) reported %d bytes, wrote %d", data, wrote, buf.Len())
		}
		if buf.Len()%4 != 0 {
			t.Errorf("writeBlob(%v) not 32-bit aligned: %d bytes", data, buf.Len())
		}

		got, n, err := readBlob(buf)
		if err != nil {
			t.Errorf("readBlob(%v) error = %v", data, err)
			continue
		}
		if n != wrote {
			t.Errorf("readBlob(%v) consumed %d bytes, want %d", data, n, wrote)
		}
		if !reflect.DeepEqual(got, data) {
			t.Errorf("readBlob(%v) = %v", data, got)
		}
	}
}

func TestReadBlobInvalid(t *testing.T) {
	for _, raw := range [][]byte{
		{0, 0},                   // truncated size
		{0, 0, 0, 8, 1, 2, 3, 4}, // size exceeds data
		{0xff, 0xff, 0xff, 0xff}, // negative size
	} {
		if _, _, err := readBlob(bytes.NewBuffer(raw)); err == nil {
			t.Errorf("readBlob(%v) expected error", raw)
		}
	}
}

func TestPadBytesNeeded(t *testing.T) {
	for _, tt := range []struct {
		in, want int
	}{
		{0, 0}, {1, 3}, {3, 1}, {4, 0}, {10, 2}, {32, 0}, {63, 1},
	} {
		if got := padBytesNeeded(tt.in); got != tt.want {
			t.Errorf("padBytesNeeded(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
