package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sync"
)

const (
	bit32Size = 4
	bit64Size = 8

	// MaxPacketSize is the largest OSC packet this package will produce or
	// accept. 65507 is the maximum UDP payload over IPv4.
	MaxPacketSize = 65507

	secondsFrom1900To1970 = 2208988800
)

var bufPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

////
// De/Encoding functions
////

// readPaddedString reads a null-terminated, 32-bit aligned OSC string from
// the buffer. Returns the string and the number of bytes consumed.
func readPaddedString(buf *bytes.Buffer) (string, int, error) {
	str, err := buf.ReadString(0)
	if err != nil {
		return "", 0, io.EOF
	}

	n := len(str)
	pad := padBytesNeeded(n)
	if buf.Len() < pad {
		return "", 0, io.ErrUnexpectedEOF
	}
	buf.Next(pad)

	return str[:n-1], n + pad, nil
}

// writePaddedString writes the string followed by a null terminator and
// padding up to the next 32-bit boundary. Returns the number of bytes written.
func writePaddedString(str string, buf *bytes.Buffer) int {
	buf.WriteString(str)
	buf.WriteByte(0)
	n := len(str) + 1

	pad := padBytesNeeded(n)
	for i := 0; i < pad; i++ {
		buf.WriteByte(0)
	}

	return n + pad
}

// readBlob reads an OSC blob (32-bit size followed by that many bytes plus
// padding) from the buffer. Padding bytes are consumed and not returned.
func readBlob(buf *bytes.Buffer) ([]byte, int, error) {
	if buf.Len() < bit32Size {
		return nil, 0, io.ErrUnexpectedEOF
	}
	blobLen := int(int32(binary.BigEndian.Uint32(buf.Next(bit32Size))))

	if blobLen < 0 || blobLen > buf.Len() {
		return nil, 0, fmt.Errorf("readBlob: invalid blob length %d", blobLen)
	}

	b := make([]byte, blobLen)
	copy(b, buf.Next(blobLen))

	pad := padBytesNeeded(blobLen)
	if buf.Len() < pad {
		return nil, 0, io.ErrUnexpectedEOF
	}
	buf.Next(pad)

	return b, bit32Size + blobLen + pad, nil
}

// writeBlob writes the byte slice as an OSC blob. If the length isn't 32-bit
// aligned, padding bytes are added.
func writeBlob(data []byte, buf *bytes.Buffer) int {
	var size [bit32Size]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(data)))
	buf.Write(size[:])
	buf.Write(data)

	pad := padBytesNeeded(len(data))
	for i := 0; i < pad; i++ {
		buf.WriteByte(0)
	}

	return bit32Size + len(data) + pad
}

// padBytesNeeded determines how many bytes are needed to fill up to the next
// 4 byte length.
func padBytesNeeded(elementLen int) int {
	return (4 - (elementLen % 4)) % 4
}
