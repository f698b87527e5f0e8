package osc

import (
	"encoding/binary"
	"io"
)

// frameHeaderSize is the byte length of the stream framing prefix.
const frameHeaderSize = 4

// appendFrame appends the payload to dst prefixed with its length as a
// 4-byte integer in the given byte order and returns the extended slice.
// Datagram transports carry packets unframed; framing exists only to
// delimit packets inside a byte stream.
func appendFrame(dst, payload []byte, order binary.ByteOrder) []byte {
	var hdr [frameHeaderSize]byte
	order.PutUint32(hdr[:], uint32(len(payload)))
	dst = append(dst, hdr[:]...)
	return append(dst, payload...)
}

// readFrame reads one length-prefixed packet from the stream. It blocks
// until the whole frame has arrived, absorbing arbitrary TCP segmentation,
// and rejects frames larger than MaxPacketSize.
func readFrame(r io.Reader, order binary.ByteOrder) ([]byte, error) {
	var hdr [frameHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}

	n := order.Uint32(hdr[:])
	if n > MaxPacketSize {
		return nil, ErrFrameTooLarge
	}

	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	return payload, nil
}
