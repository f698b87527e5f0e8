package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"
)

const bundleTagString = "#bundle"

// bundleHeaderSize is the padded "#bundle" tag plus the 64-bit time tag.
const bundleHeaderSize = 8 + bit64Size

// Bundle represents an OSC bundle. It consists of the OSC-string "#bundle"
// followed by an OSC Time Tag, followed by zero or more OSC bundle/message
// elements. Each element can itself be a bundle, so bundles nest to
// arbitrary depth.
type Bundle struct {
	Timetag  Timetag
	Elements []Packet
}

// Verify that Bundle implements the Packet interface.
var _ Packet = (*Bundle)(nil)

// NewBundle returns a Bundle with the immediate time tag holding the given
// elements.
func NewBundle(elems ...Packet) *Bundle {
	return &Bundle{Timetag: TimetagImmediate, Elements: elems}
}

// NewBundleWithTime returns an empty Bundle tagged with the given time.
func NewBundleWithTime(t time.Time) *Bundle {
	return &Bundle{Timetag: NewTimetagFromTime(t)}
}

// Append appends an OSC bundle or OSC message to the bundle.
func (b *Bundle) Append(pck Packet) error {
	switch t := pck.(type) {
	default:
		return fmt.Errorf("Append: unsupported OSC packet type: only Bundle and Message are supported")

	case *Bundle, *Message:
		b.Elements = append(b.Elements, t)
	}

	return nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The
// resulting buffer holds the '#bundle' string, the time tag, and each
// element preceded by its 32-bit size.
func (b *Bundle) MarshalBinary() ([]byte, error) {
	buf := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(buf)
	buf.Reset()

	writePaddedString(bundleTagString, buf)

	var scratch [bit64Size]byte
	binary.BigEndian.PutUint64(scratch[:], uint64(b.Timetag))
	buf.Write(scratch[:])

	for _, elem := range b.Elements {
		bb, err := elem.MarshalBinary()
		if err != nil {
			return nil, err
		}

		// Element sizes are always big-endian: they are part of the OSC
		// encoding, not the stream framing.
		binary.BigEndian.PutUint32(scratch[:bit32Size], uint32(len(bb)))
		buf.Write(scratch[:bit32Size])
		buf.Write(bb)
	}

	if buf.Len() > MaxPacketSize {
		return nil, fmt.Errorf("MarshalBinary: bundle too large: %d", buf.Len())
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// NewBundleFromData returns a new OSC bundle created from the parsed data.
func NewBundleFromData(data []byte) (*Bundle, error) {
	b := &Bundle{}
	if err := b.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return b, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (b *Bundle) UnmarshalBinary(data []byte) error {
	if (len(data) % bit32Size) != 0 {
		return fmt.Errorf("UnmarshalBinary: data isn't padded properly")
	}

	if len(data) < bundleHeaderSize {
		return fmt.Errorf("UnmarshalBinary: bundle is too short")
	}

	buf := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(buf)
	buf.Reset()
	buf.Write(data)

	startTag, _, err := readPaddedString(buf)
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}
	if startTag != bundleTagString {
		return fmt.Errorf("UnmarshalBinary: invalid bundle start tag: %s", startTag)
	}

	b.Timetag = Timetag(binary.BigEndian.Uint64(buf.Next(bit64Size)))

	// Read elements until the end of the buffer.
	for buf.Len() > 0 {
		if buf.Len() < bit32Size {
			return fmt.Errorf("UnmarshalBinary: truncated bundle element size")
		}
		length := int(int32(binary.BigEndian.Uint32(buf.Next(bit32Size))))
		if length < 0 || length > buf.Len() {
			return fmt.Errorf("UnmarshalBinary: invalid bundle element length: %d", length)
		}

		p, err := parsePacket(buf.Next(length))
		if err != nil {
			return err
		}
		if err := b.Append(p); err != nil {
			return err
		}
	}

	return nil
}
