package osc

import (
	"encoding"
	"fmt"
)

// Packet is the interface for Message and Bundle.
type Packet interface {
	encoding.BinaryMarshaler
}

// ParsePacket parses either a Message or a Bundle from the raw bytes of one
// OSC packet.
func ParsePacket(data []byte) (Packet, error) {
	return parsePacket(data)
}

func parsePacket(data []byte) (Packet, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("parsePacket: empty packet")
	}

	switch data[0] {
	case '/':
		m := &Message{}
		if err := m.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		return m, nil

	case '#':
		b := &Bundle{}
		if err := b.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		return b, nil

	default:
		return nil, fmt.Errorf("parsePacket: not an OSC packet: leading byte %#x", data[0])
	}
}
