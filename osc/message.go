package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
)

// Message represents a single OSC message. An OSC message consists of an OSC
// address pattern and zero or more arguments.
type Message struct {
	Address   string
	Arguments []interface{}
}

// Verify that Message implements the Packet interface.
var _ Packet = (*Message)(nil)

// NewMessage returns a new Message. The addr parameter is the OSC address.
func NewMessage(addr string, args ...interface{}) *Message {
	return &Message{Address: addr, Arguments: args}
}

// Append appends the given arguments to the arguments list. It fails if any
// argument is of an unsupported type.
func (m *Message) Append(args ...interface{}) error {
	for _, a := range args {
		if ToTypeTag(a) == TypeInvalid {
			return fmt.Errorf("Append: unsupported type: %T", a)
		}
	}
	m.Arguments = append(m.Arguments, args...)
	return nil
}

// Equals reports whether the given OSC Message is equal to the current one,
// comparing the OSC address and all arguments.
func (m *Message) Equals(other *Message) bool {
	return reflect.DeepEqual(m, other)
}

// Clear clears the OSC address and all arguments.
func (m *Message) Clear() {
	m.Address = ""
	m.Arguments = m.Arguments[:0]
}

// Match returns true if the OSC address pattern of the OSC Message matches
// the given address. The match is case sensitive!
func (m *Message) Match(addr string) bool {
	regexp, err := getRegEx(m.Address)
	if err != nil {
		return false
	}
	return regexp.MatchString(addr)
}

// TypeTags returns the type tag string, including the leading comma.
func (m *Message) TypeTags() (string, error) {
	if m == nil {
		return "", fmt.Errorf("TypeTags: message is nil")
	}

	tags := make([]byte, 0, len(m.Arguments)+1)
	tags = append(tags, ',')
	for _, arg := range m.Arguments {
		t := ToTypeTag(arg)
		if t == TypeInvalid {
			return "", fmt.Errorf("TypeTags: unsupported type: %T", arg)
		}
		tags = append(tags, byte(t))
	}

	return string(tags), nil
}

// CountArguments returns the number of arguments.
func (m *Message) CountArguments() int {
	return len(m.Arguments)
}

// String implements the fmt.Stringer interface.
func (m *Message) String() string {
	if m == nil {
		return ""
	}
	if len(m.Arguments) == 0 {
		return m.Address
	}

	tags, _ := m.TypeTags()

	buf := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(buf)
	buf.Reset()

	buf.WriteString(m.Address)
	buf.WriteByte(' ')
	buf.WriteString(tags)

	for _, arg := range m.Arguments {
		switch arg := arg.(type) {
		case bool, int32, int64, float32, float64, string:
			fmt.Fprintf(buf, " %v", arg)

		case nil:
			buf.WriteString(" Nil")

		case []byte:
			buf.WriteString(" blob")

		case Timetag:
			fmt.Fprintf(buf, " %d", arg.TimeTag())
		}
	}

	return buf.String()
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The
// resulting buffer holds the OSC address pattern, the type tag string, and
// the encoded arguments, each padded to 32-bit alignment.
func (m *Message) MarshalBinary() ([]byte, error) {
	buf := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(buf)
	buf.Reset()

	if err := m.marshalInto(buf); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

func (m *Message) marshalInto(buf *bytes.Buffer) error {
	if m.Address == "" || m.Address[0] != '/' {
		return fmt.Errorf("MarshalBinary: invalid address %q", m.Address)
	}

	typetags, err := m.TypeTags()
	if err != nil {
		return err
	}

	writePaddedString(m.Address, buf)
	writePaddedString(typetags, buf)

	var scratch [bit64Size]byte
	for _, arg := range m.Arguments {
		switch t := arg.(type) {
		case bool, nil:
			// Encoded entirely in the type tag.

		case int32:
			binary.BigEndian.PutUint32(scratch[:bit32Size], uint32(t))
			buf.Write(scratch[:bit32Size])

		case float32:
			binary.BigEndian.PutUint32(scratch[:bit32Size], math.Float32bits(t))
			buf.Write(scratch[:bit32Size])

		case int64:
			binary.BigEndian.PutUint64(scratch[:], uint64(t))
			buf.Write(scratch[:])

		case float64:
			binary.BigEndian.PutUint64(scratch[:], math.Float64bits(t))
			buf.Write(scratch[:])

		case Timetag:
			binary.BigEndian.PutUint64(scratch[:], uint64(t))
			buf.Write(scratch[:])

		case string:
			writePaddedString(t, buf)

		case []byte:
			writeBlob(t, buf)

		default:
			return fmt.Errorf("MarshalBinary: unsupported type: %T", t)
		}
	}

	if buf.Len() > MaxPacketSize {
		return fmt.Errorf("MarshalBinary: packet too large: %d", buf.Len())
	}

	return nil
}

// NewMessageFromData returns a new Message created from the parsed data.
func NewMessageFromData(data []byte) (*Message, error) {
	m := &Message{}
	if err := m.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return m, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (m *Message) UnmarshalBinary(data []byte) error {
	if len(data) == 0 || data[0] != '/' {
		return fmt.Errorf("UnmarshalBinary: data not a valid OSC message")
	}

	if (len(data) % bit32Size) != 0 {
		return fmt.Errorf("UnmarshalBinary: data isn't padded properly")
	}

	buf := bufPool.Get().(*bytes.Buffer)
	defer bufPool.Put(buf)
	buf.Reset()
	buf.Write(data)

	addr, _, err := readPaddedString(buf)
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}

	m.Address = addr
	if err = m.readArguments(buf); err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}

	return nil
}

// readArguments parses the type tag string and the encoded arguments.
func (m *Message) readArguments(buf *bytes.Buffer) error {
	typetags, _, err := readPaddedString(buf)
	if err != nil {
		return fmt.Errorf("readArguments: %w", err)
	}

	if len(typetags) == 0 {
		return nil
	}

	if typetags[0] != ',' {
		return fmt.Errorf("readArguments: unsupported typetag string: %s", typetags)
	}

	if len(typetags) == 1 {
		return nil
	}

	m.Arguments = make([]interface{}, 0, len(typetags)-1)

	// Iterate bytes, not runes: a multi-byte sequence in the typetag string
	// is malformed and must not decode to a valid tag.
	for i := 1; i < len(typetags); i++ {
		switch TypeTag(typetags[i]) {
		default:
			return fmt.Errorf("readArguments: unsupported typetag: %c", typetags[i])

		case TypeInt32:
			if buf.Len() < bit32Size {
				return fmt.Errorf("readArguments: not enough bytes for int32")
			}
			m.Arguments = append(m.Arguments, int32(binary.BigEndian.Uint32(buf.Next(bit32Size))))

		case TypeInt64:
			if buf.Len() < bit64Size {
				return fmt.Errorf("readArguments: not enough bytes for int64")
			}
			m.Arguments = append(m.Arguments, int64(binary.BigEndian.Uint64(buf.Next(bit64Size))))

		case TypeFloat32:
			if buf.Len() < bit32Size {
				return fmt.Errorf("readArguments: not enough bytes for float32")
			}
			m.Arguments = append(m.Arguments, math.Float32frombits(binary.BigEndian.Uint32(buf.Next(bit32Size))))

		case TypeFloat64:
			if buf.Len() < bit64Size {
				return fmt.Errorf("readArguments: not enough bytes for float64")
			}
			m.Arguments = append(m.Arguments, math.Float64frombits(binary.BigEndian.Uint64(buf.Next(bit64Size))))

		case TypeString:
			str, _, err := readPaddedString(buf)
			if err != nil {
				return fmt.Errorf("readArguments: %w", err)
			}
			m.Arguments = append(m.Arguments, str)

		case TypeBlob:
			b, _, err := readBlob(buf)
			if err != nil {
				return fmt.Errorf("readArguments: %w", err)
			}
			m.Arguments = append(m.Arguments, b)

		case TypeTimeTag:
			if buf.Len() < bit64Size {
				return fmt.Errorf("readArguments: not enough bytes for timetag")
			}
			m.Arguments = append(m.Arguments, Timetag(binary.BigEndian.Uint64(buf.Next(bit64Size))))

		case TypeNil:
			m.Arguments = append(m.Arguments, nil)

		case TypeTrue:
			m.Arguments = append(m.Arguments, true)

		case TypeFalse:
			m.Arguments = append(m.Arguments, false)
		}
	}

	return nil
}
