package osc

import (
	"errors"
	"fmt"
	"net"
)

var (
	// ErrNotConnected is returned by Send when the client has no live
	// connection.
	ErrNotConnected = errors.New("osc: not connected")

	// ErrAlreadyConnected is returned by Connect when the client already
	// holds a live connection to a different endpoint. Close it first.
	ErrAlreadyConnected = errors.New("osc: already connected to a different endpoint")

	// ErrFrameTooLarge is returned when a stream frame announces a payload
	// larger than MaxPacketSize.
	ErrFrameTooLarge = errors.New("osc: framed packet exceeds MaxPacketSize")

	// ErrBeaconRunning is returned by Beacon.Start while a previous session
	// is still running.
	ErrBeaconRunning = errors.New("osc: beacon already started")

	// ErrNilPacket is returned when a nil packet is handed to Send or
	// Beacon.Start.
	ErrNilPacket = errors.New("osc: nil packet")
)

// ParseError reports a payload that did not decode as a valid OSC packet.
type ParseError struct {
	// From is the source endpoint of the payload, nil when unknown.
	From net.Addr
	Err  error
}

func (e *ParseError) Error() string {
	if e.From != nil {
		return fmt.Sprintf("osc: malformed packet from %s: %v", e.From, e.Err)
	}
	return fmt.Sprintf("osc: malformed packet: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
