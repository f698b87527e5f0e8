// Package osc implements a client and server transport layer for
// OpenSoundControl messages over UDP and TCP.
//
// This implementation is based on the Open Sound Control 1.0 Specification
// (http://opensoundcontrol.org/spec-1_0.html).
//
// Open Sound Control (OSC) is an open, transport-independent, message-based
// protocol developed for communication among computers, sound synthesizers,
// and other multimedia devices.
//
// # Packets
//
// The unit of transmission of OSC is an OSC Packet. A packet is either a
// Message (an address pattern plus zero or more typed arguments) or a Bundle
// (a time tag plus an ordered list of packets, which may themselves be
// bundles). Supported argument type tags:
//
//	'i' (int32)
//	'f' (float32)
//	's' (string)
//	'b' ([]byte)
//	't' (Timetag)
//	'h' (int64)
//	'd' (float64)
//	'T' (true)
//	'F' (false)
//	'N' (nil)
//
// # Transports
//
// UDP carries one raw OSC packet per datagram. TCP is a byte stream, so each
// packet is framed with a 4-byte length prefix; the byte order of the prefix
// is configurable per connection and defaults to network (big-endian) order.
//
// # Usage
//
// Sending:
//
//	client := osc.NewClient(nil)
//	if err := client.Connect("udp", "localhost:8765"); err != nil {
//		// handle error
//	}
//	defer client.Close()
//	client.Send(osc.NewMessage("/osc/address", int32(111), true, "hello"))
//
// Receiving:
//
//	d := osc.NewDispatcher()
//	d.OnMessage(func(msg *osc.Message) {
//		fmt.Println(msg)
//	})
//
//	server := &osc.Server{
//		Addr:       "127.0.0.1:8765",
//		Dispatcher: d,
//	}
//	server.ListenAndServe()
package osc
