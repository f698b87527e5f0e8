package osc

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Client manages a single OSC connection over UDP or TCP.
//
// A Client owns at most one live connection at a time. Connect establishes
// it and starts asynchronous reception; Close tears it down and waits for
// reception to stop. Received payloads are delivered through the Dispatcher
// on the reader goroutine, one at a time in arrival order.
type Client struct {
	// ByteOrder is the stream framing byte order for TCP connections.
	// Defaults to big-endian (network order). Set before Connect.
	ByteOrder binary.ByteOrder

	// Dispatcher receives every payload that arrives on the connection.
	Dispatcher *Dispatcher

	// Log, when set, records connection lifecycle events at debug level.
	Log *zerolog.Logger

	mu      sync.Mutex
	network string
	addr    string
	conn    net.Conn
	wg      sync.WaitGroup

	// handling gates delivery to the Dispatcher. It is the only state
	// shared between the Close caller and the reception path; clearing it
	// before the connection is torn down prevents dispatch racing Close.
	handling atomic.Bool
}

// NewClient returns a Client that delivers received packets through d. A nil
// d creates a fresh Dispatcher.
func NewClient(d *Dispatcher) *Client {
	if d == nil {
		d = NewDispatcher()
	}
	return &Client{ByteOrder: binary.BigEndian, Dispatcher: d}
}

// Connect dials the remote endpoint and starts asynchronous reception.
// network must be "udp" or "tcp". Connecting an already connected client is
// a no-op for the same endpoint and ErrAlreadyConnected for a different one;
// Close first to move to a new endpoint.
func (c *Client) Connect(network, addr string) error {
	switch network {
	case "udp", "tcp":
	default:
		return fmt.Errorf("osc: unsupported network %q", network)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		if c.network == network && c.addr == addr {
			return nil
		}
		return ErrAlreadyConnected
	}

	conn, err := net.Dial(network, addr)
	if err != nil {
		return fmt.Errorf("osc: connect %s %s: %w", network, addr, err)
	}

	if c.ByteOrder == nil {
		c.ByteOrder = binary.BigEndian
	}
	c.network = network
	c.addr = addr
	c.conn = conn
	c.handling.Store(true)

	c.wg.Add(1)
	go c.read(conn, network, c.ByteOrder)

	loggerOr(c.Log).Debug().Str("network", network).Str("addr", addr).Msg("connected")
	return nil
}

// IsConnected reports whether the client holds a live connection.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Send serializes the packet and writes it to the connection. TCP payloads
// are length-framed; on UDP the datagram boundary is the packet boundary.
// Returns ErrNotConnected when no connection is live.
func (c *Client) Send(p Packet) error {
	if p == nil {
		return ErrNilPacket
	}

	data, err := p.MarshalBinary()
	if err != nil {
		return err
	}

	c.mu.Lock()
	conn, network, order := c.conn, c.network, c.ByteOrder
	c.mu.Unlock()

	if conn == nil {
		return ErrNotConnected
	}

	if network == "tcp" {
		data = appendFrame(make([]byte, 0, frameHeaderSize+len(data)), data, order)
	}

	_, err = conn.Write(data)
	return err
}

// Close stops reception, closes the connection exactly once, and waits for
// the reader goroutine to exit. Closing a closed client is a no-op. No
// packet is dispatched after Close returns.
func (c *Client) Close() error {
	c.mu.Lock()
	conn := c.conn
	addr := c.addr
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}

	c.handling.Store(false)
	err := conn.Close() // unblocks the reader
	c.wg.Wait()

	loggerOr(c.Log).Debug().Str("addr", addr).Msg("closed")
	return err
}

func (c *Client) read(conn net.Conn, network string, order binary.ByteOrder) {
	defer c.wg.Done()

	if network == "tcp" {
		c.readStream(conn, order)
		return
	}
	c.readDatagrams(conn)
}

// readDatagrams delivers each received datagram as one packet payload.
func (c *Client) readDatagrams(conn net.Conn) {
	buf := make([]byte, MaxPacketSize)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			c.readerDone(err)
			return
		}
		if n == 0 {
			continue
		}
		payload := make([]byte, n)
		copy(payload, buf[:n])
		c.deliver(payload, conn.RemoteAddr())
	}
}

// readStream reassembles length-framed packets from the byte stream.
func (c *Client) readStream(conn net.Conn, order binary.ByteOrder) {
	r := bufio.NewReader(conn)
	for {
		payload, err := readFrame(r, order)
		if err != nil {
			c.readerDone(err)
			return
		}
		c.deliver(payload, conn.RemoteAddr())
	}
}

// deliver hands one delineated payload to the Dispatcher, unless Close has
// already cleared the handling flag.
func (c *Client) deliver(payload []byte, from net.Addr) {
	if !c.handling.Load() {
		return
	}
	c.Dispatcher.Dispatch(from, payload)
}

// readerDone surfaces a fatal receive-loop error. Expected shutdown causes
// are suppressed.
func (c *Client) readerDone(err error) {
	if errors.Is(err, net.ErrClosed) || errors.Is(err, io.EOF) {
		return
	}
	if !c.handling.Load() {
		return
	}
	loggerOr(c.Log).Debug().Err(err).Msg("receive loop terminated")
	c.Dispatcher.notifyError(err)
}
