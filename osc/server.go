package osc

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"time"

	"github.com/rs/zerolog"
)

// Server receives OSC packets on Addr and dispatches them. The zero value
// plus an Addr is a working UDP server; ListenAndServeTCP accepts stream
// connections carrying length-framed packets instead.
type Server struct {
	Addr       string
	Dispatcher *Dispatcher

	// ReadTimeout bounds each read; zero means no timeout.
	ReadTimeout time.Duration

	// ByteOrder is the stream framing byte order for TCP connections.
	// Defaults to big-endian (network order).
	ByteOrder binary.ByteOrder

	// Log, when set, records serve-loop events.
	Log *zerolog.Logger
}

// ListenAndServe receives incoming OSC packets over UDP on Addr and
// dispatches them.
func (s *Server) ListenAndServe() error {
	ln, err := net.ListenPacket("udp", s.Addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	return s.Serve(ln)
}

// Serve retrieves incoming OSC packets from the given connection and
// dispatches them. It returns when reading from the connection fails with a
// non-temporary error.
func (s *Server) Serve(c net.PacketConn) error {
	if s.Dispatcher == nil {
		s.Dispatcher = NewDispatcher()
	}

	var tempDelay time.Duration
	buf := make([]byte, MaxPacketSize)
	for {
		if s.ReadTimeout != 0 {
			if err := c.SetReadDeadline(time.Now().Add(s.ReadTimeout)); err != nil {
				return err
			}
		}

		n, addr, err := c.ReadFrom(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Temporary() {
				if tempDelay == 0 {
					tempDelay = 5 * time.Millisecond
				} else {
					tempDelay *= 2
				}
				if max := 1 * time.Second; tempDelay > max {
					tempDelay = max
				}
				time.Sleep(tempDelay)
				continue
			}
			return err
		}
		tempDelay = 0

		payload := make([]byte, n)
		copy(payload, buf[:n])
		go s.serve(payload, addr)
	}
}

// serve dispatches one payload, recovering from subscriber panics so a bad
// handler cannot take down the serve loop.
func (s *Server) serve(payload []byte, addr net.Addr) {
	defer func() {
		if r := recover(); r != nil {
			loggerOr(s.Log).Error().Str("from", addrString(addr)).Interface("panic", r).Msg("panic dispatching packet")
		}
	}()
	s.Dispatcher.Dispatch(addr, payload)
}

// ListenAndServeTCP accepts stream connections on Addr and dispatches the
// length-framed OSC packets read from each.
func (s *Server) ListenAndServeTCP() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	return s.ServeTCP(ln)
}

// ServeTCP accepts connections from the listener, reading length-framed
// packets from each on its own goroutine. It returns when Accept fails with
// a non-temporary error.
func (s *Server) ServeTCP(ln net.Listener) error {
	if s.Dispatcher == nil {
		s.Dispatcher = NewDispatcher()
	}
	order := s.ByteOrder
	if order == nil {
		order = binary.BigEndian
	}

	var tempDelay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Temporary() {
				if tempDelay == 0 {
					tempDelay = 5 * time.Millisecond
				} else {
					tempDelay *= 2
				}
				if max := 1 * time.Second; tempDelay > max {
					tempDelay = max
				}
				time.Sleep(tempDelay)
				continue
			}
			return err
		}
		tempDelay = 0

		go s.serveConn(conn, order)
	}
}

// serveConn reads framed packets from one stream connection until it closes.
// Packets from a single connection dispatch sequentially, preserving
// arrival order.
func (s *Server) serveConn(conn net.Conn, order binary.ByteOrder) {
	defer conn.Close()

	r := bufio.NewReader(conn)
	for {
		if s.ReadTimeout != 0 {
			if err := conn.SetReadDeadline(time.Now().Add(s.ReadTimeout)); err != nil {
				return
			}
		}

		payload, err := readFrame(r, order)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				loggerOr(s.Log).Debug().Err(err).Str("from", addrString(conn.RemoteAddr())).Msg("stream read failed")
			}
			return
		}

		s.serve(payload, conn.RemoteAddr())
	}
}
