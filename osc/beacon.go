package osc

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Beacon periodically retransmits one fixed packet to a fixed UDP endpoint,
// for keep-alive or test transmission.
//
// Start launches a single background worker that sends the packet, reports
// progress, and sleeps for Interval until stopped or until a send fails.
// Stop signals the worker and blocks until it has fully exited, so no
// transmission happens after Stop returns. Start and Stop must not be
// called concurrently with each other on the same Beacon.
type Beacon struct {
	// Addr is the destination endpoint, host:port.
	Addr string

	// LocalAddr optionally pins the local source address, e.g. ":9000".
	// Empty means an ephemeral source port.
	LocalAddr string

	// Interval between transmissions. Defaults to one second.
	Interval time.Duration

	// OnProgress, when set, is called from the worker with the running
	// transmission count after every send.
	OnProgress func(count uint64)

	// OnError, when set, is called when a send fails. The failure is fatal
	// to the worker; Stop remains safe to call afterwards.
	OnError func(err error)

	// Log, when set, records worker events.
	Log *zerolog.Logger

	mu    sync.Mutex
	conn  net.Conn
	stop  chan struct{}
	wg    sync.WaitGroup
	count atomic.Uint64
}

// Start marshals the packet once, opens the send-only socket, and launches
// the transmission worker. It fails on a nil packet and while a previous
// session is still running.
func (b *Beacon) Start(p Packet) error {
	if p == nil {
		return ErrNilPacket
	}
	data, err := p.MarshalBinary()
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn != nil {
		return ErrBeaconRunning
	}

	var d net.Dialer
	if b.LocalAddr != "" {
		laddr, err := net.ResolveUDPAddr("udp", b.LocalAddr)
		if err != nil {
			return fmt.Errorf("osc: beacon local addr: %w", err)
		}
		d.LocalAddr = laddr
	}
	conn, err := d.Dial("udp", b.Addr)
	if err != nil {
		return fmt.Errorf("osc: beacon dial %s: %w", b.Addr, err)
	}

	interval := b.Interval
	if interval <= 0 {
		interval = time.Second
	}

	b.conn = conn
	b.stop = make(chan struct{})
	b.count.Store(0)

	b.wg.Add(1)
	go b.run(conn, b.stop, data, interval)

	loggerOr(b.Log).Debug().Str("addr", b.Addr).Dur("interval", interval).Msg("beacon started")
	return nil
}

func (b *Beacon) run(conn net.Conn, stop <-chan struct{}, data []byte, interval time.Duration) {
	defer b.wg.Done()

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		if _, err := conn.Write(data); err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			loggerOr(b.Log).Error().Err(err).Msg("beacon send failed")
			if b.OnError != nil {
				b.OnError(err)
			}
			return
		}

		n := b.count.Add(1)
		if b.OnProgress != nil {
			b.OnProgress(n)
		}

		select {
		case <-stop:
			return
		case <-t.C:
		}
	}
}

// Stop signals the worker and blocks until it has fully exited, then
// releases the socket. The transmission count is frozen by the time Stop
// returns. Stopping a beacon that is not running is a no-op, including
// after a worker that terminated on a send failure.
func (b *Beacon) Stop() {
	b.mu.Lock()
	conn, stop := b.conn, b.stop
	b.conn, b.stop = nil, nil
	b.mu.Unlock()

	if conn == nil {
		return
	}

	close(stop)
	b.wg.Wait()
	conn.Close()

	loggerOr(b.Log).Debug().Uint64("sent", b.count.Load()).Msg("beacon stopped")
}

// Count returns the number of transmissions of the current session.
func (b *Beacon) Count() uint64 {
	return b.count.Load()
}
