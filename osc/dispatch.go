package osc

import (
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// invalidMethodChars are the characters a registered method address may not
// contain; they are reserved for OSC address pattern matching.
const invalidMethodChars = "*?,[]{}# "

var nopLogger = zerolog.Nop()

// loggerOr returns l, or a no-op logger when l is nil.
func loggerOr(l *zerolog.Logger) *zerolog.Logger {
	if l != nil {
		return l
	}
	return &nopLogger
}

// Dispatcher decodes raw payloads into OSC packets and fans the results out
// to subscribers. Every decoded packet is announced to the packet
// subscribers; bundles are then walked depth-first, announcing each nested
// bundle before its children and each message either unconditionally or,
// with FilterMethods set, only when its address is registered.
//
// Subscriber and method registration is safe to call concurrently with
// Dispatch; the exported flag fields are not, and must be set before the
// first Dispatch. A single Dispatcher dispatches one payload at a time per
// connection, in arrival order.
type Dispatcher struct {
	// FilterMethods suppresses message notifications whose address is not in
	// the registered method set. Set before the first Dispatch.
	FilterMethods bool

	// ConsumeParseErrors silently discards malformed payloads instead of
	// notifying the error subscribers. Set before the first Dispatch.
	ConsumeParseErrors bool

	// Log, when set, records discarded payloads at debug level.
	Log *zerolog.Logger

	mu        sync.RWMutex
	methods   []string
	onPacket  []func(Packet)
	onBundle  []func(*Bundle)
	onMessage []func(*Message)
	onError   []func(error)
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// OnPacket subscribes fn to every successfully decoded packet.
func (d *Dispatcher) OnPacket(fn func(Packet)) {
	d.mu.Lock()
	d.onPacket = append(d.onPacket, fn)
	d.mu.Unlock()
}

// OnBundle subscribes fn to every received bundle, including bundles nested
// inside other bundles.
func (d *Dispatcher) OnBundle(fn func(*Bundle)) {
	d.mu.Lock()
	d.onBundle = append(d.onBundle, fn)
	d.mu.Unlock()
}

// OnMessage subscribes fn to every received message, top-level or nested.
func (d *Dispatcher) OnMessage(fn func(*Message)) {
	d.mu.Lock()
	d.onMessage = append(d.onMessage, fn)
	d.mu.Unlock()
}

// OnError subscribes fn to decode and transport failures.
func (d *Dispatcher) OnError(fn func(error)) {
	d.mu.Lock()
	d.onError = append(d.onError, fn)
	d.mu.Unlock()
}

// RegisterMethod adds addr to the set of addresses message notifications are
// delivered for when FilterMethods is set. Registering an address twice
// keeps a single entry. The address must begin with '/' and may not contain
// pattern-matching characters.
func (d *Dispatcher) RegisterMethod(addr string) error {
	if addr == "" || addr[0] != '/' {
		return fmt.Errorf("RegisterMethod: OSC address must begin with '/': %q", addr)
	}
	if strings.ContainsAny(addr, invalidMethodChars) {
		return fmt.Errorf("RegisterMethod: OSC address may not contain any characters in %q", invalidMethodChars)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if existsInOrder(d.methods, addr) {
		return nil
	}
	d.methods = append(d.methods, addr)
	return nil
}

// UnregisterMethod removes addr from the registered method set. Removing an
// address that is not registered is a no-op.
func (d *Dispatcher) UnregisterMethod(addr string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, m := range d.methods {
		if m == addr {
			// Copy on write: Dispatch reads snapshots of this slice after
			// releasing the lock, so the old backing array must stay intact.
			next := make([]string, 0, len(d.methods)-1)
			next = append(next, d.methods[:i]...)
			d.methods = append(next, d.methods[i+1:]...)
			return
		}
	}
}

// ClearMethods removes all registered method addresses.
func (d *Dispatcher) ClearMethods() {
	d.mu.Lock()
	d.methods = nil
	d.mu.Unlock()
}

// Methods returns the registered method addresses in registration order.
func (d *Dispatcher) Methods() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, len(d.methods))
	copy(out, d.methods)
	return out
}

// Dispatch decodes one raw payload from the given source endpoint and
// notifies subscribers. Malformed payloads notify the error subscribers
// with a *ParseError, or are dropped when ConsumeParseErrors is set; they
// never terminate the receive loop that called Dispatch.
func (d *Dispatcher) Dispatch(from net.Addr, data []byte) {
	p, err := ParsePacket(data)
	if err != nil {
		if d.ConsumeParseErrors {
			loggerOr(d.Log).Debug().Err(err).Str("from", addrString(from)).Msg("dropped malformed packet")
			return
		}
		d.notifyError(&ParseError{From: from, Err: err})
		return
	}

	d.mu.RLock()
	onPacket := d.onPacket
	onBundle := d.onBundle
	onMessage := d.onMessage
	filter := d.FilterMethods
	methods := d.methods
	d.mu.RUnlock()

	for _, fn := range onPacket {
		fn(p)
	}

	// Depth-first pre-order walk over nested bundles. An explicit worklist
	// keeps adversarial nesting depth off the call stack; children are
	// pushed in reverse so they pop in element order.
	stack := []Packet{p}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch t := p.(type) {
		case *Message:
			if filter && !existsInOrder(methods, t.Address) {
				continue
			}
			for _, fn := range onMessage {
				fn(t)
			}

		case *Bundle:
			for _, fn := range onBundle {
				fn(t)
			}
			for i := len(t.Elements) - 1; i >= 0; i-- {
				stack = append(stack, t.Elements[i])
			}
		}
	}
}

// notifyError delivers err to the error subscribers.
func (d *Dispatcher) notifyError(err error) {
	d.mu.RLock()
	onError := d.onError
	d.mu.RUnlock()

	if len(onError) == 0 {
		loggerOr(d.Log).Debug().Err(err).Msg("unhandled receive error")
		return
	}
	for _, fn := range onError {
		fn(err)
	}
}

func addrString(a net.Addr) string {
	if a == nil {
		return ""
	}
	return a.String()
}
