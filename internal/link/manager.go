// internal/link/manager.go
package link

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/plc-trigger-logger/internal/register"
)

// Conn abstracts the Modbus operations the link needs.
type Conn interface {
	ReadHoldingRegisters(addr, qty uint16) ([]byte, error) // FC 3
	Close() error
}

// Dialer opens a new Conn. ONE attempt per call, no retries.
type Dialer func() (Conn, error)

// State is the connection state of the link.
type State int

const (
	Disconnected State = iota
	Connected
)

func (s State) String() string {
	if s == Connected {
		return "connected"
	}
	return "disconnected"
}

var ErrNotConnected = errors.New("link: not connected")

// ReadError is a failed snapshot read.
// Transport is true when the socket itself failed and has been closed.
type ReadError struct {
	Transport bool
	Err       error
}

func (e *ReadError) Error() string {
	kind := "protocol"
	if e.Transport {
		kind = "transport"
	}
	return fmt.Sprintf("link: %s read error: %v", kind, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Manager owns at most one live Conn.
// A Conn that has reported a transport fault is discarded, never reused.
type Manager struct {
	dial        Dialer
	isException func(error) bool
	conn        Conn
	log         *logrus.Entry
}

// New creates a disconnected Manager. Nothing is dialed until EnsureConnected.
// isException classifies device exception responses; nil treats every
// read error as a transport fault.
func New(dial Dialer, isException func(error) bool, log *logrus.Entry) (*Manager, error) {
	if dial == nil {
		return nil, errors.New("link: dialer required")
	}
	if isException == nil {
		isException = func(error) bool { return false }
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Manager{dial: dial, isException: isException, log: log}, nil
}

// State returns the current connection state.
func (m *Manager) State() State {
	if m.conn == nil {
		return Disconnected
	}
	return Connected
}

// Connected reports whether a Conn is held.
func (m *Manager) Connected() bool {
	return m.State() == Connected
}

// EnsureConnected dials when disconnected. On failure the state stays Disconnected.
func (m *Manager) EnsureConnected() error {
	if m.conn != nil {
		return nil
	}

	conn, err := m.dial()
	if err != nil {
		return fmt.Errorf("link: connect: %w", err)
	}
	if conn == nil {
		return errors.New("link: connect: dialer returned no connection")
	}

	m.conn = conn
	m.log.Debug("link connected")
	return nil
}

// ReadSnapshot reads the full register block in one FC 3 request.
// All-or-nothing: anything short of SnapshotLength registers is an error.
func (m *Manager) ReadSnapshot() (register.Snapshot, error) {
	if m.conn == nil {
		return register.Snapshot{}, ErrNotConnected
	}

	raw, err := m.conn.ReadHoldingRegisters(register.StartAddress, register.SnapshotLength)
	if err != nil {
		if m.isException(err) {
			return register.Snapshot{}, &ReadError{Err: err}
		}
		// Transport death: drop the connection so the next cycle redials.
		m.discard()
		return register.Snapshot{}, &ReadError{Transport: true, Err: err}
	}

	snap, err := register.Decode(raw)
	if err != nil {
		return register.Snapshot{}, &ReadError{Err: fmt.Errorf("%w (got %d bytes)", err, len(raw))}
	}
	return snap, nil
}

// Close releases the connection. Safe to call repeatedly.
func (m *Manager) Close() error {
	if m.conn == nil {
		return nil
	}
	conn := m.conn
	m.conn = nil
	return conn.Close()
}

func (m *Manager) discard() {
	if err := m.Close(); err != nil {
		m.log.WithError(err).Debug("close after transport fault failed")
	}
}
