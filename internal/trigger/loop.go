// internal/trigger/loop.go
package trigger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/plc-trigger-logger/internal/register"
)

// Link is the field-bus side the loop drives.
type Link interface {
	Connected() bool
	EnsureConnected() error
	ReadSnapshot() (register.Snapshot, error)
	Close() error
}

// Sink persists the production slice of an activation.
type Sink interface {
	Save(ctx context.Context, values []uint16) error
}

// State of the control loop. TriggerActive is transient: it is held
// only while the sink runs and folds back into Polling.
type State int

const (
	AwaitingConnection State = iota
	Polling
	TriggerActive
)

func (s State) String() string {
	switch s {
	case AwaitingConnection:
		return "awaiting-connection"
	case Polling:
		return "polling"
	case TriggerActive:
		return "trigger-active"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Timing holds the fixed waits between iterations.
type Timing struct {
	PollInterval     time.Duration // idle read, trigger low
	Debounce         time.Duration // after handling an activation
	ConnectBackoff   time.Duration // connect failed
	ReadErrorBackoff time.Duration // read failed, link closed
	ErrorCooldown    time.Duration // unclassified failure
}

// DefaultTiming is the production timing.
func DefaultTiming() Timing {
	return Timing{
		PollInterval:     1 * time.Second,
		Debounce:         2 * time.Second,
		ConnectBackoff:   5 * time.Second,
		ReadErrorBackoff: 2 * time.Second,
		ErrorCooldown:    5 * time.Second,
	}
}

// Config is the runtime config of the loop.
type Config struct {
	Mode   Mode
	Timing Timing
}

// Loop is the single-threaded poll/trigger/log control loop.
type Loop struct {
	link   Link
	sink   Sink
	timing Timing
	det    detector
	log    *logrus.Entry
	state  State
}

// New creates a loop in AwaitingConnection.
func New(cfg Config, link Link, sink Sink, log *logrus.Entry) (*Loop, error) {
	if link == nil {
		return nil, errors.New("trigger: link required")
	}
	if sink == nil {
		return nil, errors.New("trigger: sink required")
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeLevel
	}
	if _, err := ParseMode(string(cfg.Mode)); err != nil {
		return nil, err
	}
	if cfg.Timing == (Timing{}) {
		cfg.Timing = DefaultTiming()
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Loop{
		link:   link,
		sink:   sink,
		timing: cfg.Timing,
		det:    newDetector(cfg.Mode),
		log:    log,
		state:  AwaitingConnection,
	}, nil
}

// State returns the state the next Step starts in.
func (l *Loop) State() State {
	return l.state
}

// Step performs exactly one iteration and returns how long to wait
// before the next one. It never fails: every fault, including a panic,
// is translated into AwaitingConnection plus a cooldown.
func (l *Loop) Step(ctx context.Context) (wait time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			wait = l.recoverFrom(fmt.Errorf("panic: %v", r))
		}
	}()

	return l.step(ctx)
}

// step handles every classified failure itself; anything else panics
// up to Step.
func (l *Loop) step(ctx context.Context) time.Duration {
	// ---- connection ----
	if !l.link.Connected() {
		l.state = AwaitingConnection
		l.log.Info("connecting to PLC")

		if err := l.link.EnsureConnected(); err != nil {
			l.log.WithError(err).Warn("PLC connect failed")
			return l.timing.ConnectBackoff
		}
		l.log.Info("PLC connected")
	}
	l.state = Polling

	// ---- acquisition ----
	snap, err := l.link.ReadSnapshot()
	if err != nil {
		l.log.WithError(err).Warn("modbus read error, resetting link")
		l.closeLink()
		l.state = AwaitingConnection
		return l.timing.ReadErrorBackoff
	}

	// ---- trigger check ----
	trig := snap.Trigger()
	if !l.det.fire(trig) {
		l.log.WithField("trigger", trig).Debug("system ready, waiting for trigger")
		return l.timing.PollInterval
	}

	// ---- activation ----
	l.state = TriggerActive
	l.save(ctx, snap.Production())
	l.state = Polling
	return l.timing.Debounce
}

// save reports persistence failures and swallows them.
// Link state is never touched from here.
func (l *Loop) save(ctx context.Context, values []uint16) {
	err := l.sink.Save(ctx, values)
	switch {
	case err == nil:
		l.log.WithField("values", values).Info("data logging executed: trigger received from PLC")
	case errors.Is(err, register.ErrInsufficientData):
		l.log.WithError(err).Error("insufficient data length, nothing logged")
	case ctx.Err() != nil:
		l.log.WithError(err).Warn("log write interrupted by shutdown")
	default:
		l.log.WithError(err).Error("database error")
	}
}

func (l *Loop) recoverFrom(err error) time.Duration {
	l.log.WithError(err).Error("global system error")
	l.closeLink()
	l.state = AwaitingConnection
	return l.timing.ErrorCooldown
}

// closeLink force-closes the link; close errors are swallowed.
func (l *Loop) closeLink() {
	defer func() { _ = recover() }()
	if err := l.link.Close(); err != nil {
		l.log.WithError(err).Debug("link close failed")
	}
}
