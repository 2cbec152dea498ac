// internal/trigger/detector.go
package trigger

import (
	"fmt"

	"github.com/tamzrod/plc-trigger-logger/internal/register"
)

// Mode selects how the trigger register is interpreted.
type Mode string

const (
	// ModeLevel fires on every read where the trigger is high.
	// Duplicates are held off only by the debounce wait.
	ModeLevel Mode = "level"

	// ModeEdge fires only on an idle-to-fire transition.
	ModeEdge Mode = "edge"
)

// ParseMode maps a config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLevel, ModeEdge:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("trigger: unsupported mode %q", s)
	}
}

// detector decides, per successful read, whether an activation is due.
type detector interface {
	fire(trigger uint16) bool
}

func newDetector(m Mode) detector {
	if m == ModeEdge {
		return &edgeDetector{prev: register.TriggerIdle}
	}
	return levelDetector{}
}

type levelDetector struct{}

func (levelDetector) fire(trigger uint16) bool {
	return trigger == register.TriggerFire
}

// edgeDetector remembers the last value seen on a successful read.
// The memory survives reconnects: a trigger still high after an
// outage is the same activation, not a new one.
type edgeDetector struct {
	prev uint16
}

func (d *edgeDetector) fire(trigger uint16) bool {
	rising := trigger == register.TriggerFire && d.prev != register.TriggerFire
	d.prev = trigger
	return rising
}
