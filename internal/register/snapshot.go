// internal/register/snapshot.go
package register

import "errors"

var (
	// ErrShortSnapshot is returned when a read cannot produce all SnapshotLength values.
	ErrShortSnapshot = errors.New("register: snapshot must hold exactly 8 registers")

	// ErrInsufficientData is returned when fewer than ProductionFields values are offered for logging.
	ErrInsufficientData = errors.New("register: insufficient production data")
)

// Snapshot is one atomic read of the register block.
// It has no partial form: a failed read produces no Snapshot.
type Snapshot [SnapshotLength]uint16

// Trigger returns the trigger flag.
func (s Snapshot) Trigger() uint16 {
	return s[TriggerIndex]
}

// Production returns a copy of the production fields, in register order.
func (s Snapshot) Production() []uint16 {
	out := make([]uint16, ProductionFields)
	copy(out, s[:ProductionFields])
	return out
}
