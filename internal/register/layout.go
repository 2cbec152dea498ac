// internal/register/layout.go
package register

// PLC register block layout constants.
// These values are fixed by the PLC program and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// StartAddress is the first holding register of the block.
const StartAddress uint16 = 0

// SnapshotLength is the number of contiguous holding registers read per poll.
const SnapshotLength = 8

// ProductionFields is the number of leading registers persisted per activation.
const ProductionFields = 7

// ---- PRODUCTION INDICES ----

const (
	IndexID1Counter = 0
	IndexID2Counter = 1
	IndexOKCounter  = 2
	IndexNGCounter  = 3
	IndexAllCounter = 4
	IndexEfficiency = 5
	IndexCycleTime  = 6
)

// ---- TRIGGER ----

// TriggerIndex holds the trigger flag. It is never persisted.
const TriggerIndex = 7

// TriggerIdle means no production cycle is waiting to be logged.
const TriggerIdle uint16 = 0

// TriggerFire means a production cycle completed; log now.
const TriggerFire uint16 = 1
