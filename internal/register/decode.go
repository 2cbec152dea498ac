// internal/register/decode.go
package register

import "encoding/binary"

// Decode converts a raw read-holding-registers payload into a Snapshot.
// Registers are big-endian on the wire.
// No IO. No side effects.
func Decode(raw []byte) (Snapshot, error) {
	var s Snapshot
	if len(raw) != SnapshotLength*2 {
		return s, ErrShortSnapshot
	}
	for i := range s {
		s[i] = binary.BigEndian.Uint16(raw[2*i:])
	}
	return s, nil
}
