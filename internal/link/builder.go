// internal/link/builder.go
package link

import (
	stdlog "log"
	"time"

	"github.com/sirupsen/logrus"

	cfg "github.com/tamzrod/plc-trigger-logger/internal/config"
	lmodbus "github.com/tamzrod/plc-trigger-logger/internal/link/modbus"
)

// Build constructs a Manager wired to Modbus TCP.
// Nothing is dialed here: connection is lazy, on the first EnsureConnected.
func Build(p cfg.PLCConfig, log *logrus.Entry) (*Manager, error) {
	mc := lmodbus.Config{
		Host:    p.Host,
		Port:    p.Port,
		UnitID:  p.UnitID,
		Timeout: time.Duration(p.TimeoutMs) * time.Millisecond,
	}
	if log != nil && log.Logger.IsLevelEnabled(logrus.TraceLevel) {
		// one pipe for the lifetime of the process, shared by every redial
		w := log.WithField("endpoint", mc.Endpoint()).WriterLevel(logrus.TraceLevel)
		mc.Frames = stdlog.New(w, "modbus: ", 0)
	}

	// client factory: ONE attempt per call
	dial := func() (Conn, error) {
		c, err := lmodbus.Dial(mc)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	return New(dial, lmodbus.IsException, log)
}
