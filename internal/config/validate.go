// internal/config/validate.go
package config

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}

	// ------------------------------------------------------------
	// PLC
	// ------------------------------------------------------------

	if cfg.PLC.Host == "" {
		return errors.New("plc: host required")
	}
	if cfg.PLC.Port == 0 {
		return errors.New("plc: port must be > 0")
	}
	if cfg.PLC.UnitID > 247 {
		return fmt.Errorf("plc: unit_id %d out of range (1-247)", cfg.PLC.UnitID)
	}
	if cfg.PLC.TimeoutMs <= 0 {
		return fmt.Errorf("plc: timeout_ms must be > 0, got %d", cfg.PLC.TimeoutMs)
	}

	// ------------------------------------------------------------
	// DATABASE
	// ------------------------------------------------------------

	db := cfg.Database
	switch db.Driver {
	case DriverMySQL, DriverPostgres:
		if db.Host == "" {
			return fmt.Errorf("database: host required for driver %q", db.Driver)
		}
		if db.User == "" {
			return fmt.Errorf("database: user required for driver %q", db.Driver)
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("database: unsupported driver %q (mysql|postgres|sqlite)", db.Driver)
	}
	if db.Name == "" {
		return errors.New("database: name required")
	}

	// ------------------------------------------------------------
	// TRIGGER + LOGGING
	// ------------------------------------------------------------

	switch cfg.Trigger.Mode {
	case ModeLevel, ModeEdge:
	default:
		return fmt.Errorf("trigger: unsupported mode %q (level|edge)", cfg.Trigger.Mode)
	}

	if _, err := logrus.ParseLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	return nil
}
