// internal/config/normalize.go
package config

import "strings"

// Normalize fills unset values with defaults.
// It is allowed to mutate configuration.
// It MUST be called before Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// ------------------------------------------------------------
	// PLC
	// ------------------------------------------------------------

	if cfg.PLC.Host == "" {
		cfg.PLC.Host = DefaultPLCHost
	}
	if cfg.PLC.Port == 0 {
		cfg.PLC.Port = DefaultPLCPort
	}
	// Unit id 0 is a valid broadcast address on the wire but never a
	// meaningful read target, so it is treated as unset.
	if cfg.PLC.UnitID == 0 {
		cfg.PLC.UnitID = DefaultUnitID
	}
	if cfg.PLC.TimeoutMs <= 0 {
		cfg.PLC.TimeoutMs = DefaultTimeoutMs
	}

	// ------------------------------------------------------------
	// DATABASE
	// ------------------------------------------------------------

	db := &cfg.Database
	db.Driver = strings.ToLower(strings.TrimSpace(db.Driver))
	if db.Driver == "" {
		db.Driver = DefaultDBDriver
	}

	if db.Driver != DriverSQLite {
		if db.Host == "" {
			db.Host = DefaultDBHost
		}
		if db.Port == 0 {
			db.Port = DefaultDBPort(db.Driver)
		}
		if db.User == "" {
			db.User = DefaultDBUser
		}
	}
	if db.Name == "" {
		db.Name = DefaultDBName
	}

	// ------------------------------------------------------------
	// TRIGGER + LOGGING
	// ------------------------------------------------------------

	cfg.Trigger.Mode = strings.ToLower(strings.TrimSpace(cfg.Trigger.Mode))
	if cfg.Trigger.Mode == "" {
		cfg.Trigger.Mode = ModeLevel
	}

	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
}
