// internal/config/env.go
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ApplyEnv overrides config values from the environment.
// A .env file in the working directory is loaded first if present;
// variables already set in the process environment win over it.
// Malformed numeric values are ignored and the existing value is kept.
func ApplyEnv(cfg *Config) {
	if cfg == nil {
		return
	}

	_ = godotenv.Load()

	setString(&cfg.PLC.Host, "PLC_HOST")
	setUint16(&cfg.PLC.Port, "PLC_PORT")
	setUint8(&cfg.PLC.UnitID, "PLC_UNIT_ID")
	setInt(&cfg.PLC.TimeoutMs, "PLC_TIMEOUT_MS")

	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.Host, "DB_HOST")
	setUint16(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")

	setString(&cfg.Trigger.Mode, "TRIGGER_MODE")

	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.File, "LOG_FILE")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}

func setUint16(dst *uint16, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	if n, err := strconv.ParseUint(v, 10, 16); err == nil {
		*dst = uint16(n)
	}
}

func setUint8(dst *uint8, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	if n, err := strconv.ParseUint(v, 10, 8); err == nil {
		*dst = uint8(n)
	}
}
