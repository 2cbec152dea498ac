// internal/config/config.go
package config

type Config struct {
	PLC      PLCConfig      `yaml:"plc"`
	Database DatabaseConfig `yaml:"database"`
	Trigger  TriggerConfig  `yaml:"trigger"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ---- PLC ----

type PLCConfig struct {
	Host      string `yaml:"host"`
	Port      uint16 `yaml:"port"`
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- DATABASE ----

type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // mysql | postgres | sqlite
	Host     string `yaml:"host"`
	Port     uint16 `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	// Name is the database name, or the file path for sqlite.
	Name string `yaml:"name"`

	// AutoMigrate creates production_logs at startup. Off by default:
	// the production schema is owned by the database side.
	AutoMigrate bool `yaml:"auto_migrate"`
}

// ---- TRIGGER ----

type TriggerConfig struct {
	Mode string `yaml:"mode"` // level | edge
}

// ---- LOGGING ----

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // optional, appended alongside stdout
}

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	ModeLevel = "level"
	ModeEdge  = "edge"
)

// Defaults mirror the fixed constants of the field installation.
const (
	DefaultPLCHost   = "192.168.1.3"
	DefaultPLCPort   = 506
	DefaultUnitID    = 3
	DefaultTimeoutMs = 3000

	DefaultDBDriver = DriverMySQL
	DefaultDBHost   = "localhost"
	DefaultDBUser   = "admin"
	DefaultDBName   = "s7_logging_db"

	DefaultLogLevel = "info"
)

// DefaultDBPort returns the conventional port for a driver, 0 for sqlite.
func DefaultDBPort(driver string) uint16 {
	switch driver {
	case DriverMySQL:
		return 3306
	case DriverPostgres:
		return 5432
	default:
		return 0
	}
}
