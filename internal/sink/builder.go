// internal/sink/builder.go
package sink

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	cfg "github.com/tamzrod/plc-trigger-logger/internal/config"
)

// Build constructs a Sink for the configured database.
// No connection is opened here; each Save opens its own.
func Build(db cfg.DatabaseConfig, unitID uint8, log *logrus.Entry) (*Sink, error) {
	dialector, err := Dialector(db)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	gormCfg := &gorm.Config{
		Logger: gormlogger.New(
			log.WithField("component", "gorm"),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormLevel(log.Logger.GetLevel()),
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	}

	open := func() (*gorm.DB, error) {
		return gorm.Open(dialector(), gormCfg)
	}

	return New(open, unitID, log)
}

// Dialector returns a factory producing a fresh gorm dialector per connection.
func Dialector(db cfg.DatabaseConfig) (func() gorm.Dialector, error) {
	switch db.Driver {
	case cfg.DriverMySQL:
		dsn := mysqlDSN(db)
		return func() gorm.Dialector { return mysql.Open(dsn) }, nil
	case cfg.DriverPostgres:
		dsn := postgresDSN(db)
		return func() gorm.Dialector { return postgres.Open(dsn) }, nil
	case cfg.DriverSQLite:
		path := db.Name
		return func() gorm.Dialector { return sqlite.Open(path) }, nil
	default:
		return nil, fmt.Errorf("sink: unsupported driver %q", db.Driver)
	}
}

func mysqlDSN(db cfg.DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		db.User,
		db.Password,
		net.JoinHostPort(db.Host, strconv.Itoa(int(db.Port))),
		db.Name,
	)
}

func postgresDSN(db cfg.DatabaseConfig) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		db.Host,
		db.User,
		db.Password,
		db.Name,
		db.Port,
	)
}

func gormLevel(l logrus.Level) gormlogger.LogLevel {
	switch {
	case l >= logrus.TraceLevel:
		return gormlogger.Info
	case l >= logrus.WarnLevel:
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}
