// internal/sink/sink.go
package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tamzrod/plc-trigger-logger/internal/register"
)

// Opener opens a new database connection. The caller owns and closes it.
type Opener func() (*gorm.DB, error)

// Sink persists production records.
// Every call owns its own short-lived connection; nothing is pooled across calls.
type Sink struct {
	open   Opener
	unitID uint8
	log    *logrus.Entry
}

func New(open Opener, unitID uint8, log *logrus.Entry) (*Sink, error) {
	if open == nil {
		return nil, errors.New("sink: opener required")
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Sink{open: open, unitID: unitID, log: log}, nil
}

// Save inserts one row from the first register.ProductionFields values.
// Fewer values is a caller error: nothing is opened, nothing is inserted.
func (s *Sink) Save(ctx context.Context, values []uint16) error {
	if len(values) < register.ProductionFields {
		return fmt.Errorf("sink: %w: got %d values, need %d",
			register.ErrInsufficientData, len(values), register.ProductionFields)
	}

	rec := newRecord(s.unitID, values)

	return s.withConn(func(db *gorm.DB) error {
		// Create runs in gorm's implicit transaction and commits on success.
		if err := db.WithContext(ctx).Create(&rec).Error; err != nil {
			return fmt.Errorf("sink: insert: %w", err)
		}
		return nil
	})
}

// Migrate creates production_logs if it does not exist.
func (s *Sink) Migrate(ctx context.Context) error {
	return s.withConn(func(db *gorm.DB) error {
		if err := db.WithContext(ctx).AutoMigrate(&ProductionRecord{}); err != nil {
			return fmt.Errorf("sink: migrate: %w", err)
		}
		return nil
	})
}

// withConn opens a connection, runs fn and always releases the connection.
func (s *Sink) withConn(fn func(db *gorm.DB) error) error {
	db, err := s.open()
	if err != nil {
		// gorm.Open may hand back a pool whose first ping failed.
		if db != nil && db.ConnPool != nil {
			s.release(db)
		}
		return fmt.Errorf("sink: connect: %w", err)
	}
	defer s.release(db)

	return fn(db)
}

func (s *Sink) release(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		s.log.WithError(err).Warn("database handle unavailable on release")
		return
	}
	if err := sqlDB.Close(); err != nil {
		s.log.WithError(err).Warn("database close failed")
	}
}
