// internal/sink/sink_test.go
package sink

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	cfg "github.com/tamzrod/plc-trigger-logger/internal/config"
	"github.com/tamzrod/plc-trigger-logger/internal/register"
)

func sqliteConfig(t *testing.T) cfg.DatabaseConfig {
	t.Helper()
	return cfg.DatabaseConfig{
		Driver: cfg.DriverSQLite,
		Name:   filepath.Join(t.TempDir(), "production.db"),
	}
}

func newSQLiteSink(t *testing.T, db cfg.DatabaseConfig, migrate bool) *Sink {
	t.Helper()
	s, err := Build(db, 3, nil)
	require.NoError(t, err)
	if migrate {
		require.NoError(t, s.Migrate(context.Background()))
	}
	return s
}

// readRows opens an independent connection so the check does not share state with the sink.
func readRows(t *testing.T, path string) [][8]int64 {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	rows, err := sqlDB.Query(`SELECT unit_id, ID1_Counter, ID2_Counter, OK_Counter, NG_Counter,
		All_Counter, Efficiency, Cycle_Time FROM production_logs`)
	require.NoError(t, err)
	defer rows.Close()

	var out [][8]int64
	for rows.Next() {
		var r [8]int64
		require.NoError(t, rows.Scan(&r[0], &r[1], &r[2], &r[3], &r[4], &r[5], &r[6], &r[7]))
		out = append(out, r)
	}
	require.NoError(t, rows.Err())
	return out
}

func TestSave_PersistsProductionFieldsOnly(t *testing.T) {
	db := sqliteConfig(t)
	s := newSQLiteSink(t, db, true)

	snap := register.Snapshot{10, 5, 8, 2, 10, 95, 12, 1}
	require.NoError(t, s.Save(context.Background(), snap.Production()))

	rows := readRows(t, db.Name)
	require.Len(t, rows, 1)
	assert.Equal(t, [8]int64{3, 10, 5, 8, 2, 10, 95, 12}, rows[0])
}

func TestSave_UsesFirstSevenOfLongerSlice(t *testing.T) {
	db := sqliteConfig(t)
	s := newSQLiteSink(t, db, true)

	require.NoError(t, s.Save(context.Background(), []uint16{1, 2, 3, 4, 5, 6, 7, 1}))

	rows := readRows(t, db.Name)
	require.Len(t, rows, 1)
	assert.Equal(t, [8]int64{3, 1, 2, 3, 4, 5, 6, 7}, rows[0])
}

func TestSave_MaxRegisterValuesVerbatim(t *testing.T) {
	db := sqliteConfig(t)
	s := newSQLiteSink(t, db, true)

	vals := []uint16{65535, 0, 65535, 0, 65535, 0, 65535}
	require.NoError(t, s.Save(context.Background(), vals))

	rows := readRows(t, db.Name)
	require.Len(t, rows, 1)
	assert.Equal(t, [8]int64{3, 65535, 0, 65535, 0, 65535, 0, 65535}, rows[0])
}

func TestSave_InsufficientDataOpensNothing(t *testing.T) {
	opened := 0
	s, err := New(func() (*gorm.DB, error) {
		opened++
		return nil, errors.New("must not be called")
	}, 3, nil)
	require.NoError(t, err)

	err = s.Save(context.Background(), []uint16{1, 2, 3, 4, 5, 6})
	assert.ErrorIs(t, err, register.ErrInsufficientData)
	assert.Equal(t, 0, opened)

	err = s.Save(context.Background(), nil)
	assert.ErrorIs(t, err, register.ErrInsufficientData)
}

func TestSave_ConnectFailureIsReported(t *testing.T) {
	s, err := New(func() (*gorm.DB, error) {
		return nil, errors.New("dial tcp 127.0.0.1:3306: connection refused")
	}, 3, nil)
	require.NoError(t, err)

	err = s.Save(context.Background(), []uint16{1, 2, 3, 4, 5, 6, 7})
	require.Error(t, err)
	assert.NotErrorIs(t, err, register.ErrInsufficientData)
}

func TestSave_MissingTableIsReported(t *testing.T) {
	s := newSQLiteSink(t, sqliteConfig(t), false)

	err := s.Save(context.Background(), []uint16{1, 2, 3, 4, 5, 6, 7})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink: insert")
}

func TestSave_UnopenableDatabase(t *testing.T) {
	db := cfg.DatabaseConfig{
		Driver: cfg.DriverSQLite,
		Name:   filepath.Join(t.TempDir(), "no-such-dir", "production.db"),
	}
	s := newSQLiteSink(t, db, false)

	err := s.Save(context.Background(), []uint16{1, 2, 3, 4, 5, 6, 7})
	require.Error(t, err)
}

func TestSave_EachCallOpensAndReleases(t *testing.T) {
	db := sqliteConfig(t)
	dialector, err := Dialector(db)
	require.NoError(t, err)

	var handles []*gorm.DB
	s, err := New(func() (*gorm.DB, error) {
		g, err := gorm.Open(dialector(), &gorm.Config{})
		handles = append(handles, g)
		return g, err
	}, 3, nil)
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Save(context.Background(), []uint16{1, 2, 3, 4, 5, 6, uint16(i)}))
	}

	require.Len(t, handles, 4) // migrate + three saves
	for _, h := range handles {
		sqlDB, err := h.DB()
		require.NoError(t, err)
		assert.Error(t, sqlDB.Ping(), "connection should be closed after the call")
	}
	assert.Len(t, readRows(t, db.Name), 3)
}

func TestDialector_DSNs(t *testing.T) {
	my := cfg.DatabaseConfig{Driver: cfg.DriverMySQL, Host: "localhost", Port: 3306, User: "admin", Password: "admin1234", Name: "s7_logging_db"}
	assert.Equal(t, "admin:admin1234@tcp(localhost:3306)/s7_logging_db?charset=utf8mb4&parseTime=True&loc=Local", mysqlDSN(my))

	pg := cfg.DatabaseConfig{Driver: cfg.DriverPostgres, Host: "db", Port: 5432, User: "u", Password: "p", Name: "n"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable", postgresDSN(pg))

	for _, d := range []string{cfg.DriverMySQL, cfg.DriverPostgres, cfg.DriverSQLite} {
		f, err := Dialector(cfg.DatabaseConfig{Driver: d, Name: "x"})
		require.NoError(t, err, d)
		assert.Equal(t, d, f().Name())
	}

	_, err := Dialector(cfg.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}
