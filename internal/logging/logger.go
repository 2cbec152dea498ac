// internal/logging/logger.go
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	cfg "github.com/tamzrod/plc-trigger-logger/internal/config"
)

// TimestampFormat is used on every line.
const TimestampFormat = "2006-01-02 15:04:05.000"

// New builds the process logger. Output goes to stdout and, when
// c.File is set, is also appended to that file.
// The returned closer releases the file.
func New(c cfg.LoggingConfig) (*logrus.Logger, func() error, error) {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, nil, err
	}

	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: TimestampFormat,
		DisableColors:   c.File != "",
	})

	closer := func() error { return nil }

	var out io.Writer = os.Stdout
	if c.File != "" {
		if err := os.MkdirAll(filepath.Dir(c.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		f, err := os.OpenFile(c.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		out = io.MultiWriter(os.Stdout, f)
		closer = f.Close
	}
	l.SetOutput(out)

	return l, closer, nil
}

// Component returns an entry tagged with the component name.
func Component(l *logrus.Logger, name string) *logrus.Entry {
	return l.WithField("component", name)
}
