// cmd/trigger-logger/main.go
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/plc-trigger-logger/internal/config"
	"github.com/tamzrod/plc-trigger-logger/internal/link"
	"github.com/tamzrod/plc-trigger-logger/internal/logging"
	"github.com/tamzrod/plc-trigger-logger/internal/register"
	"github.com/tamzrod/plc-trigger-logger/internal/sink"
	"github.com/tamzrod/plc-trigger-logger/internal/trigger"
)

func main() {
	if len(os.Args) > 2 {
		log.Fatal("usage: trigger-logger [config.yaml]")
	}

	var cfgPath string
	if len(os.Args) == 2 {
		cfgPath = os.Args[1]
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	config.ApplyEnv(cfg)
	config.Normalize(cfg)

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	logger, closeLog, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("logger setup failed: %v", err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --------------------
	// Build link + sink + loop
	// --------------------

	plc, err := link.Build(cfg.PLC, logging.Component(logger, "link"))
	if err != nil {
		logger.Fatalf("link build failed: %v", err)
	}

	store, err := sink.Build(cfg.Database, cfg.PLC.UnitID, logging.Component(logger, "sink"))
	if err != nil {
		logger.Fatalf("sink build failed: %v", err)
	}

	if cfg.Database.AutoMigrate {
		// Startup is the only place a database failure is allowed to stop the process.
		if err := store.Migrate(ctx); err != nil {
			logger.Fatalf("database migrate failed: %v", err)
		}
	}

	mode, err := trigger.ParseMode(cfg.Trigger.Mode)
	if err != nil {
		logger.Fatalf("trigger mode: %v", err)
	}

	loop, err := trigger.New(
		trigger.Config{Mode: mode, Timing: trigger.DefaultTiming()},
		plc,
		store,
		logging.Component(logger, "loop"),
	)
	if err != nil {
		logger.Fatalf("loop build failed: %v", err)
	}

	logger.WithFields(logrus.Fields{
		"plc":     cfg.PLC.Host,
		"port":    cfg.PLC.Port,
		"unit_id": cfg.PLC.UnitID,
		"db":      cfg.Database.Driver,
		"mode":    mode,
	}).Infof("starting trigger-based logger (watching reg%d for command)", register.TriggerIndex)

	// --------------------
	// Run until stopped externally
	// --------------------

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("loop stopped")
	}
	logger.Info("trigger-based logger stopped")
}
