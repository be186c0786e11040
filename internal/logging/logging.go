// Package logging installs the process-wide zap logger.
package logging

import (
	"errors"
	"log"
	"os"
	"syscall"

	"go.uber.org/zap"
)

// Init builds a production or development logger, installs it as the global
// zap logger and returns a flush function for shutdown.
func Init(production bool) (*zap.Logger, func()) {
	var (
		logger *zap.Logger
		err    error
	)
	if production {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil && !isIgnorableSyncError(err) {
			log.Printf("failed to sync logger: %v", err)
		}
	}
	return logger, cleanup
}

// stdout/stderr cannot be fsynced on most terminals.
func isIgnorableSyncError(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return errors.Is(pathErr.Err, syscall.EINVAL) || errors.Is(pathErr.Err, syscall.ENOTTY)
	}
	return false
}

// GormWriter routes GORM's logger output through zap.
type GormWriter struct {
	sugar *zap.SugaredLogger
}

func NewGormWriter(logger *zap.Logger) *GormWriter {
	return &GormWriter{sugar: logger.Named("gorm").Sugar()}
}

func (w *GormWriter) Printf(format string, args ...interface{}) {
	w.sugar.Infof(format, args...)
}
