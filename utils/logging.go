package utils

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels passed to logr's V()
const (
	INFO  = 0
	DEBUG = 1
	TRACE = 2
)

// NewLogger builds a console logger that emits V(n) messages for n <= verbosity
func NewLogger(verbosity int) (log logr.Logger, err error) {
	var (
		zl  *zap.Logger
		cfg = zap.NewDevelopmentConfig()
	)
	if verbosity < 0 {
		verbosity = 0
	}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	cfg.DisableStacktrace = true
	if zl, err = cfg.Build(); err != nil {
		return logr.Discard(), err
	}
	log = zapr.NewLogger(zl)
	return
}
