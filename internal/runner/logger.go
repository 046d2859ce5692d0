package runner

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides structured logging for apply runs.
type Logger struct {
	zap *zap.Logger
}

// NewLogger creates a new Logger instance that writes JSON lines to a file.
// If logPath is empty, logging is disabled.
func NewLogger(logPath string) (*Logger, error) {
	if logPath == "" {
		// No logging
		return &Logger{zap: zap.NewNop()}, nil
	}

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(logFile),
		zapcore.InfoLevel,
	)

	return &Logger{zap: zap.New(core)}, nil
}

// Close syncs the logger (should be called on shutdown).
func (l *Logger) Close() error {
	return l.zap.Sync()
}

// BlocksExtracted logs how many diff blocks a response contained.
func (l *Logger) BlocksExtracted(count, parseable int) {
	l.zap.Info("blocks extracted",
		zap.Int("count", count),
		zap.Int("parseable", parseable),
	)
}

// BlockApplied logs a block folded into a file write.
func (l *Logger) BlockApplied(blockID, fileName string) {
	l.zap.Info("block applied",
		zap.String("block", blockID),
		zap.String("file", fileName),
	)
}

// ApplyFailed logs a block that could not be applied.
func (l *Logger) ApplyFailed(blockID, fileName string, err error) {
	l.zap.Warn("apply failed",
		zap.String("block", blockID),
		zap.String("file", fileName),
		zap.Error(err),
	)
}

// FileWritten logs a completed note write.
func (l *Logger) FileWritten(fileName string, blocks int, dryRun bool) {
	l.zap.Info("file written",
		zap.String("file", fileName),
		zap.Int("blocks", blocks),
		zap.Bool("dry_run", dryRun),
	)
}

// Error logs an error.
func (l *Logger) Error(msg string, err error) {
	l.zap.Error(msg, zap.Error(err))
}
