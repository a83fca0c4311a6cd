package track

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the track package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the track package's logger.
// This must be called before any registry operations.
func SetLogger(l *zap.Logger) {
	logger = l
}

// LogObserver logs every lifecycle event through a zap logger.
type LogObserver struct {
	log *zap.Logger
}

// NewLogObserver creates an observer logging to l, or to the package logger
// when l is nil.
func NewLogObserver(l *zap.Logger) *LogObserver {
	if l == nil {
		l = Logger()
	}
	return &LogObserver{log: l}
}

// OnHandleEvent implements Observer.
func (o *LogObserver) OnHandleEvent(e Event) {
	o.log.Debug("handle lifecycle",
		zap.String("event", e.Type.String()),
		zap.Uint32("id", uint32(e.ID)),
		zap.String("label", e.Label),
		zap.Int("refs", e.Refs),
	)
}
