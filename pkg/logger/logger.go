package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName is attached to every entry so API and seed logs can be told
// apart from other services shipping to the same collector.
const ServiceName = "billetera-ia"

var (
	globalLogger *zap.Logger
	once         sync.Once
)

// Init builds the logger shared by the API server and the seed command.
// Later calls are no-ops.
func Init(level string) error {
	var err error
	once.Do(func() {
		globalLogger, err = New(level)
	})
	return err
}

// Get returns the shared logger. Packages reached before Init (tests, the
// seed command's early failures) get one built from LOG_LEVEL.
func Get() *zap.Logger {
	if globalLogger == nil {
		_ = Init(defaultLevel())
	}
	return globalLogger
}

// Named scopes the shared logger to a component such as "llm" or
// "suggestions", which shows up in the logger field of each entry.
func Named(component string) *zap.Logger {
	return Get().Named(component)
}

func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}

// New builds a JSON logger at level. Unknown levels mean info.
func New(level string) (*zap.Logger, error) {
	return newConfig(level).Build()
}

func newConfig(level string) zap.Config {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.InitialFields = map[string]any{"service": ServiceName}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.MessageKey = "message"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.CallerKey = "caller"
	return cfg
}

func defaultLevel() string {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		return level
	}
	return "info"
}
