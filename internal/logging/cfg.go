package logging

import "go.uber.org/zap/zapcore"

// Config is the configuration for the logging subsystem.
type Config struct {
	// Level is the logging level. Anything below warn is silent by
	// default, so a successful run writes nothing besides its output.
	Level zapcore.Level `yaml:"level"`
}

// DefaultLevel is the level used when none is configured.
const DefaultLevel = zapcore.WarnLevel
