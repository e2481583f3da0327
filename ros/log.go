package ros

import (
	"github.com/sirupsen/logrus"
)

// ModuleField is the log field naming the package a log line comes from.
const ModuleField = "module"

// DefaultLogger returns the process-wide logrus logger.
func DefaultLogger() *logrus.Logger {
	return logrus.StandardLogger()
}

// NewLogger returns a new, independent logger.
func NewLogger() *logrus.Logger {
	return logrus.New()
}

// ModuleLogger returns an entry of base tagged with the given module name.
// A nil base selects DefaultLogger.
func ModuleLogger(base *logrus.Logger, module string) *logrus.Entry {
	if base == nil {
		base = DefaultLogger()
	}
	return base.WithField(ModuleField, module)
}
