// Package logging builds the logrus loggers shared by the selection engine and the CLI.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// DefaultLevel is used when no level is configured
const DefaultLevel = logrus.InfoLevel

// New creates a logger writing text records at level to out. A nil out writes to stderr.
func New(level logrus.Level, out io.Writer) *logrus.Entry {
	if out == nil {
		out = os.Stderr
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})

	return logrus.NewEntry(logger)
}

// ParseLevel parses a level name, falling back to DefaultLevel for an empty name.
func ParseLevel(name string) (logrus.Level, error) {
	if name == "" {
		return DefaultLevel, nil
	}
	return logrus.ParseLevel(name)
}

// Discard returns a logger that drops every record.
func Discard() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}
