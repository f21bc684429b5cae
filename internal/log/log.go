package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New creates the logger used for diagnostics. Output is plain text with full
// timestamps; verbose switches the level from info to debug.
func New(out io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()

	customFormatter := new(logrus.TextFormatter)
	customFormatter.FullTimestamp = true
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	logger.Formatter = customFormatter

	logger.Level = logrus.InfoLevel
	if verbose {
		logger.Level = logrus.DebugLevel
	}

	logger.Out = out
	return logger
}
