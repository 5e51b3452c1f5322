package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a JSON logrus logger writing to stdout. Unknown levels
// fall back to info.
func NewLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		log.WithField("level", level).Warn("Unknown LOG_LEVEL, using info")
	}
	log.SetLevel(lvl)
	return log
}
