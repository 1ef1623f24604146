package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// ProjectName is attached to every entry from the project logger.
const ProjectName = "lcs"

var (
	once    sync.Once
	project *logrus.Logger
)

func initialize() {
	project = logrus.New()
	project.SetOutput(os.Stderr)
	project.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	project.SetLevel(logrus.InfoLevel)
}

// GetProjectLogger returns the shared project logger
func GetProjectLogger() *logrus.Entry {
	once.Do(initialize)
	return project.WithField("name", ProjectName)
}

// SetLevel parses level (e.g. "debug", "warn") and applies it to the project logger.
func SetLevel(level string) error {
	once.Do(initialize)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	project.SetLevel(lvl)
	return nil
}
