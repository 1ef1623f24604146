package main

import (
	"os"

	"github.com/robmorgan/lcs/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logger.GetProjectLogger().WithError(err).Error("lcs failed")
		os.Exit(1)
	}
}
