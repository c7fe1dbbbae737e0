package main

import (
	"log/slog"
	"os"

	"github.com/YuminosukeSato/framelearn/cmd/framelearn/cmd"
	"github.com/YuminosukeSato/framelearn/pkg/log"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if setupErr := log.SetupLogger(os.Stderr, "error"); setupErr == nil {
			slog.Error("command failed", log.ErrAttr(err))
		}
		os.Exit(1)
	}
}
