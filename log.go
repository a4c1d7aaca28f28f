package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	logging "github.com/op/go-logging"
)

var log = logging.MustGetLogger("plotsr")

var logLevels = []string{"DEBUG", "INFO", "WARN"}

const (
	plainLogFormat = `%{module} - %{level} - %{message}`
	colorLogFormat = `%{color}%{module} - %{level}%{color:reset} - %{message}`
)

// setupLogging sends the log to stderr, coloured when it is a terminal.
func setupLogging(level string) error {
	var lvl logging.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = logging.DEBUG
	case "INFO":
		lvl = logging.INFO
	case "WARN", "WARNING":
		lvl = logging.WARNING
	default:
		return fmt.Errorf("unknown log level %q, expected one of %s", level, strings.Join(logLevels, ", "))
	}
	format := plainLogFormat
	if fd := os.Stderr.Fd(); isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		format = colorLogFormat
	}
	backend := logging.NewLogBackend(colorable.NewColorableStderr(), "", 0)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, logging.MustStringFormatter(format)))
	leveled.SetLevel(lvl, "")
	logging.SetBackend(leveled)
	return nil
}
