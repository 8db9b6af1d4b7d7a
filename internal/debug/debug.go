// Package debug holds the logger shared by the rest of the module.
//
// The level is taken from $WLUI_LOG_LEVEL and defaults to info.
// Setting $WAYLAND_DEBUG to a positive number additionally traces
// every protocol message at debug level, the same way libwayland does.
package debug

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

var Logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix:          "wlui",
	ReportTimestamp: true,
})

var trace bool

func init() {
	if lvl, ok := os.LookupEnv("WLUI_LOG_LEVEL"); ok {
		SetLevel(lvl)
	}

	debugLevel, err := strconv.ParseInt(os.Getenv("WAYLAND_DEBUG"), 10, 0)
	if err != nil {
		return
	}
	if debugLevel > 0 {
		trace = true
		Logger.SetLevel(log.DebugLevel)
	}
}

// SetLevel sets the level of the shared logger by name. Unknown names
// leave the level unchanged.
func SetLevel(level string) error {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return err
	}
	Logger.SetLevel(lvl)
	return nil
}

// With returns a child of the shared logger with the given key-value
// pairs attached to every message.
func With(keyvals ...any) *log.Logger {
	return Logger.With(keyvals...)
}

// Tracing reports whether protocol messages are being traced.
func Tracing() bool {
	return trace
}

// Printf logs a protocol trace message. It does nothing unless
// $WAYLAND_DEBUG is set.
func Printf(str string, args ...any) {
	if trace {
		Logger.Debugf(str, args...)
	}
}
