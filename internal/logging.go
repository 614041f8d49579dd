// Package internal holds process-wide plumbing shared by the command and the
// library packages. It is not part of the public API.
package internal

import (
	"fmt"
	"io"
	"os"
	"strings"

	clog "github.com/charmbracelet/log"

	"github.com/theoremus-urban-solutions/transit-fares/errs"
)

// Logger is the process logger. It writes to stderr so that command output on
// stdout stays machine readable.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05.000",
	Level:           clog.InfoLevel,
})

// InitLogging sets the level of Logger. An empty level means info.
func InitLogging(level string) error {
	level = strings.TrimSpace(level)
	if level == "" {
		level = "info"
	}
	lvl, err := clog.ParseLevel(level)
	if err != nil {
		return errs.InvalidConfig("log level %q", level)
	}
	Logger.SetLevel(lvl)
	return nil
}

// SetLogOutput redirects Logger, mostly for tests.
func SetLogOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// Debugf logs at debug level.
func Debugf(format string, v ...any) {
	Logger.Debug(fmt.Sprintf(format, v...))
}

// Infof logs at info level.
func Infof(format string, v ...any) {
	Logger.Info(fmt.Sprintf(format, v...))
}

// Warnf logs at warn level.
func Warnf(format string, v ...any) {
	Logger.Warn(fmt.Sprintf(format, v...))
}
