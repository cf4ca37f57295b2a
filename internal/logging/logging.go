// Package logging hands out prefixed charmbracelet loggers that share one
// output and level.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/rotisserie/eris"
)

var (
	mu      sync.Mutex
	out     io.Writer = os.Stderr
	level             = log.InfoLevel
	loggers           = map[string]*log.Logger{}
)

// Configure sets the level and output of every logger, including ones
// already handed out.
func Configure(w io.Writer, levelName string) error {
	lvl, err := log.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		return eris.Wrapf(err, "invalid log level %q", levelName)
	}

	mu.Lock()
	defer mu.Unlock()
	out = w
	level = lvl
	for _, logger := range loggers {
		logger.SetOutput(w)
		logger.SetLevel(lvl)
	}
	return nil
}

// For returns the logger for a plugin. The name is used as the prefix.
func For(name string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger, ok := loggers[name]; ok {
		return logger
	}
	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          name,
		Level:           level,
	})
	loggers[name] = logger
	return logger
}
