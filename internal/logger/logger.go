// Package logger configures logrus for the command line.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
)

const Service = "zmimport"

// New returns an entry tagged with the service name that writes to out at
// the given level. Colors are only used when out is a terminal.
func New(out io.Writer, level string) (*log.Entry, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	l := log.New()
	l.SetOutput(out)
	l.SetLevel(lvl)
	l.SetFormatter(&log.TextFormatter{
		DisableColors: !isTerminal(out),
		FullTimestamp: true,
	})

	return l.WithField("service", Service), nil
}

// Discard returns an entry that drops everything, for tests and library use.
func Discard() *log.Entry {
	l := log.New()
	l.SetOutput(io.Discard)
	return log.NewEntry(l)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
