// Package logging builds the logrus logger shared by every component.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	ioutils "github.com/handiism/lutris-art-fetcher/internal/io"
)

// FileName is the log file written in TUI mode.
const FileName = "fetcher.log"

// New returns a text logger writing to w. verbose enables debug entries.
func New(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// NewFile returns a logger appending to dir/fetcher.log, for when the
// terminal belongs to the TUI. The returned closer closes the file.
func NewFile(dir string, verbose bool) (*logrus.Logger, io.Closer, error) {
	if err := ioutils.EnsureDir(dir); err != nil {
		return nil, nil, errors.Wrap(err, "failed to create log directory")
	}

	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open log file %s", path)
	}

	log := New(f, verbose)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		DisableColors:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	return log, f, nil
}
