// Package logger opens the level loader log: a timestamped text file that is
// mirrored to the console.
package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// File is a *log.Logger writing to both a file on disk and a console writer.
type File struct {
	*log.Logger
	f *os.File
}

// Open creates (or truncates) the log file at path, creating its directory,
// and mirrors every line to console. A nil console writes to the file only.
func Open(path string, console io.Writer) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	var w io.Writer = f
	if console != nil {
		w = io.MultiWriter(f, console)
	}
	return &File{
		Logger: log.New(w, "", log.LstdFlags),
		f:      f,
	}, nil
}

// Close flushes and closes the underlying file.
func (l *File) Close() error {
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}
