package transport

import (
	"bytes"
	"io"

	"golang.org/x/term"
)

// RawTerminal puts fd into raw mode so that keys arrive without Enter.
// When fd is not a terminal it does nothing.
func RawTerminal(fd int) (restore func() error, err error) {
	if !term.IsTerminal(fd) {
		return func() error { return nil }, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() error {
		return term.Restore(fd, state)
	}, nil
}

type crlfWriter struct {
	w io.Writer
}

// CRLF translates LF to CRLF, for logging while the terminal is raw.
func CRLF(w io.Writer) io.Writer {
	return &crlfWriter{w: w}
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
