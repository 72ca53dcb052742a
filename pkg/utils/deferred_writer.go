package utils

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// DeferredWriter holds output back until Flush is called. It is used for
// messages produced while a full-screen program owns the terminal.
// Safe for concurrent use.
type DeferredWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write stores data in the internal buffer.
func (d *DeferredWriter) Write(p []byte) (n int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Write(p)
}

// Printf formats into the buffer.
func (d *DeferredWriter) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(d, format, args...)
}

// Len returns the number of buffered bytes.
func (d *DeferredWriter) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Len()
}

// Flush writes all buffered data to w and clears the buffer.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.buf.Len() == 0 {
		return nil
	}

	_, err := d.buf.WriteTo(w)
	return err
}
