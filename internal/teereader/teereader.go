// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teereader

import (
	"bytes"
	"io"
	"strings"
	"sync"
)

// CaptureReader wraps an io.Reader, keeping up to a limit of the data read,
// copying everything to an optional echo writer and remembering the last line.
// It is safe for concurrent use.
type CaptureReader struct {
	reader     io.Reader
	echo       io.Writer
	limit      int64
	buf        bytes.Buffer
	overflowed bool
	lastLine   string
	partial    strings.Builder
	mu         sync.RWMutex
}

// Option configures a CaptureReader.
type Option func(*CaptureReader)

// WithEcho copies all data read to w. Write errors on w are ignored.
func WithEcho(w io.Writer) Option {
	return func(c *CaptureReader) {
		c.echo = w
	}
}

// WithLimit bounds the captured buffer to n bytes, data beyond it is still read and echoed.
// A limit of zero or less captures everything.
func WithLimit(n int64) Option {
	return func(c *CaptureReader) {
		c.limit = n
	}
}

// New creates a CaptureReader reading from r.
func New(r io.Reader, opts ...Option) *CaptureReader {
	c := &CaptureReader{
		reader: r,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Read implements io.Reader.
func (c *CaptureReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	if n > 0 {
		c.mu.Lock()
		c.capture(p[:n])
		c.trackLines(string(p[:n]))
		c.mu.Unlock()

		if c.echo != nil {
			_, _ = c.echo.Write(p[:n])
		}
	}

	return n, err //nolint:wrapcheck
}

// capture must be called with the write lock held.
func (c *CaptureReader) capture(data []byte) {
	if c.limit <= 0 {
		c.buf.Write(data)
		return
	}

	room := c.limit - int64(c.buf.Len())
	if int64(len(data)) > room {
		c.overflowed = true
		data = data[:max(room, 0)]
	}

	c.buf.Write(data)
}

// trackLines must be called with the write lock held.
func (c *CaptureReader) trackLines(data string) {
	c.partial.WriteString(data)

	lines := strings.Split(c.partial.String(), "\n")
	if len(lines) == 1 {
		return
	}

	c.lastLine = strings.TrimSuffix(lines[len(lines)-2], "\r")
	c.partial.Reset()
	c.partial.WriteString(lines[len(lines)-1])
}

// Bytes returns a copy of the captured data.
func (c *CaptureReader) Bytes() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return bytes.Clone(c.buf.Bytes())
}

// Overflowed reports whether data was dropped because of the limit.
func (c *CaptureReader) Overflowed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.overflowed
}

// LastLine returns the last complete line read, or the pending partial line
// when no newline has been seen since.
// If maxLength > 3 and the line is longer, it is truncated and "..." appended.
func (c *CaptureReader) LastLine(maxLength int) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	line := c.lastLine
	if p := c.partial.String(); p != "" {
		line = p
	}

	if maxLength > 3 && len(line) > maxLength {
		line = line[:maxLength-3] + "..."
	}

	return line
}
