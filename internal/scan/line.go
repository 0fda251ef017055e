package scan

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// maxLineBytes bounds a single decoded line.
const maxLineBytes = 64 << 10

// LineSource publishes each newline-terminated line read from r.
type LineSource struct {
	r    io.Reader
	name string
	now  func() time.Time
}

// NewLineSource wraps r. name is recorded as the Event source.
func NewLineSource(r io.Reader, name string) *LineSource {
	return &LineSource{r: r, name: name, now: time.Now}
}

// Name returns the source label.
func (s *LineSource) Name() string {
	return s.name
}

// Run reads lines until EOF, a read error, or ctx is cancelled. EOF is not
// an error.
func (s *LineSource) Run(ctx context.Context, bus *Bus) error {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(s.r)
		scanner.Buffer(make([]byte, 0, 1024), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line := <-lines:
			text := strings.TrimSpace(strings.TrimPrefix(line, "\ufeff"))
			bus.Publish(Event{Text: text, At: s.now(), Source: s.name})
		case err := <-errc:
			if err != nil && !errors.Is(err, os.ErrClosed) {
				return fmt.Errorf("read %s: %w", s.name, err)
			}
			return nil
		}
	}
}

// OpenDevice opens a scanner device, FIFO or file for reading.
func OpenDevice(path string) (*os.File, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("scan device path is empty")
	}
	f, err := os.Open(trimmed)
	if err != nil {
		return nil, fmt.Errorf("open scan device: %w", err)
	}
	return f, nil
}
