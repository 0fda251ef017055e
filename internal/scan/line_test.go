package scan

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLineSource_PublishesTrimmedLines(t *testing.T) {
	bus := NewBus()
	var got []Event
	if _, err := bus.Subscribe("collect", func(ev Event) { got = append(got, ev) }); err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}

	input := "\ufeff9780134190440\r\n\n   \n 9780441013593 \nlast-no-newline"
	src := NewLineSource(strings.NewReader(input), "stdin")
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	src.now = func() time.Time { return fixed }

	if err := src.Run(context.Background(), bus); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	var texts []string
	for _, ev := range got {
		texts = append(texts, ev.Text)
		if ev.Source != "stdin" || !ev.At.Equal(fixed) {
			t.Fatalf("event = %+v, want source stdin at fixed time", ev)
		}
	}
	want := []string{"9780134190440", "9780441013593", "last-no-newline"}
	if !reflect.DeepEqual(texts, want) {
		t.Fatalf("texts = %v, want %v", texts, want)
	}
}

func TestLineSource_StopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewLineSource(pr, "pipe").Run(ctx, NewBus()) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error after cancel: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device unplugged") }

func TestLineSource_ReadErrorIsReturned(t *testing.T) {
	err := NewLineSource(failingReader{}, "tty").Run(context.Background(), NewBus())
	if err == nil || !strings.Contains(err.Error(), "read tty") {
		t.Fatalf("Run error = %v, want read tty error", err)
	}
}

func TestOpenDevice(t *testing.T) {
	if _, err := OpenDevice("  "); err == nil {
		t.Fatalf("OpenDevice(blank) returned nil error")
	}
	if _, err := OpenDevice(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("OpenDevice(missing) returned nil error")
	}

	path := filepath.Join(t.TempDir(), "scanner")
	if err := os.WriteFile(path, []byte("123\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	f, err := OpenDevice(path)
	if err != nil {
		t.Fatalf("OpenDevice returned error: %v", err)
	}
	_ = f.Close()
}
