package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestDialConnected(t *testing.T) {
	var out, logs bytes.Buffer
	logger := newLogger(&logs, log.DebugLevel)

	got, err := dial(context.Background(), &out, logger, "redis", func(ctx context.Context) (int, error) {
		time.Sleep(200 * time.Millisecond)
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Fatalf("dial() = %d, %v, want 42, nil", got, err)
	}
	if !strings.Contains(out.String(), "Connecting to redis...") {
		t.Errorf("spinner output %q should name the backend", out.String())
	}
	if strings.Contains(out.String(), "unavailable") {
		t.Errorf("successful dial reported failure: %q", out.String())
	}
	if line := logs.String(); !strings.Contains(line, "connected") || !strings.Contains(line, "backend=redis") {
		t.Errorf("debug log = %q, want connected line for redis", line)
	}
}

func TestDialFailed(t *testing.T) {
	var out, logs bytes.Buffer
	logger := newLogger(&logs, log.InfoLevel)
	refused := stderrors.New("connection refused")

	_, err := dial(context.Background(), &out, logger, "MongoDB", func(ctx context.Context) (*struct{}, error) {
		return nil, refused
	})
	if !stderrors.Is(err, refused) {
		t.Fatalf("dial() error = %v, want %v", err, refused)
	}
	if !strings.Contains(out.String(), "MongoDB unavailable") {
		t.Errorf("output %q should report MongoDB unavailable", out.String())
	}
	if logs.Len() != 0 {
		t.Errorf("dial failure logged at info level: %q", logs.String())
	}
}

func TestDialInterrupted(t *testing.T) {
	var out bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := dial(ctx, &out, newLogger(&bytes.Buffer{}, log.InfoLevel), "redis", func(ctx context.Context) (int, error) {
		return 0, ctx.Err()
	})
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("dial() error = %v, want context.Canceled", err)
	}
	if strings.Contains(out.String(), "unavailable") {
		t.Errorf("interrupted dial should not report the backend unavailable: %q", out.String())
	}
}

func TestDialSpinnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newDialSpinner(ctx, &bytes.Buffer{}, "MongoDB")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner kept running after its context was cancelled")
	}
	s.Stop()
	s.Stop()
}
