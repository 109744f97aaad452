package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// dialSpinner animates on out while a settings or cache backend is being
// connected. It stops on its own when ctx is cancelled.
type dialSpinner struct {
	backend string
	out     io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	mu      sync.Mutex
}

func newDialSpinner(ctx context.Context, out io.Writer, backend string) *dialSpinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &dialSpinner{
		backend: backend,
		out:     out,
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (s *dialSpinner) message() string {
	return "Connecting to " + s.backend + "..."
}

// Start begins the animation.
func (s *dialSpinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				s.mu.Lock()
				fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message()))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop halts the animation and clears the line. It may be called more than
// once.
func (s *dialSpinner) Stop() {
	s.cancel()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	<-s.stopped
	s.clearLine()
}

func (s *dialSpinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message())+4))
}

// dial runs connect behind a spinner. A failure that is not an interrupt is
// reported on out as "<backend> unavailable"; the outcome is logged at debug
// level either way.
func dial[T any](ctx context.Context, out io.Writer, logger *log.Logger, backend string, connect func(context.Context) (T, error)) (T, error) {
	spinner := newDialSpinner(ctx, out, backend)
	prog := newProgress(logger)
	spinner.Start()
	conn, err := connect(ctx)
	spinner.Stop()

	if err != nil {
		if ctx.Err() == nil {
			fmt.Fprintf(out, "%s %s unavailable\n", styleIconError.Render(iconError), backend)
		}
		logger.Debug("backend dial failed", "backend", backend, "error", err)
		return conn, err
	}
	prog.debug("connected", "backend", backend)
	return conn, nil
}
