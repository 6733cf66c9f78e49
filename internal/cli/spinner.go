package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mcbanners/banners/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// stageSpinner draws an animated status line while a banner is produced.
// Registered as the pipeline hooks, it follows the stages: the line reads
// "Resolving spigot_author..." while upstreams are queried and
// "Composing png..." while the image is drawn.
type stageSpinner struct {
	observability.NoopPipelineHooks

	w      io.Writer
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	message string
	widest  int
	started bool

	stopOnce sync.Once
	done     chan struct{}
	stopped  chan struct{}
}

// newStageSpinner returns a spinner writing to w. It stops drawing when ctx
// is cancelled.
func newStageSpinner(parent context.Context, w io.Writer, message string) *stageSpinner {
	ctx, cancel := context.WithCancel(parent)
	s := &stageSpinner{
		w:       w,
		parent:  parent,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	s.SetMessage(message)
	return s
}

// Start begins the animation. Calling it twice has no effect.
func (s *stageSpinner) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			s.draw(spinnerFrames[i%len(spinnerFrames)])
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
			}
		}
	}()
}

// SetMessage replaces the status text from the next frame on.
func (s *stageSpinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	if n := utf8.RuneCountInString(message); n > s.widest {
		s.widest = n
	}
	s.mu.Unlock()
}

func (s *stageSpinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
}

// Stop ends the animation and clears the line. It is safe to call more than
// once, and before Start; a stopped spinner never starts again.
func (s *stageSpinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		close(s.done)

		s.mu.Lock()
		started := s.started
		s.started = true
		s.mu.Unlock()
		if started {
			<-s.stopped
		}
		s.clearLine()
	})
}

// Fail stops the spinner and prints message as an error.
func (s *stageSpinner) Fail(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the parent context has ended.
func (s *stageSpinner) Cancelled() bool {
	return s.parent.Err() != nil
}

func (s *stageSpinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.widest+2))
}

// OnResolveStart implements observability.PipelineHooks.
func (s *stageSpinner) OnResolveStart(_ context.Context, bannerType string) {
	s.SetMessage(fmt.Sprintf("Resolving %s...", strings.ToLower(bannerType)))
}

// OnRenderStart implements observability.PipelineHooks.
func (s *stageSpinner) OnRenderStart(_ context.Context, format string) {
	s.SetMessage(fmt.Sprintf("Composing %s...", format))
}

var _ observability.PipelineHooks = (*stageSpinner)(nil)
