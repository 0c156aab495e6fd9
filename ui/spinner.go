package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// spinnerFrames cycle through the classic braille spinner.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const frameInterval = 100 * time.Millisecond

// Spinner renders a transient progress line with an elapsed-time counter
// while a long call runs. On a non-terminal file it degrades to a single
// static line so piped output stays clean.
//
// Start and Stop must be called from the same goroutine.
type Spinner struct {
	w     io.Writer
	label string

	static  bool
	started time.Time
	width   int

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewSpinner returns an unstarted spinner writing to w.
func NewSpinner(w io.Writer, label string) *Spinner {
	static := false
	if f, ok := w.(*os.File); ok {
		static = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	return &Spinner{
		w:      w,
		label:  label,
		static: static,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start begins rendering and returns immediately.
func (s *Spinner) Start() {
	s.started = time.Now()
	if s.static {
		fmt.Fprintln(s.w, s.label)
		close(s.done)
		return
	}

	s.render(0)
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		for i := 1; ; i++ {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.render(i)
			}
		}
	}()
}

func (s *Spinner) render(i int) {
	frame := SpinnerStyle.Render(spinnerFrames[i%len(spinnerFrames)])
	elapsed := time.Since(s.started).Round(time.Second)
	line := fmt.Sprintf("%s %s %s", frame, s.label, DimStyle.Render(elapsed.String()))
	if w := lipgloss.Width(line); w > s.width {
		s.width = w
	}
	fmt.Fprintf(s.w, "\r%s", line)
}

// Stop halts the animation and erases the line. Calling Stop again, or on a
// spinner that never started, is a no-op.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		if s.static || s.started.IsZero() {
			return
		}
		close(s.stop)
		<-s.done
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	})
}
