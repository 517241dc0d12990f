package output

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner displays an animated spinner with a status message while a
// long-running operation (typically a confirmation poll) is in flight.
// Safe for concurrent updates.
type Spinner struct {
	out     io.Writer
	frame   int
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	running bool
}

// NewSpinner creates a Spinner writing to stderr.
func NewSpinner() *Spinner {
	return &Spinner{out: os.Stderr}
}

// Start begins the animation with the given message.
func (s *Spinner) Start(message string) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.message = message
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		defer close(s.done)

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.render()
			}
		}
	}()
}

// Update changes the message without restarting the animation.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
	s.render()
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	s.mu.Unlock()

	<-s.done
	fmt.Fprintf(s.out, "\r%80s\r", "")
}

func (s *Spinner) render() {
	s.mu.Lock()
	msg := s.message
	idx := s.frame
	s.frame = (s.frame + 1) % len(spinnerFrames)
	s.mu.Unlock()

	fmt.Fprintf(s.out, "\r%s %s          ", spinnerFrames[idx], msg)
}
