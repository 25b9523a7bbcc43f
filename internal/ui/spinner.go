// Package ui holds the small console affordances shared by the commands.
package ui

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"
)

// Spinner is a lightweight CLI spinner for long-running operations.
// Start/Stop are idempotent; the render loop runs in its own goroutine
// with cooperative shutdown.
type Spinner struct {
	mu       sync.Mutex
	msg      string
	frames   []string
	interval time.Duration
	out      io.Writer
	stopCh   chan struct{}
	doneCh   chan struct{}
	active   bool
	ansi     bool
}

// NewSpinner creates a spinner writing to out with the given message.
func NewSpinner(out io.Writer, message string) *Spinner {
	if out == nil {
		out = os.Stdout
	}
	s := &Spinner{
		msg:      message,
		frames:   []string{"⠋", "⠙", "⠚", "⠞", "⠖", "⠦", "⠴", "⠲", "⠳", "⠓"},
		interval: 90 * time.Millisecond,
		out:      out,
		ansi:     runtime.GOOS != "windows",
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	if !s.ansi {
		s.frames = []string{"-", "\\", "|", "/"}
	}
	return s
}

// Start begins rendering. Repeated calls are ignored; a stopped spinner
// may be started again.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	stopCh := s.stopCh
	doneCh := s.doneCh
	s.mu.Unlock()

	go func() {
		defer close(doneCh)
		i := 0
		for {
			select {
			case <-stopCh:
				if s.ansi {
					fmt.Fprint(s.out, "\r\x1b[2K")
				} else {
					fmt.Fprint(s.out, "\r")
				}
				return
			default:
				frame := s.frames[i%len(s.frames)]
				i++
				s.mu.Lock()
				msg := s.msg
				s.mu.Unlock()
				if s.ansi {
					fmt.Fprintf(s.out, "\r\x1b[2K\x1b[36m%s\x1b[0m %s", frame, msg)
				} else {
					fmt.Fprintf(s.out, "\r%s %s", frame, msg)
				}
				time.Sleep(s.interval)
			}
		}
	}()
}

// Stop halts rendering and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	close(s.stopCh)
	done := s.doneCh
	s.mu.Unlock()
	<-done
}

// SetMessage updates the message shown next to the spinner.
func (s *Spinner) SetMessage(m string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msg = m
}

// Active reports whether the spinner is running.
func (s *Spinner) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}
