package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestSpinner_StartStop_NoPanic(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "Testing...")
	s.interval = 10 * time.Millisecond
	s.ansi = true
	s.Start()
	time.Sleep(35 * time.Millisecond)
	s.SetMessage("Almost there")
	time.Sleep(25 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if out == "" {
		t.Fatal("expected output, got empty string")
	}
	if !strings.Contains(out, "\x1b[2K") { // erased line at least once
		t.Error("expected ANSI clear line sequence in output")
	}
	if s.Active() {
		t.Error("spinner should not be active after Stop")
	}
}

func TestSpinner_RestartAfterStop(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "first pass")
	s.interval = 5 * time.Millisecond

	for i := 0; i < 3; i++ {
		s.Start()
		time.Sleep(15 * time.Millisecond)
		s.Stop()
	}

	if s.Active() {
		t.Error("spinner should not be active after final Stop")
	}
	if buf.Len() == 0 {
		t.Fatal("expected output from restarted spinner")
	}
}

func TestSpinner_StopWithoutStart(t *testing.T) {
	s := NewSpinner(&bytes.Buffer{}, "idle")
	s.Stop() // must not panic or block
	if s.Active() {
		t.Error("spinner should not be active")
	}
}
