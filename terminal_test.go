package termcore

import (
	"strings"
	"testing"
	"time"
)

func newTestTerminal(t *testing.T, args ...string) *Terminal {
	t.Helper()
	term, err := New(WithShell("/bin/sh", args...), WithSize(24, 80))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return term
}

// pumpUntil drives the terminal until cond is true, the session ends, or
// the deadline passes.
func pumpUntil(t *testing.T, term *Terminal, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		alive, err := term.Pump()
		if err != nil {
			t.Fatalf("Pump: %v", err)
		}
		if cond() {
			return
		}
		if !alive {
			// One extra drain in case output raced the exit.
			if _, err := term.Pump(); err == nil && cond() {
				return
			}
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if !cond() {
		t.Fatalf("condition never met; screen:\n%s", term.String())
	}
}

func TestTerminalEndToEnd(t *testing.T) {
	term := newTestTerminal(t, "-c", "echo hello")
	defer term.Close()

	pumpUntil(t, term, 3*time.Second, func() bool {
		return strings.Contains(term.String(), "hello")
	})

	if row, col := term.CursorPos(); row == 0 && col == 0 && term.Line(0) == "" {
		t.Error("expected the screen to have advanced")
	}
}

func TestTerminalSend(t *testing.T) {
	term := newTestTerminal(t, "-c", "cat")
	defer term.Close()

	if _, err := term.Send([]byte("marco\n")); err != nil {
		t.Fatalf("Send: %v", err)
	}

	pumpUntil(t, term, 3*time.Second, func() bool {
		return strings.Contains(term.String(), "marco")
	})
}

func TestTerminalDefaults(t *testing.T) {
	term := newTestTerminal(t, "-c", "sleep 30")
	defer term.Close()

	if term.Rows() != 24 || term.Cols() != 80 {
		t.Errorf("expected 24x80, got %dx%d", term.Rows(), term.Cols())
	}
	if row, col := term.CursorPos(); row != 0 || col != 0 {
		t.Errorf("expected cursor at origin, got (%d,%d)", row, col)
	}
	if !term.IsAlive() {
		t.Error("expected live session")
	}
	if term.Pid() <= 0 {
		t.Errorf("expected positive pid, got %d", term.Pid())
	}
}

func TestTerminalProcessReplay(t *testing.T) {
	term := newTestTerminal(t, "-c", "sleep 30")
	defer term.Close()

	term.Process([]byte("replayed \x1b[32mgreen\x1b[0m"))

	if got := term.Line(0); got != "replayed green" {
		t.Errorf("expected %q, got %q", "replayed green", got)
	}
	if term.Cell(0, 9).Fg != ColorGreen {
		t.Errorf("expected green fg, got %d", term.Cell(0, 9).Fg)
	}
}

func TestTerminalResize(t *testing.T) {
	term := newTestTerminal(t, "-c", "sleep 30")
	defer term.Close()

	term.Process([]byte("\x1b[24;80Hx")) // park the cursor in the far corner
	term.Resize(10, 40)

	if term.Rows() != 10 || term.Cols() != 40 {
		t.Errorf("expected 10x40, got %dx%d", term.Rows(), term.Cols())
	}
	if term.Cell(9, 39) == nil {
		t.Error("expected cell at new far corner")
	}
	row, col := term.CursorPos()
	if row > 9 || col > 39 {
		t.Errorf("expected cursor clamped into new bounds, got (%d,%d)", row, col)
	}

	// Degenerate requests clamp to the 1x1 minimum.
	term.Resize(0, 0)
	if term.Rows() != 1 || term.Cols() != 1 {
		t.Errorf("expected 1x1, got %dx%d", term.Rows(), term.Cols())
	}
}

func TestTerminalDirtyTracking(t *testing.T) {
	term := newTestTerminal(t, "-c", "sleep 30")
	defer term.Close()

	term.ClearDirty()
	if term.HasDirty() {
		t.Error("expected clean screen")
	}

	term.Process([]byte("paint"))
	if !term.HasDirty() {
		t.Error("expected dirty screen after output")
	}
}

func TestTerminalCloseTwice(t *testing.T) {
	term := newTestTerminal(t, "-c", "sleep 30")

	term.Close()

	start := time.Now()
	term.Close()
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("second close took %v, expected an immediate return", elapsed)
	}

	if term.IsAlive() {
		t.Error("expected dead session after close")
	}
}

func TestTerminalBellProvider(t *testing.T) {
	bell := &recordingBell{}
	term, err := New(WithShell("/bin/sh", "-c", "sleep 30"), WithBell(bell))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer term.Close()

	term.Process([]byte("\x07\x07"))
	if bell.rings != 2 {
		t.Errorf("expected 2 rings, got %d", bell.rings)
	}
}
