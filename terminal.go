package termcore

import (
	"errors"
	"strings"

	"go.uber.org/zap"
)

const (
	// DefaultRows is the default number of terminal rows.
	DefaultRows = 24
	// DefaultCols is the default number of terminal columns.
	DefaultCols = 80
)

// Terminal is a complete terminal session: a shell behind a PTY, the
// escape sequence parser, and the screen buffer, glued together by the
// stream processor. It exposes the cell grid and cursor to a rendering
// layer and forwards raw input bytes to the shell.
//
// A Terminal is owned by a single caller; the cooperative Pump loop is the
// only place PTY output is read.
type Terminal struct {
	rows int
	cols int

	buffer    *Buffer
	cursor    *Cursor
	processor *Processor
	pty       *PTY

	bell   BellProvider
	logger *zap.Logger

	ptyOpts PTYOptions
	readBuf []byte
}

// Option configures a Terminal during construction.
type Option func(*Terminal)

// WithSize sets the terminal dimensions.
// Values below 1 are replaced with defaults (24x80).
func WithSize(rows, cols int) Option {
	if rows < 1 {
		rows = DefaultRows
	}
	if cols < 1 {
		cols = DefaultCols
	}

	return func(t *Terminal) {
		t.rows = rows
		t.cols = cols
	}
}

// WithShell sets the shell program and its arguments.
// Defaults to $SHELL, then /bin/sh.
func WithShell(shell string, args ...string) Option {
	return func(t *Terminal) {
		t.ptyOpts.Shell = shell
		t.ptyOpts.Args = args
	}
}

// WithEnv appends entries to the shell's environment.
func WithEnv(env ...string) Option {
	return func(t *Terminal) {
		t.ptyOpts.Env = append(t.ptyOpts.Env, env...)
	}
}

// WithDir sets the shell's working directory.
func WithDir(dir string) Option {
	return func(t *Terminal) {
		t.ptyOpts.Dir = dir
	}
}

// WithLogger sets the logger handed to each component.
// Defaults to a no-op logger, which tests rely on.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Terminal) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithBell sets the handler for bell events.
// Defaults to a no-op if not set.
func WithBell(bell BellProvider) Option {
	return func(t *Terminal) {
		if bell != nil {
			t.bell = bell
		}
	}
}

// New creates a terminal with the given options and spawns the shell
// behind a fresh pseudo-terminal. Failures wrap ErrOpenFailed or
// ErrSpawnFailed.
func New(opts ...Option) (*Terminal, error) {
	t := &Terminal{
		rows:   DefaultRows,
		cols:   DefaultCols,
		bell:   NoopBell{},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(t)
	}

	t.buffer = NewBufferWithLogger(t.rows, t.cols, t.logger)
	t.cursor = NewCursor()
	t.processor = NewProcessor()
	t.processor.SetBell(t.bell)
	t.readBuf = make([]byte, 4096)

	t.ptyOpts.Rows = t.rows
	t.ptyOpts.Cols = t.cols
	t.ptyOpts.Logger = t.logger

	pty, err := OpenPTY(t.ptyOpts)
	if err != nil {
		return nil, err
	}
	t.pty = pty

	return t, nil
}

// Rows returns the terminal height in character rows.
func (t *Terminal) Rows() int {
	return t.rows
}

// Cols returns the terminal width in character columns.
func (t *Terminal) Cols() int {
	return t.cols
}

// Cell returns the cell at (row, col), or nil if out of bounds.
func (t *Terminal) Cell(row, col int) *Cell {
	return t.buffer.Cell(row, col)
}

// CursorPos returns the current cursor position (0-based). After a write
// fills a row the column sits at Cols() until the deferred wrap, so
// renderers drawing a cursor glyph should clamp the column themselves.
func (t *Terminal) CursorPos() (row, col int) {
	return t.cursor.Row, t.cursor.Col
}

// Line returns the text content of a row, trimming trailing spaces.
func (t *Terminal) Line(row int) string {
	return t.buffer.Line(row)
}

// String returns the visible screen content, one line per row with
// trailing blank columns trimmed.
func (t *Terminal) String() string {
	lines := make([]string, t.rows)
	for row := 0; row < t.rows; row++ {
		lines[row] = t.buffer.Line(row)
	}
	return strings.Join(lines, "\n")
}

// HasDirty returns true if the screen changed since the last ClearDirty.
func (t *Terminal) HasDirty() bool {
	return t.buffer.HasDirty()
}

// ClearDirty resets change tracking. The rendering layer calls this after
// repainting.
func (t *Terminal) ClearDirty() {
	t.buffer.ClearDirty()
}

// Pid returns the shell's process identifier.
func (t *Terminal) Pid() int {
	return t.pty.Pid()
}

// IsAlive reports whether the shell process is still running.
func (t *Terminal) IsAlive() bool {
	return t.pty.IsAlive()
}

// Send forwards raw bytes to the shell's input. The terminal has no
// opinion on how keystrokes become bytes; that is the input layer's job.
func (t *Terminal) Send(data []byte) (int, error) {
	return t.pty.Write(data)
}

// Pump performs one cooperative polling step: while the PTY has data,
// read it and apply it to the screen. Returns false once the session is
// over (shell exited or the PTY was lost). Errors other than the routine
// would-block are returned after draining stops.
func (t *Terminal) Pump() (bool, error) {
	for t.pty.HasData() {
		n, err := t.pty.Read(t.readBuf)
		if err != nil {
			if errors.Is(err, ErrWouldBlock) {
				break
			}
			return false, err
		}
		t.processor.Process(t.readBuf[:n], t.buffer, t.cursor)
	}

	return t.pty.IsAlive(), nil
}

// Process applies raw shell output directly to the screen, bypassing the
// PTY. Useful for replaying recorded output.
func (t *Terminal) Process(data []byte) {
	t.processor.Process(data, t.buffer, t.cursor)
}

// Resize changes the screen geometry, propagating it to both the buffer
// and the PTY so the shell's line discipline learns the new size. The
// cursor is clamped into the new bounds. Values below 1 are clamped to 1.
func (t *Terminal) Resize(rows, cols int) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}

	t.rows = rows
	t.cols = cols
	t.buffer.Resize(rows, cols)
	t.cursor.Row = clamp(t.cursor.Row, 0, rows-1)
	t.cursor.Col = clamp(t.cursor.Col, 0, cols-1)
	t.pty.Resize(rows, cols)
}

// Close shuts down the shell process (with SIGTERM/SIGKILL escalation)
// and releases the PTY handles. Safe to call more than once.
func (t *Terminal) Close() {
	t.pty.Shutdown()
}
