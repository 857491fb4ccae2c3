package termcore

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/creack/pty"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// shutdownGrace is how long Shutdown waits for the child to honor SIGTERM
// before escalating to SIGKILL.
const shutdownGrace = 100 * time.Millisecond

// PTYOptions configures the shell process started behind a new
// pseudo-terminal. Zero values use sensible defaults.
type PTYOptions struct {
	// Shell is the program to run. Defaults to $SHELL, then /bin/sh.
	Shell string

	// Args are passed to the shell.
	Args []string

	// Env entries are appended to the inherited environment.
	// TERM=xterm-256color is always set.
	Env []string

	// Dir is the working directory. Empty means inherit.
	Dir string

	// Rows and Cols set the initial window geometry. Defaults to 24x80.
	Rows int
	Cols int

	// Logger receives resize and signal-delivery warnings.
	// Defaults to a no-op logger.
	Logger *zap.Logger
}

// PTY owns the master/slave pseudo-terminal pair and the child shell
// process behind it. It provides non-blocking byte I/O, readiness polling,
// liveness checks, and termination with escalation.
//
// A PTY is exclusively owned by one session at a time; it performs no
// internal locking.
type PTY struct {
	master *os.File
	slave  *os.File
	fd     int
	pid    int

	terminated bool
	closed     bool

	logger *zap.Logger
}

// OpenPTY allocates a new master/slave pseudo-terminal pair, spawns the
// shell attached to the slave as its controlling terminal, and switches
// the master to non-blocking mode.
//
// Failures wrap ErrOpenFailed (device allocation or non-blocking setup) or
// ErrSpawnFailed (process creation).
func OpenPTY(opts PTYOptions) (*PTY, error) {
	shell := opts.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}

	rows, cols := opts.Rows, opts.Cols
	if rows <= 0 {
		rows = 24
	}
	if cols <= 0 {
		cols = 80
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	master, slave, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}

	// os.File.Fd puts the descriptor back into blocking mode, so it is
	// called exactly once; all later I/O and ioctls go through this fd.
	fd := int(master.Fd())

	if err := setWinsize(fd, rows, cols); err != nil {
		logger.Warn("setting initial pty size", zap.Error(err))
	}

	cmd := exec.Command(shell, opts.Args...)
	cmd.Dir = opts.Dir
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	cmd.Env = append(cmd.Env, opts.Env...)
	cmd.Stdin = slave
	cmd.Stdout = slave
	cmd.Stderr = slave
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
	}

	if err := cmd.Start(); err != nil {
		master.Close()
		slave.Close()
		return nil, fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}

	if err := unix.SetNonblock(fd, true); err != nil {
		master.Close()
		slave.Close()
		_ = cmd.Process.Kill()
		return nil, fmt.Errorf("%w: set nonblock: %v", ErrOpenFailed, err)
	}

	return &PTY{
		master: master,
		slave:  slave,
		fd:     fd,
		pid:    cmd.Process.Pid,
		logger: logger,
	}, nil
}

// setWinsize issues the window-size ioctl against the raw descriptor.
func setWinsize(fd, rows, cols int) error {
	return unix.IoctlSetWinsize(fd, unix.TIOCSWINSZ, &unix.Winsize{
		Row: uint16(rows),
		Col: uint16(cols),
	})
}

// Pid returns the child shell's process identifier.
func (p *PTY) Pid() int {
	return p.pid
}

// Read performs a non-blocking read of shell output into buf. When no data
// is available it returns (0, ErrWouldBlock), which callers should treat as
// routine rather than exceptional. Any other failure wraps ErrReadFailed.
func (p *PTY) Read(buf []byte) (int, error) {
	n, err := unix.Read(p.fd, buf)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, ErrWouldBlock
		}
		return 0, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	if n == 0 {
		// Zero-byte read on a pty master means the slave side is gone.
		return 0, fmt.Errorf("%w: pty closed", ErrReadFailed)
	}
	return n, nil
}

// Write sends bytes to the shell's input stream and returns the count
// written. Writes are best-effort: partial writes are possible and retrying
// is the caller's responsibility. Failures wrap ErrWriteFailed.
func (p *PTY) Write(data []byte) (int, error) {
	n, err := unix.Write(p.fd, data)
	if err != nil {
		return n, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return n, nil
}

// HasData reports whether a Read would return data right now, using a
// zero-timeout poll that consumes nothing.
func (p *PTY) HasData() bool {
	fds := []unix.PollFd{{Fd: int32(p.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	if err != nil || n == 0 {
		return false
	}
	return fds[0].Revents&unix.POLLIN != 0
}

// IsAlive reports whether the child shell is still running, using a
// non-blocking wait. The first time an exit is observed the internal
// terminated state latches; subsequent calls return false immediately
// without waiting again.
func (p *PTY) IsAlive() bool {
	if p.terminated {
		return false
	}

	var ws unix.WaitStatus
	pid, err := unix.Wait4(p.pid, &ws, unix.WNOHANG, nil)
	if err != nil {
		// ECHILD: nothing left to wait for.
		p.terminated = true
		return false
	}
	if pid == p.pid {
		p.terminated = true
		return false
	}
	return true
}

// Resize informs the terminal line discipline of new window geometry so
// the shell receives SIGWINCH. Best-effort: failures are logged, never
// fatal.
func (p *PTY) Resize(rows, cols int) {
	if err := setWinsize(p.fd, rows, cols); err != nil {
		p.logger.Warn("pty resize", zap.Int("rows", rows), zap.Int("cols", cols), zap.Error(err))
	}
}

// Shutdown terminates the child with escalation: SIGTERM, a bounded wait
// for it to exit, then SIGKILL and a final reap. Both handles are closed
// afterwards. Safe to call when the child has already exited, and safe to
// call more than once; the process is never signaled after its exit has
// been observed.
func (p *PTY) Shutdown() {
	if !p.terminated {
		if err := unix.Kill(p.pid, unix.SIGTERM); err != nil {
			p.logger.Warn("sending SIGTERM", zap.Int("pid", p.pid), zap.Error(err))
		}

		if !p.waitExit(shutdownGrace) {
			if err := unix.Kill(p.pid, unix.SIGKILL); err != nil {
				p.logger.Warn("sending SIGKILL", zap.Int("pid", p.pid), zap.Error(err))
			}
			var ws unix.WaitStatus
			_, _ = unix.Wait4(p.pid, &ws, 0, nil)
			p.terminated = true
		}
	}

	if !p.closed {
		p.master.Close()
		p.slave.Close()
		p.closed = true
	}
}

// waitExit polls liveness until the child exits or the bound elapses.
// Returns true if the child exited within the bound.
func (p *PTY) waitExit(bound time.Duration) bool {
	deadline := time.Now().Add(bound)
	for {
		if !p.IsAlive() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(10 * time.Millisecond)
	}
}
