package termcore

import "errors"

// Sentinel errors returned by the PTY layer. Callers match them with
// errors.Is; the wrapped message carries the underlying cause.
var (
	// ErrOpenFailed indicates the pseudo-terminal device pair could not be
	// allocated or configured.
	ErrOpenFailed = errors.New("termcore: open pty failed")

	// ErrSpawnFailed indicates the shell process could not be started.
	ErrSpawnFailed = errors.New("termcore: spawn shell failed")

	// ErrWouldBlock indicates no data is available right now. It is the
	// routine result of a non-blocking read, not a failure.
	ErrWouldBlock = errors.New("termcore: read would block")

	// ErrReadFailed indicates a read error other than would-block, including
	// the pty being closed from the other side.
	ErrReadFailed = errors.New("termcore: read failed")

	// ErrWriteFailed indicates bytes could not be delivered to the shell.
	ErrWriteFailed = errors.New("termcore: write failed")
)
