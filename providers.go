package termcore

// BellProvider handles bell events triggered by BEL (0x07) bytes in the
// shell output.
type BellProvider interface {
	// Ring is called when a bell byte is received.
	Ring()
}

// NoopBell ignores all bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

var _ BellProvider = NoopBell{}
