// Package termcore is the emulation core of a terminal application: it
// owns a shell process behind a pseudo-terminal, decodes the ANSI/VT
// escape sequences the shell produces, and maintains a grid of character
// cells representing what should be on screen.
//
// # Quick Start
//
// Create a terminal and pump shell output into the screen buffer:
//
//	term, err := termcore.New(termcore.WithSize(24, 80))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer term.Close()
//
//	term.Send([]byte("ls\r"))
//	for {
//	    alive, err := term.Pump()
//	    if err != nil || !alive {
//	        break
//	    }
//	    time.Sleep(10 * time.Millisecond)
//	}
//	fmt.Println(term.String())
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [PTY]: the master/slave device pair and the child shell process
//   - [Parser]: a byte-driven state machine decoding escape sequences
//   - [Buffer]: a 2D grid of [Cell] values with colors and attributes
//   - [Processor]: glue that applies parsed output to buffer and cursor
//   - [Terminal]: a complete session tying the four together
//
// Each type is also usable on its own: a Buffer plus Processor emulates a
// screen without any process, and a PTY is an ordinary non-blocking byte
// channel to a shell.
//
// # Concurrency
//
// The core is single-threaded by design. There is no background reader:
// the owning loop calls [Terminal.Pump] (or [PTY.HasData] and [PTY.Read])
// at its own pace, and every component is owned by exactly one caller.
//
// # Error Policy
//
// Malformed escape sequences are never errors; they are absorbed or
// decoded as unknown so bad shell output cannot crash the session.
// Out-of-bounds buffer coordinates are silent no-ops for the same reason.
// PTY failures map onto a closed set of sentinels (see errors.go) that
// callers test with errors.Is.
//
// Rendering, fonts, keyboard handling, and session orchestration are out
// of scope; this package exposes the cell grid, the cursor, a resize
// entry point, and a raw byte channel for those layers to build on.
package termcore
