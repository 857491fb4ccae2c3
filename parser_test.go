package termcore

import "testing"

func TestParserCursorMoves(t *testing.T) {
	tests := []struct {
		input string
		typ   SequenceType
		count int
	}{
		{"\x1b[A", SeqCursorUp, 1},
		{"\x1b[B", SeqCursorDown, 1},
		{"\x1b[C", SeqCursorForward, 1},
		{"\x1b[D", SeqCursorBackward, 1},
		{"\x1b[5A", SeqCursorUp, 5},
		{"\x1b[12B", SeqCursorDown, 12},
		{"\x1b[3C", SeqCursorForward, 3},
		{"\x1b[7D", SeqCursorBackward, 7},
	}

	for _, tt := range tests {
		p := NewParser()
		seqs := p.Parse([]byte(tt.input))
		if len(seqs) != 1 {
			t.Fatalf("%q: expected 1 sequence, got %d", tt.input, len(seqs))
		}
		if seqs[0].Type != tt.typ {
			t.Errorf("%q: expected type %d, got %d", tt.input, tt.typ, seqs[0].Type)
		}
		if seqs[0].Count != tt.count {
			t.Errorf("%q: expected count %d, got %d", tt.input, tt.count, seqs[0].Count)
		}
	}
}

func TestParserCursorPosition(t *testing.T) {
	p := NewParser()

	seqs := p.Parse([]byte("\x1b[10;20H"))
	if len(seqs) != 1 {
		t.Fatalf("expected 1 sequence, got %d", len(seqs))
	}
	if seqs[0].Type != SeqCursorPosition {
		t.Fatalf("expected cursor position, got %d", seqs[0].Type)
	}
	if seqs[0].Row != 10 || seqs[0].Col != 20 {
		t.Errorf("expected 10;20, got %d;%d", seqs[0].Row, seqs[0].Col)
	}
}

func TestParserCursorPositionDefaults(t *testing.T) {
	p := NewParser()

	seqs := p.Parse([]byte("\x1b[H"))
	if len(seqs) != 1 {
		t.Fatalf("expected 1 sequence, got %d", len(seqs))
	}
	if seqs[0].Row != 1 || seqs[0].Col != 1 {
		t.Errorf("expected 1;1, got %d;%d", seqs[0].Row, seqs[0].Col)
	}

	// Row only: column defaults to 1.
	seqs = p.Parse([]byte("\x1b[5H"))
	if seqs[0].Row != 5 || seqs[0].Col != 1 {
		t.Errorf("expected 5;1, got %d;%d", seqs[0].Row, seqs[0].Col)
	}

	// The f final is an alias for H.
	seqs = p.Parse([]byte("\x1b[2;3f"))
	if seqs[0].Type != SeqCursorPosition || seqs[0].Row != 2 || seqs[0].Col != 3 {
		t.Errorf("expected position 2;3 for f, got %+v", seqs[0])
	}
}

func TestParserClearModes(t *testing.T) {
	p := NewParser()

	seqs := p.Parse([]byte("\x1b[J\x1b[1J\x1b[2J\x1b[K\x1b[1K\x1b[2K"))
	if len(seqs) != 6 {
		t.Fatalf("expected 6 sequences, got %d", len(seqs))
	}

	want := []struct {
		typ  SequenceType
		mode int
	}{
		{SeqClearScreen, ClearToEnd},
		{SeqClearScreen, ClearToStart},
		{SeqClearScreen, ClearAll},
		{SeqClearLine, ClearToEnd},
		{SeqClearLine, ClearToStart},
		{SeqClearLine, ClearAll},
	}
	for i, w := range want {
		if seqs[i].Type != w.typ || seqs[i].Mode != w.mode {
			t.Errorf("seq %d: expected type %d mode %d, got type %d mode %d",
				i, w.typ, w.mode, seqs[i].Type, seqs[i].Mode)
		}
	}
}

func TestParserGraphicsParams(t *testing.T) {
	p := NewParser()

	seqs := p.Parse([]byte("\x1b[1;31;44m"))
	if len(seqs) != 1 {
		t.Fatalf("expected 1 sequence, got %d", len(seqs))
	}
	if seqs[0].Type != SeqSetGraphics {
		t.Fatalf("expected graphics, got %d", seqs[0].Type)
	}
	want := []int{1, 31, 44}
	if len(seqs[0].Params) != len(want) {
		t.Fatalf("expected %d params, got %d", len(want), len(seqs[0].Params))
	}
	for i, w := range want {
		if seqs[0].Params[i] != w {
			t.Errorf("param %d: expected %d, got %d", i, w, seqs[0].Params[i])
		}
	}
}

func TestParserGraphicsDefault(t *testing.T) {
	p := NewParser()

	seqs := p.Parse([]byte("\x1b[m"))
	if len(seqs) != 1 || seqs[0].Type != SeqSetGraphics {
		t.Fatalf("expected graphics sequence, got %+v", seqs)
	}
	if len(seqs[0].Params) != 1 || seqs[0].Params[0] != 0 {
		t.Errorf("expected single 0 param, got %v", seqs[0].Params)
	}
}

func TestParserUnknownFinal(t *testing.T) {
	p := NewParser()

	seqs := p.Parse([]byte("\x1b[5n"))
	if len(seqs) != 1 {
		t.Fatalf("expected 1 sequence, got %d", len(seqs))
	}
	if seqs[0].Type != SeqUnknown || seqs[0].Final != 'n' {
		t.Errorf("expected unknown 'n', got %+v", seqs[0])
	}
}

func TestParserUnknownEscape(t *testing.T) {
	p := NewParser()

	seqs := p.Parse([]byte("\x1b7"))
	if len(seqs) != 1 || seqs[0].Type != SeqUnknown || seqs[0].Final != '7' {
		t.Errorf("expected unknown '7', got %+v", seqs)
	}
}

func TestParserPartialChunks(t *testing.T) {
	p := NewParser()

	// Sequence split across three calls must still decode once, at the end.
	if seqs := p.Parse([]byte("\x1b[")); len(seqs) != 0 {
		t.Fatalf("expected no sequences yet, got %d", len(seqs))
	}
	if seqs := p.Parse([]byte("1;3")); len(seqs) != 0 {
		t.Fatalf("expected no sequences yet, got %d", len(seqs))
	}
	seqs := p.Parse([]byte("1m"))
	if len(seqs) != 1 || seqs[0].Type != SeqSetGraphics {
		t.Fatalf("expected graphics sequence, got %+v", seqs)
	}
	want := []int{1, 31}
	for i, w := range want {
		if seqs[0].Params[i] != w {
			t.Errorf("param %d: expected %d, got %d", i, w, seqs[0].Params[i])
		}
	}
}

func TestParserInvalidByteAbsorbed(t *testing.T) {
	p := NewParser()

	// '?' is outside the param range: the sequence is discarded without
	// emitting anything, through its final byte.
	seqs := p.Parse([]byte("\x1b[?2004h"))
	if len(seqs) != 0 {
		t.Errorf("expected private sequence to be absorbed, got %+v", seqs)
	}

	// The parser must be back in ground afterwards.
	seqs = p.Parse([]byte("\x1b[2A"))
	if len(seqs) != 1 || seqs[0].Type != SeqCursorUp || seqs[0].Count != 2 {
		t.Errorf("expected cursor up 2 after recovery, got %+v", seqs)
	}
}

func TestParserIntermediateBytes(t *testing.T) {
	p := NewParser()

	// ESC [ ! p (DECSTR) carries an intermediate; unsupported final decodes
	// as unknown rather than being dropped.
	seqs := p.Parse([]byte("\x1b[!p"))
	if len(seqs) != 1 || seqs[0].Type != SeqUnknown || seqs[0].Final != 'p' {
		t.Errorf("expected unknown 'p', got %+v", seqs)
	}
}

func TestParserOSCDiscarded(t *testing.T) {
	p := NewParser()

	// Bell-terminated OSC string: accepted, not decoded.
	seqs := p.Parse([]byte("\x1b]0;window title\x07"))
	if len(seqs) != 0 {
		t.Errorf("expected OSC to be discarded, got %+v", seqs)
	}

	// Escape-terminated OSC string: the escape starts the next sequence.
	seqs = p.Parse([]byte("\x1b]2;another title\x1b[3C"))
	if len(seqs) != 1 || seqs[0].Type != SeqCursorForward || seqs[0].Count != 3 {
		t.Errorf("expected cursor forward after OSC, got %+v", seqs)
	}
}

func TestParserGroundPassthrough(t *testing.T) {
	p := NewParser()

	seqs := p.Parse([]byte("plain text, no escapes"))
	if len(seqs) != 0 {
		t.Errorf("expected ground bytes to pass through, got %+v", seqs)
	}
}

func TestParserEmptyParamsDefaultToZero(t *testing.T) {
	p := NewParser()

	// "ESC[;5H": the empty first parameter defaults to 0.
	seqs := p.Parse([]byte("\x1b[;5H"))
	if len(seqs) != 1 {
		t.Fatalf("expected 1 sequence, got %d", len(seqs))
	}
	if seqs[0].Row != 0 || seqs[0].Col != 5 {
		t.Errorf("expected 0;5, got %d;%d", seqs[0].Row, seqs[0].Col)
	}
}
