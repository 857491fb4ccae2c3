package termcore

import (
	"unicode/utf8"

	"github.com/unilibs/uniwidth"
)

// tabWidth is the fixed distance between tab stops.
const tabWidth = 8

// Processor feeds shell output through the escape sequence parser and
// applies the results to a buffer and cursor. It is the only component
// that understands both the parser's decoded operations and the buffer's
// coordinate system.
//
// Input may arrive in arbitrary chunks: an incomplete trailing escape
// sequence or a partial UTF-8 rune is retained and completed on the next
// call.
type Processor struct {
	parser  *Parser
	bell    BellProvider
	pending []byte
}

// NewProcessor creates a processor with a fresh parser and a no-op bell.
func NewProcessor() *Processor {
	return &Processor{
		parser: NewParser(),
		bell:   NoopBell{},
	}
}

// SetBell replaces the bell handler. A nil provider restores the no-op.
func (p *Processor) SetBell(bell BellProvider) {
	if bell == nil {
		bell = NoopBell{}
	}
	p.bell = bell
}

// Process scans input byte-by-byte, decoding escape sequences, interpreting
// control bytes, and inserting printable characters at the cursor.
func (p *Processor) Process(input []byte, buf *Buffer, cur *Cursor) {
	data := input
	if len(p.pending) > 0 {
		data = append(p.pending, input...)
		p.pending = nil
	}

	i := 0
	for i < len(data) {
		b := data[i]

		switch {
		case b == escByte:
			end, ok := findSequenceEnd(data[i:])
			if !ok {
				// Incomplete trailing sequence: keep it for the next call.
				p.pending = append([]byte(nil), data[i:]...)
				return
			}
			for _, seq := range p.parser.Parse(data[i : i+end]) {
				p.apply(seq, buf, cur)
			}
			i += end

		case b == '\n':
			lineFeed(buf, cur)
			i++

		case b == '\r':
			cur.Col = 0
			i++

		case b == '\t':
			next := (cur.Col/tabWidth + 1) * tabWidth
			cur.Col = clamp(next, 0, buf.Cols()-1)
			i++

		case b == '\b':
			if cur.Col > 0 {
				cur.Col--
			}
			i++

		case b == bellByte:
			p.bell.Ring()
			i++

		case b < 0x20 || b == 0x7f:
			// Remaining control bytes are ignored.
			i++

		default:
			r, size := utf8.DecodeRune(data[i:])
			if r == utf8.RuneError && size == 1 {
				if !utf8.FullRune(data[i:]) && len(data)-i < utf8.UTFMax {
					// Partial trailing rune: keep the tail for the next call.
					p.pending = append([]byte(nil), data[i:]...)
					return
				}
				// Invalid byte, drop it.
				i++
				continue
			}
			insertRune(r, buf, cur)
			i += size
		}
	}
}

// findSequenceEnd locates the full extent of the escape sequence starting
// at data[0] (which must be ESC). Returns the byte count to hand to the
// parser and whether the sequence is complete within data. An OSC string
// terminated by another escape excludes that escape, so it can begin the
// next sequence.
func findSequenceEnd(data []byte) (int, bool) {
	if len(data) < 2 {
		return 0, false
	}

	switch data[1] {
	case '[':
		for j := 2; j < len(data); j++ {
			if isCSIFinal(data[j]) {
				return j + 1, true
			}
		}
		return 0, false
	case ']':
		for j := 2; j < len(data); j++ {
			switch data[j] {
			case bellByte:
				return j + 1, true
			case escByte:
				return j, true
			}
		}
		return 0, false
	default:
		// ESC plus one byte: decoded as an unknown sequence.
		return 2, true
	}
}

// apply mutates the buffer and cursor for one decoded sequence. Cursor
// movement clamps at the grid edges; positioning converts 1-based
// coordinates to 0-based, clamped to bounds. Unknown sequences are
// discarded.
func (p *Processor) apply(seq Sequence, buf *Buffer, cur *Cursor) {
	switch seq.Type {
	case SeqCursorUp:
		cur.Row = clamp(cur.Row-seq.Count, 0, buf.Rows()-1)
	case SeqCursorDown:
		cur.Row = clamp(cur.Row+seq.Count, 0, buf.Rows()-1)
	case SeqCursorForward:
		cur.Col = clamp(cur.Col+seq.Count, 0, buf.Cols()-1)
	case SeqCursorBackward:
		cur.Col = clamp(cur.Col-seq.Count, 0, buf.Cols()-1)
	case SeqCursorPosition:
		cur.Row = clamp(seq.Row-1, 0, buf.Rows()-1)
		cur.Col = clamp(seq.Col-1, 0, buf.Cols()-1)
	case SeqClearScreen:
		switch seq.Mode {
		case ClearToEnd:
			buf.ClearBelow(cur.Row, cur.Col)
		case ClearToStart:
			buf.ClearAbove(cur.Row, cur.Col)
		case ClearAll:
			buf.ClearAll()
		}
	case SeqClearLine:
		switch seq.Mode {
		case ClearToEnd:
			buf.ClearRowFrom(cur.Row, cur.Col)
		case ClearToStart:
			buf.ClearRowTo(cur.Row, cur.Col)
		case ClearAll:
			buf.ClearRow(cur.Row)
		}
	case SeqSetGraphics:
		buf.ApplySGR(seq.Params...)
	}
}

// lineFeed moves the cursor to the next row, scrolling when already on the
// last one. The column is kept, clamped into the grid: a write that filled
// the row leaves it one past the last cell until the deferred wrap, and a
// line feed resolves that to the last column rather than carrying the
// pending wrap onto the new row. Carriage return handles resetting it.
func lineFeed(buf *Buffer, cur *Cursor) {
	cur.Col = clamp(cur.Col, 0, buf.Cols()-1)
	cur.Row++
	if cur.Row >= buf.Rows() {
		cur.Row = buf.Rows() - 1
		buf.ScrollUp()
	}
}

// insertRune writes one printable code point at the cursor and advances
// it, wrapping to the next row (scrolling on the last one) when the
// character does not fit. Wide characters occupy two cells, the second
// flagged as a spacer. Zero-width runes are dropped.
func insertRune(r rune, buf *Buffer, cur *Cursor) {
	width := uniwidth.RuneWidth(r)
	if width <= 0 {
		return
	}

	if cur.Col+width > buf.Cols() {
		cur.Col = 0
		lineFeed(buf, cur)
	}

	buf.WriteChar(cur.Row, cur.Col, r)

	if width == 2 {
		if cell := buf.Cell(cur.Row, cur.Col); cell != nil {
			cell.SetFlag(CellFlagWideChar)
		}
		spacer := buf.Brush().Paint(' ')
		spacer.SetFlag(CellFlagWideCharSpacer)
		buf.SetCell(cur.Row, cur.Col+1, spacer)
	}

	cur.Col += width
}
