package termcore

// parserState identifies a state of the escape sequence state machine.
type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateCSIEntry
	stateCSIParam
	stateCSIIntermediate
	stateCSIIgnore
	stateOSCString
)

// SequenceType tags the variant carried by a decoded Sequence.
type SequenceType int

const (
	// SeqCursorUp moves the cursor up Count rows.
	SeqCursorUp SequenceType = iota
	// SeqCursorDown moves the cursor down Count rows.
	SeqCursorDown
	// SeqCursorForward moves the cursor right Count columns.
	SeqCursorForward
	// SeqCursorBackward moves the cursor left Count columns.
	SeqCursorBackward
	// SeqCursorPosition moves the cursor to Row;Col (1-based).
	SeqCursorPosition
	// SeqClearScreen erases screen content per Mode.
	SeqClearScreen
	// SeqClearLine erases line content per Mode.
	SeqClearLine
	// SeqSetGraphics carries SGR codes in Params.
	SeqSetGraphics
	// SeqUnknown is a syntactically valid sequence with an unsupported
	// final (or escape) byte, carried in Final.
	SeqUnknown
)

// Clear modes shared by SeqClearScreen and SeqClearLine.
const (
	// ClearToEnd erases from the cursor to the end (mode 0).
	ClearToEnd = 0
	// ClearToStart erases from the start through the cursor (mode 1).
	ClearToStart = 1
	// ClearAll erases everything (mode 2).
	ClearAll = 2
)

// Sequence is one decoded escape sequence. Only the fields relevant to its
// Type are meaningful. Sequences have no identity: the parser emits them
// and never retains them.
type Sequence struct {
	Type   SequenceType
	Count  int   // cursor movement distance
	Row    int   // 1-based target row (SeqCursorPosition)
	Col    int   // 1-based target column (SeqCursorPosition)
	Mode   int   // clear mode (SeqClearScreen, SeqClearLine)
	Params []int // SGR codes (SeqSetGraphics)
	Final  byte  // trailing byte (SeqUnknown)
}

// Parser is a byte-driven state machine that decodes ANSI/VT escape
// sequences. It can be fed arbitrary partial chunks: bytes belonging to an
// incomplete sequence are retained internally until the next call.
//
// Malformed input never produces an error. Invalid sequences are silently
// absorbed and unsupported ones are reported as SeqUnknown, so bad bytes
// from the shell can never crash the terminal.
type Parser struct {
	state         parserState
	params        []int
	intermediates []byte
}

// NewParser creates a parser in the ground state.
func NewParser() *Parser {
	return &Parser{
		params:        make([]int, 0, 16),
		intermediates: make([]byte, 0, 4),
	}
}

// reset returns the machine to ground and discards per-sequence data.
func (p *Parser) reset() {
	p.state = stateGround
	p.params = p.params[:0]
	p.intermediates = p.intermediates[:0]
}

const (
	escByte  = 0x1b
	bellByte = 0x07
)

// isCSIFinal reports whether b is in the standard CSI final byte range.
func isCSIFinal(b byte) bool {
	return b >= 0x40 && b <= 0x7e
}

// isCSIIntermediate reports whether b is in the CSI intermediate range.
func isCSIIntermediate(b byte) bool {
	return b >= 0x20 && b <= 0x2f
}

// Parse processes the whole input and returns the ordered list of sequences
// completed during this call. Bytes seen in the ground state pass through
// undecoded; they are the caller's to handle as literal or control bytes.
func (p *Parser) Parse(data []byte) []Sequence {
	var seqs []Sequence

	for _, b := range data {
		if seq := p.step(b); seq != nil {
			seqs = append(seqs, *seq)
		}
	}

	return seqs
}

// step advances the machine by one byte, returning a completed sequence
// when that byte finishes one.
func (p *Parser) step(b byte) *Sequence {
	switch p.state {
	case stateGround:
		if b == escByte {
			p.reset()
			p.state = stateEscape
		}
		return nil

	case stateEscape:
		switch b {
		case '[':
			p.state = stateCSIEntry
			return nil
		case ']':
			p.state = stateOSCString
			return nil
		default:
			p.reset()
			return &Sequence{Type: SeqUnknown, Final: b}
		}

	case stateCSIEntry, stateCSIParam:
		switch {
		case b >= '0' && b <= '9':
			p.state = stateCSIParam
			if len(p.params) == 0 {
				p.params = append(p.params, 0)
			}
			last := len(p.params) - 1
			p.params[last] = p.params[last]*10 + int(b-'0')
			return nil
		case b == ';':
			p.state = stateCSIParam
			if len(p.params) == 0 {
				p.params = append(p.params, 0)
			}
			p.params = append(p.params, 0)
			return nil
		case isCSIIntermediate(b):
			p.state = stateCSIIntermediate
			p.intermediates = append(p.intermediates, b)
			return nil
		case isCSIFinal(b):
			return p.finish(b)
		default:
			p.state = stateCSIIgnore
			return nil
		}

	case stateCSIIntermediate:
		switch {
		case isCSIIntermediate(b):
			p.intermediates = append(p.intermediates, b)
			return nil
		case isCSIFinal(b):
			return p.finish(b)
		default:
			p.state = stateCSIIgnore
			return nil
		}

	case stateCSIIgnore:
		if isCSIFinal(b) {
			p.reset()
		}
		return nil

	case stateOSCString:
		// OSC payloads are accepted but not decoded. A bell terminates the
		// string; an escape both terminates it and opens a new sequence.
		switch b {
		case bellByte:
			p.reset()
		case escByte:
			p.reset()
			p.state = stateEscape
		}
		return nil
	}

	return nil
}

// finish decodes the accumulated sequence for the given final byte and
// resets the machine.
func (p *Parser) finish(final byte) *Sequence {
	params := p.params
	p.state = stateGround
	p.params = make([]int, 0, 16)
	p.intermediates = p.intermediates[:0]

	param := func(i, def int) int {
		if i < len(params) {
			return params[i]
		}
		return def
	}

	switch final {
	case 'A':
		return &Sequence{Type: SeqCursorUp, Count: param(0, 1)}
	case 'B':
		return &Sequence{Type: SeqCursorDown, Count: param(0, 1)}
	case 'C':
		return &Sequence{Type: SeqCursorForward, Count: param(0, 1)}
	case 'D':
		return &Sequence{Type: SeqCursorBackward, Count: param(0, 1)}
	case 'H', 'f':
		return &Sequence{
			Type: SeqCursorPosition,
			Row:  param(0, 1),
			Col:  param(1, 1),
		}
	case 'J':
		return &Sequence{Type: SeqClearScreen, Mode: param(0, ClearToEnd)}
	case 'K':
		return &Sequence{Type: SeqClearLine, Mode: param(0, ClearToEnd)}
	case 'm':
		if len(params) == 0 {
			params = []int{0}
		}
		return &Sequence{Type: SeqSetGraphics, Params: params}
	default:
		return &Sequence{Type: SeqUnknown, Final: final}
	}
}
