package termcore

import "go.uber.org/zap"

// Buffer stores a 2D grid of cells and the current graphics state applied
// to newly written cells. All coordinate access outside the grid is a
// silent no-op (reads return nil, writes are ignored) so a miscomputed
// position can never take down the session.
type Buffer struct {
	rows   int
	cols   int
	cells  [][]Cell
	brush  Brush
	dirty  bool
	logger *zap.Logger
}

// NewBuffer creates a buffer with the given dimensions and a no-op logger.
// Dimensions below 1 are clamped to 1.
func NewBuffer(rows, cols int) *Buffer {
	return NewBufferWithLogger(rows, cols, zap.NewNop())
}

// NewBufferWithLogger creates a buffer that reports unrecognized graphics
// codes to the given logger. Dimensions below 1 are clamped to 1.
func NewBufferWithLogger(rows, cols int, logger *zap.Logger) *Buffer {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	b := &Buffer{
		rows:   rows,
		cols:   cols,
		cells:  make([][]Cell, rows),
		brush:  NewBrush(),
		logger: logger,
	}

	for i := range b.cells {
		b.cells[i] = make([]Cell, cols)
		for j := range b.cells[i] {
			b.cells[i][j] = NewCell()
		}
	}

	return b
}

// Rows returns the buffer height in character rows.
func (b *Buffer) Rows() int {
	return b.rows
}

// Cols returns the buffer width in character columns.
func (b *Buffer) Cols() int {
	return b.cols
}

// Cell returns a pointer to the cell at (row, col).
// Returns nil if coordinates are out of bounds.
func (b *Buffer) Cell(row, col int) *Cell {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return nil
	}
	return &b.cells[row][col]
}

// SetCell replaces the cell at (row, col).
// Does nothing if coordinates are out of bounds.
func (b *Buffer) SetCell(row, col int, cell Cell) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return
	}
	b.cells[row][col] = cell
	b.dirty = true
}

// WriteChar writes a character at (row, col) using the current graphics
// state. Does nothing if coordinates are out of bounds.
func (b *Buffer) WriteChar(row, col int, r rune) {
	b.SetCell(row, col, b.brush.Paint(r))
}

// Brush returns the current graphics state.
func (b *Buffer) Brush() Brush {
	return b.brush
}

// SetBrush replaces the current graphics state.
func (b *Buffer) SetBrush(brush Brush) {
	b.brush = brush
}

// blank returns the cell written by clearing operations: a space carrying
// the current colors, so the active background survives a clear.
func (b *Buffer) blank() Cell {
	return b.brush.Paint(' ')
}

// ClearAll resets every cell to a space using the current graphics state.
func (b *Buffer) ClearAll() {
	blank := b.blank()
	for row := range b.cells {
		for col := range b.cells[row] {
			b.cells[row][col] = blank
		}
	}
	b.dirty = true
}

// ClearRow resets all cells in the row using the current graphics state.
// Does nothing if the row is out of bounds.
func (b *Buffer) ClearRow(row int) {
	b.clearRowRange(row, 0, b.cols)
}

// ClearRowFrom resets cells from col (inclusive) to the end of the row.
func (b *Buffer) ClearRowFrom(row, col int) {
	b.clearRowRange(row, col, b.cols)
}

// ClearRowTo resets cells from the start of the row through col (inclusive).
func (b *Buffer) ClearRowTo(row, col int) {
	b.clearRowRange(row, 0, col+1)
}

// clearRowRange resets cells in [startCol, endCol) with the column range
// clamped to the grid.
func (b *Buffer) clearRowRange(row, startCol, endCol int) {
	if row < 0 || row >= b.rows {
		return
	}
	if startCol < 0 {
		startCol = 0
	}
	if endCol > b.cols {
		endCol = b.cols
	}
	blank := b.blank()
	for col := startCol; col < endCol; col++ {
		b.cells[row][col] = blank
	}
	b.dirty = true
}

// ClearBelow resets the tail of the current row from col onward plus every
// following row. Used for ED mode 0 (cursor to end of screen).
func (b *Buffer) ClearBelow(row, col int) {
	b.ClearRowFrom(row, col)
	for r := row + 1; r < b.rows; r++ {
		b.ClearRow(r)
	}
}

// ClearAbove resets every row before the current one plus the head of the
// current row through col. Used for ED mode 1 (start of screen to cursor).
func (b *Buffer) ClearAbove(row, col int) {
	for r := 0; r < row && r < b.rows; r++ {
		b.ClearRow(r)
	}
	b.ClearRowTo(row, col)
}

// ScrollUp shifts every row up by one, discarding row 0's prior content and
// exposing a fresh bottom row of default cells. This is the only operation
// that permanently discards cell content.
func (b *Buffer) ScrollUp() {
	copy(b.cells, b.cells[1:])

	bottom := make([]Cell, b.cols)
	for col := range bottom {
		bottom[col] = NewCell()
	}
	b.cells[b.rows-1] = bottom
	b.dirty = true
}

// Resize changes buffer dimensions, preserving existing cells in the
// overlapping top-left rectangle. New cells take buffer defaults. The
// replacement is atomic from the caller's point of view.
//
// Both dimensions must be >= 1; that is the caller's contract to uphold.
func (b *Buffer) Resize(rows, cols int) {
	newCells := make([][]Cell, rows)
	for i := range newCells {
		newCells[i] = make([]Cell, cols)
		for j := range newCells[i] {
			if i < b.rows && j < b.cols {
				newCells[i][j] = b.cells[i][j]
			} else {
				newCells[i][j] = NewCell()
			}
		}
	}

	b.cells = newCells
	b.rows = rows
	b.cols = cols
	b.dirty = true
}

// ApplySGR updates the current graphics state per the standard SGR
// numbering. Existing cells are untouched. Unrecognized codes are logged
// and ignored.
func (b *Buffer) ApplySGR(codes ...int) {
	for _, code := range codes {
		switch {
		case code == 0:
			b.brush = NewBrush()
		case code == 1:
			b.brush.Flags |= CellFlagBold
		case code == 3:
			b.brush.Flags |= CellFlagItalic
		case code == 4:
			b.brush.Flags |= CellFlagUnderline
		case code == 7:
			b.brush.Flags |= CellFlagReverse
		case code == 9:
			b.brush.Flags |= CellFlagStrike
		case code == 22:
			b.brush.Flags &^= CellFlagBold
		case code == 23:
			b.brush.Flags &^= CellFlagItalic
		case code == 24:
			b.brush.Flags &^= CellFlagUnderline
		case code == 27:
			b.brush.Flags &^= CellFlagReverse
		case code == 29:
			b.brush.Flags &^= CellFlagStrike
		case code >= 30 && code <= 37:
			b.brush.Fg = Color(code - 30)
		case code == 39:
			b.brush.Fg = ColorDefault
		case code >= 40 && code <= 47:
			b.brush.Bg = Color(code - 40)
		case code == 49:
			b.brush.Bg = ColorDefault
		case code >= 90 && code <= 97:
			b.brush.Fg = Color(code - 90 + 8)
		case code >= 100 && code <= 107:
			b.brush.Bg = Color(code - 100 + 8)
		default:
			b.logger.Debug("ignoring unrecognized SGR code", zap.Int("code", code))
		}
	}
}

// HasDirty returns true if any cell changed since the last ClearDirty call.
func (b *Buffer) HasDirty() bool {
	return b.dirty
}

// ClearDirty resets the dirty state. The rendering layer calls this after
// it has repainted.
func (b *Buffer) ClearDirty() {
	b.dirty = false
}

// Line returns the text content of a row, trimming trailing spaces.
// Wide character spacers are skipped. Returns "" if the row is empty or
// out of bounds.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= b.rows {
		return ""
	}

	lastNonSpace := -1
	for col := b.cols - 1; col >= 0; col-- {
		cell := &b.cells[row][col]
		if cell.Char != ' ' && cell.Char != 0 && !cell.IsWideSpacer() {
			lastNonSpace = col
			break
		}
	}

	if lastNonSpace < 0 {
		return ""
	}

	runes := make([]rune, 0, lastNonSpace+1)
	for col := 0; col <= lastNonSpace; col++ {
		cell := &b.cells[row][col]
		if cell.IsWideSpacer() {
			continue
		}
		if cell.Char == 0 {
			runes = append(runes, ' ')
		} else {
			runes = append(runes, cell.Char)
		}
	}

	return string(runes)
}

// Position identifies a cell location in the terminal grid (0-based).
type Position struct {
	Row int
	Col int
}
