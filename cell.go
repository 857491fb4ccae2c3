package termcore

// CellFlags is a bitmask of cell rendering attributes.
type CellFlags uint8

const (
	CellFlagBold CellFlags = 1 << iota
	CellFlagItalic
	CellFlagUnderline
	CellFlagStrike
	CellFlagReverse
	CellFlagWideChar
	CellFlagWideCharSpacer
)

// Cell stores the character, colors, and formatting attributes for one grid
// position. It is a value type with no identity: cells are overwritten by
// cursor-directed writes and by the buffer's clearing and scrolling.
// Wide characters (2 columns) use a spacer cell in the second position.
type Cell struct {
	Char  rune
	Fg    Color
	Bg    Color
	Flags CellFlags
}

// NewCell creates a cell initialized with a space character and default colors.
func NewCell() Cell {
	return Cell{
		Char: ' ',
		Fg:   ColorDefault,
		Bg:   ColorDefault,
	}
}

// Reset sets the cell back to its default state (space, default colors, no flags).
func (c *Cell) Reset() {
	c.Char = ' '
	c.Fg = ColorDefault
	c.Bg = ColorDefault
	c.Flags = 0
}

// HasFlag returns true if the specified flag is set.
func (c *Cell) HasFlag(flag CellFlags) bool {
	return c.Flags&flag != 0
}

// SetFlag enables the specified flag without affecting others.
func (c *Cell) SetFlag(flag CellFlags) {
	c.Flags |= flag
}

// ClearFlag disables the specified flag without affecting others.
func (c *Cell) ClearFlag(flag CellFlags) {
	c.Flags &^= flag
}

// IsWide returns true if this cell contains a wide character that occupies 2 columns.
func (c *Cell) IsWide() bool {
	return c.HasFlag(CellFlagWideChar)
}

// IsWideSpacer returns true if this is the second cell of a wide character
// (should be skipped during rendering).
func (c *Cell) IsWideSpacer() bool {
	return c.HasFlag(CellFlagWideCharSpacer)
}

// Brush holds the current graphics state applied to newly written cells.
// Modified by SGR (Select Graphic Rendition) escape sequences.
type Brush struct {
	Fg    Color
	Bg    Color
	Flags CellFlags
}

// NewBrush creates a brush with default colors and no attributes.
func NewBrush() Brush {
	return Brush{
		Fg: ColorDefault,
		Bg: ColorDefault,
	}
}

// Paint returns a cell carrying the given character with the brush's
// current colors and attributes.
func (b Brush) Paint(r rune) Cell {
	return Cell{
		Char:  r,
		Fg:    b.Fg,
		Bg:    b.Bg,
		Flags: b.Flags,
	}
}
