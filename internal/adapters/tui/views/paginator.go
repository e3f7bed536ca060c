package views

// Paginator tracks the cursor and the visible window of a list that can
// grow ("load more") or shrink (optimistic removals) under it.
type Paginator struct {
	pageSize   int
	pageOffset int
	cursor     int
	totalItems int
}

// NewPaginator creates a new paginator with the given page size
func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Paginator{
		pageSize: pageSize,
	}
}

// SetPageSize changes how many rows are visible, e.g. after a resize
func (p *Paginator) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	p.pageSize = size
	p.scrollToCursor()
}

// SetTotal sets the total number of items, keeping the cursor in range
func (p *Paginator) SetTotal(total int) {
	p.totalItems = max(0, total)
	p.cursor = min(p.cursor, max(0, p.totalItems-1))
	p.scrollToCursor()
}

// Total returns the number of items
func (p *Paginator) Total() int {
	return p.totalItems
}

// Cursor returns the current cursor position (absolute index)
func (p *Paginator) Cursor() int {
	return p.cursor
}

// SetCursor moves the cursor to pos, clamped to the list
func (p *Paginator) SetCursor(pos int) {
	p.cursor = max(0, min(pos, p.totalItems-1))
	p.scrollToCursor()
}

// CursorUp moves the cursor up by one
func (p *Paginator) CursorUp() bool {
	if p.cursor == 0 {
		return false
	}
	p.SetCursor(p.cursor - 1)
	return true
}

// CursorDown moves the cursor down by one
func (p *Paginator) CursorDown() bool {
	if p.cursor >= p.totalItems-1 {
		return false
	}
	p.SetCursor(p.cursor + 1)
	return true
}

// PageDown moves the cursor one screen down
func (p *Paginator) PageDown() {
	p.SetCursor(p.cursor + p.pageSize)
}

// PageUp moves the cursor one screen up
func (p *Paginator) PageUp() {
	p.SetCursor(p.cursor - p.pageSize)
}

// AtEnd reports whether the cursor is on the last loaded item
func (p *Paginator) AtEnd() bool {
	return p.totalItems > 0 && p.cursor == p.totalItems-1
}

// VisibleRange returns the start and end indices of the visible rows
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.pageOffset
	end = min(p.pageOffset+p.pageSize, p.totalItems)
	return
}

// Reset moves back to the top
func (p *Paginator) Reset() {
	p.cursor = 0
	p.pageOffset = 0
}

// scrollToCursor moves the window the least amount needed to show the cursor
func (p *Paginator) scrollToCursor() {
	if p.cursor < p.pageOffset {
		p.pageOffset = p.cursor
	} else if p.cursor >= p.pageOffset+p.pageSize {
		p.pageOffset = p.cursor - p.pageSize + 1
	}
	// Do not leave empty rows at the bottom after the list shrank
	if p.pageOffset+p.pageSize > p.totalItems {
		p.pageOffset = max(0, p.totalItems-p.pageSize)
	}
}
