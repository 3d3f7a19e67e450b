// Package console is a small text terminal: a character grid the prelude can
// write to, a line-buffered key queue it can read from, and a rasteriser that
// turns the grid into pixels for a window or a screenshot.
package console

import (
	"strings"
	"sync"

	"goprelude/pkg/grid"
)

const (
	DefaultCols = 64
	DefaultRows = 24

	tabWidth = 8
	blank    = ' '
)

// Screen is a cols×rows character grid with a cursor. It implements io.Writer,
// so it can be handed to prelude.Runtime as its output stream.
// It is safe for one writer and concurrent readers.
type Screen struct {
	mu    sync.Mutex
	cols  int
	rows  int
	cells []byte
	cx    int
	cy    int
}

// NewScreen creates a blank screen. Non-positive sizes fall back to the defaults.
func NewScreen(cols, rows int) *Screen {
	if cols <= 0 {
		cols = DefaultCols
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	s := &Screen{cols: cols, rows: rows, cells: make([]byte, cols*rows)}
	s.clearCells()
	return s
}

func (s *Screen) clearCells() {
	for i := range s.cells {
		s.cells[i] = blank
	}
}

// Size returns the grid dimensions.
func (s *Screen) Size() (cols, rows int) {
	return s.cols, s.rows
}

// Cursor returns the cell the next byte will land in.
func (s *Screen) Cursor() (x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cx, s.cy
}

// Clear blanks the grid and homes the cursor.
func (s *Screen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearCells()
	s.cx, s.cy = 0, 0
}

// Write places p on the grid. It never fails.
func (s *Screen) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range p {
		s.putByte(b)
	}
	return len(p), nil
}

func (s *Screen) putByte(b byte) {
	switch b {
	case '\n':
		s.newline()
	case '\r':
		s.cx = 0
	case '\b':
		if s.cx > 0 {
			s.cx--
			s.cells[grid.GetIndex(s.cx, s.cy, s.cols)] = blank
		}
	case '\t':
		s.cx = min((s.cx/tabWidth+1)*tabWidth, s.cols)
	default:
		if b < 0x20 || b > 0x7E {
			b = '?'
		}
		s.put(b)
	}
}

func (s *Screen) put(b byte) {
	if s.cx >= s.cols {
		s.newline()
	}
	s.cells[grid.GetIndex(s.cx, s.cy, s.cols)] = b
	s.cx++
}

func (s *Screen) newline() {
	s.cx = 0
	s.cy++
	if s.cy < s.rows {
		return
	}
	copy(s.cells, s.cells[s.cols:])
	last := s.cells[(s.rows-1)*s.cols:]
	for i := range last {
		last[i] = blank
	}
	s.cy = s.rows - 1
}

// Cells returns a copy of the grid in row-major order.
func (s *Screen) Cells() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(s.cells))
	copy(out, s.cells)
	return out
}

// Line returns row without trailing blanks.
func (s *Screen) Line(row int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row < 0 || row >= s.rows {
		return ""
	}
	return strings.TrimRight(string(s.cells[row*s.cols:(row+1)*s.cols]), " ")
}

// Text returns the visible lines joined by newlines, trailing empty lines dropped.
func (s *Screen) Text() string {
	lines := make([]string, s.rows)
	for i := range lines {
		lines[i] = s.Line(i)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
