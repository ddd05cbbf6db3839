package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// DrawText writes str at x, y clipped to the screen and returns the column after the last cell
func DrawText(s tcell.Screen, x, y int, str string, style tcell.Style) int {
	w, h := s.Size()
	if y < 0 || y >= h {
		return x
	}
	for _, r := range str {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x >= 0 && x+rw <= w {
			s.SetContent(x, y, r, nil, style)
		}
		x += rw
	}
	return x
}

// DrawCentered writes str centered horizontally on row y
func DrawCentered(s tcell.Screen, y int, str string, style tcell.Style) {
	w, _ := s.Size()
	DrawText(s, (w-runewidth.StringWidth(str))/2, y, str, style)
}

// FillRect fills a rectangle with r
func FillRect(s tcell.Screen, x, y, w, h int, r rune, style tcell.Style) {
	sw, sh := s.Size()
	for row := y; row < y+h; row++ {
		if row < 0 || row >= sh {
			continue
		}
		for col := x; col < x+w; col++ {
			if col < 0 || col >= sw {
				continue
			}
			s.SetContent(col, row, r, nil, style)
		}
	}
}

// DrawBox draws a single-line border and clears its interior
func DrawBox(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	FillRect(s, x+1, y+1, w-2, h-2, ' ', style)
	for col := x + 1; col < x+w-1; col++ {
		s.SetContent(col, y, '─', nil, style)
		s.SetContent(col, y+h-1, '─', nil, style)
	}
	for row := y + 1; row < y+h-1; row++ {
		s.SetContent(x, row, '│', nil, style)
		s.SetContent(x+w-1, row, '│', nil, style)
	}
	s.SetContent(x, y, '┌', nil, style)
	s.SetContent(x+w-1, y, '┐', nil, style)
	s.SetContent(x, y+h-1, '└', nil, style)
	s.SetContent(x+w-1, y+h-1, '┘', nil, style)
}

// DrawBar renders a horizontal meter of width cells filled to frac
func DrawBar(s tcell.Screen, x, y, width int, frac float64, fill, empty tcell.Style) {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac*float64(width) + 0.5)
	for i := 0; i < width; i++ {
		if i < filled {
			s.SetContent(x+i, y, '█', nil, fill)
		} else {
			s.SetContent(x+i, y, '░', nil, empty)
		}
	}
}
