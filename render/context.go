package render

// Context carries per-frame screen geometry and the logical canvas mapping, passed by value
type Context struct {
	// Terminal size in cells
	Cols int
	Rows int

	// Logical canvas mapped onto the play area
	CanvasWidth  float64
	CanvasHeight float64

	// Play area origin and size in cells
	OffsetX int
	OffsetY int
	AreaW   int
	AreaH   int

	// Top of the visible canvas window, plus render-only shake
	CameraY float64
	ShakeX  float64
	ShakeY  float64

	Frame uint64
}

// NewContext fits a canvas into the screen, reserving hudRows at the top
// Terminal cells are roughly twice as tall as wide, the area keeps the canvas aspect under that assumption
func NewContext(cols, rows int, canvasW, canvasH float64, hudRows int) Context {
	ctx := Context{Cols: cols, Rows: rows, CanvasWidth: canvasW, CanvasHeight: canvasH}

	availH := rows - hudRows
	if availH < 1 || cols < 1 {
		return ctx
	}

	areaH := availH
	areaW := int(float64(areaH) * 2 * canvasW / canvasH)
	if areaW > cols {
		areaW = cols
		areaH = int(float64(areaW) * canvasH / (2 * canvasW))
		if areaH < 1 {
			areaH = 1
		}
	}
	if areaW < 1 {
		areaW = 1
	}

	ctx.AreaW, ctx.AreaH = areaW, areaH
	ctx.OffsetX = (cols - areaW) / 2
	ctx.OffsetY = hudRows + (availH-areaH)/2
	return ctx
}

// ToScreen maps canvas coordinates to a cell, visible=false outside the play area
func (c Context) ToScreen(x, y float64) (sx, sy int, visible bool) {
	if c.AreaW == 0 || c.AreaH == 0 {
		return 0, 0, false
	}
	fx := (x + c.ShakeX) / c.CanvasWidth * float64(c.AreaW)
	fy := (y - c.CameraY + c.ShakeY) / c.CanvasHeight * float64(c.AreaH)
	if fx < 0 || fy < 0 || fx >= float64(c.AreaW) || fy >= float64(c.AreaH) {
		return 0, 0, false
	}
	return c.OffsetX + int(fx), c.OffsetY + int(fy), true
}

// CellsX converts a canvas width to a cell count, at least 1
func (c Context) CellsX(w float64) int {
	n := int(w / c.CanvasWidth * float64(c.AreaW))
	if n < 1 {
		return 1
	}
	return n
}
