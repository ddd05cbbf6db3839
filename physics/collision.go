package physics

import "math"

// Box is an axis-aligned rectangle described by its center and half extents
type Box struct {
	CX, CY float64
	HW, HH float64
}

// BoxAt builds a box from a top-left corner and size
func BoxAt(x, y, w, h float64) Box {
	return Box{CX: x + w/2, CY: y + h/2, HW: w / 2, HH: h / 2}
}

// Contains reports whether the point lies strictly inside the box
func (b Box) Contains(x, y float64) bool {
	return math.Abs(x-b.CX) < b.HW && math.Abs(y-b.CY) < b.HH
}

// Expand grows half extents by dx, dy
func (b Box) Expand(dx, dy float64) Box {
	return Box{CX: b.CX, CY: b.CY, HW: b.HW + dx, HH: b.HH + dy}
}

// Overlaps reports AABB intersection
func (b Box) Overlaps(o Box) bool {
	return math.Abs(b.CX-o.CX) < b.HW+o.HW && math.Abs(b.CY-o.CY) < b.HH+o.HH
}

// CircleOverlapsBox tests a circle against a box using the closest point on the box
func CircleOverlapsBox(cx, cy, r float64, b Box) bool {
	nx := clamp(cx, b.CX-b.HW, b.CX+b.HW)
	ny := clamp(cy, b.CY-b.HH, b.CY+b.HH)
	dx, dy := cx-nx, cy-ny
	return dx*dx+dy*dy < r*r
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
