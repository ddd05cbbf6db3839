package render

import "github.com/gdamore/tcell/v2"

// Palette
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbWall       = tcell.NewRGBColor(41, 46, 66)    // Rock face shading
	RgbText       = tcell.NewRGBColor(192, 202, 245) // Default foreground
	RgbDim        = tcell.NewRGBColor(86, 95, 137)   // Secondary text
	RgbAccent     = tcell.NewRGBColor(255, 158, 100) // Orange highlight

	RgbHoldStable    = tcell.NewRGBColor(158, 206, 106) // Green
	RgbHoldCrumbling = tcell.NewRGBColor(224, 175, 104) // Amber
	RgbHoldIcy       = tcell.NewRGBColor(125, 207, 255) // Ice blue
	RgbHoldPerfect   = tcell.NewRGBColor(255, 215, 0)   // Gold

	RgbClimber = tcell.NewRGBColor(247, 118, 142) // Red jacket
	RgbRock    = tcell.NewRGBColor(169, 177, 214) // Gray
	RgbBird    = tcell.NewRGBColor(187, 154, 247) // Purple

	RgbStaminaHigh = tcell.NewRGBColor(158, 206, 106)
	RgbStaminaLow  = tcell.NewRGBColor(247, 118, 142)

	RgbWave = tcell.NewRGBColor(125, 207, 255) // Waveform trace
)

// Hex converts 0xRRGGBB to a tcell color
func Hex(c uint32) tcell.Color {
	return tcell.NewHexColor(int32(c & 0xFFFFFF))
}

// Lerp blends two colors, t in [0, 1]
func Lerp(a, b tcell.Color, t float64) tcell.Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	ar, ag, ab := a.RGB()
	br, bg, bb := b.RGB()
	mix := func(x, y int32) int32 { return x + int32(float64(y-x)*t) }
	return tcell.NewRGBColor(mix(ar, br), mix(ag, bg), mix(ab, bb))
}
