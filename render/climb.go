package render

import (
	"math"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/portfolio-lab/summit/climb"
)

// ClimbHUDRows is reserved above the play area
const ClimbHUDRows = 2

// ClimbScene is everything one climb frame needs
type ClimbScene struct {
	Snapshot climb.Snapshot
	ShakeX   float64
	ShakeY   float64
	Muted    bool
	Metrics  []string // Debug lines, shown when non-empty
}

// ClimbView renders the climbing game through an orchestrator
type ClimbView struct {
	orch    *Orchestrator
	printer *message.Printer

	mu    sync.Mutex
	scene ClimbScene
	frame uint64
}

// NewClimbView registers the game layers on screen
func NewClimbView(screen tcell.Screen) *ClimbView {
	v := &ClimbView{
		orch:    NewOrchestrator(screen),
		printer: message.NewPrinter(language.English),
	}

	v.orch.Register(LayerFunc(v.renderBackground), PriorityBackground)
	v.orch.Register(LayerFunc(v.renderHolds), PriorityWall)
	v.orch.Register(LayerFunc(v.renderObstacles), PriorityEntities)
	v.orch.Register(LayerFunc(v.renderParticles), PriorityParticle)
	v.orch.Register(LayerFunc(v.renderClimber), PriorityPlayer)
	v.orch.Register(LayerFunc(v.renderHUD), PriorityUI)
	v.orch.Register(LayerFunc(v.renderOverlay), PriorityOverlay)
	v.orch.Register(&debugLayer{view: v}, PriorityDebug)
	return v
}

// Draw renders scene as one frame
func (v *ClimbView) Draw(scene ClimbScene) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.scene = scene
	v.frame++

	cols, rows := v.orch.Screen().Size()
	snap := &scene.Snapshot
	ctx := NewContext(cols, rows, snap.Width, snap.Height, ClimbHUDRows)
	ctx.CameraY = snap.CameraY
	ctx.ShakeX, ctx.ShakeY = scene.ShakeX, scene.ShakeY
	ctx.Frame = v.frame

	v.orch.RenderFrame(ctx)
}

func (v *ClimbView) renderBackground(ctx Context, s tcell.Screen) {
	base := tcell.StyleDefault.Background(RgbBackground)
	FillRect(s, 0, 0, ctx.Cols, ctx.Rows, ' ', base)

	// Rock face texture scrolls with the camera
	wall := base.Foreground(RgbWall)
	for row := 0; row < ctx.AreaH; row++ {
		worldY := ctx.CameraY + float64(row)/float64(ctx.AreaH)*ctx.CanvasHeight
		band := int(math.Floor(worldY / 40))
		for col := 0; col < ctx.AreaW; col++ {
			if (col*7+band*13)%23 == 0 {
				s.SetContent(ctx.OffsetX+col, ctx.OffsetY+row, '·', nil, wall)
			}
		}
	}

	edge := base.Foreground(RgbDim)
	for row := 0; row < ctx.AreaH; row++ {
		if ctx.OffsetX > 0 {
			s.SetContent(ctx.OffsetX-1, ctx.OffsetY+row, '▐', nil, edge)
		}
		if ctx.OffsetX+ctx.AreaW < ctx.Cols {
			s.SetContent(ctx.OffsetX+ctx.AreaW, ctx.OffsetY+row, '▌', nil, edge)
		}
	}
}

func holdStyle(h *climb.Hold, frame uint64) (rune, tcell.Color) {
	switch h.Type {
	case climb.HoldCrumbling:
		if h.CrumbleStarted && h.CrumbleTimer < 30 && frame/4%2 == 0 {
			return '░', RgbHoldCrumbling
		}
		return '▒', RgbHoldCrumbling
	case climb.HoldIcy:
		return '≡', RgbHoldIcy
	case climb.HoldPerfect:
		return '★', RgbHoldPerfect
	default:
		return '▬', RgbHoldStable
	}
}

func (v *ClimbView) renderHolds(ctx Context, s tcell.Screen) {
	base := tcell.StyleDefault.Background(RgbBackground)
	for i := range v.scene.Snapshot.Holds {
		h := &v.scene.Snapshot.Holds[i]
		sx, sy, ok := ctx.ToScreen(h.X, h.CenterY())
		if !ok {
			continue
		}
		r, fg := holdStyle(h, ctx.Frame)
		style := base.Foreground(fg)
		if h.Grabbed {
			style = style.Bold(true)
		}
		for j := 0; j < ctx.CellsX(h.Width); j++ {
			if sx+j < ctx.OffsetX+ctx.AreaW {
				s.SetContent(sx+j, sy, r, nil, style)
			}
		}
	}
}

func (v *ClimbView) renderObstacles(ctx Context, s tcell.Screen) {
	base := tcell.StyleDefault.Background(RgbBackground)
	for i := range v.scene.Snapshot.Obstacles {
		o := &v.scene.Snapshot.Obstacles[i]
		sx, sy, ok := ctx.ToScreen(o.X, o.Y)
		if !ok {
			continue
		}
		switch o.Type {
		case climb.ObstacleBird:
			r := 'v'
			if math.Sin(o.Rotation) > 0 {
				r = '^'
			}
			s.SetContent(sx, sy, r, nil, base.Foreground(RgbBird))
		default:
			s.SetContent(sx, sy, '●', nil, base.Foreground(RgbRock))
		}
	}
}

func (v *ClimbView) renderParticles(ctx Context, s tcell.Screen) {
	for i := range v.scene.Snapshot.Particles {
		p := &v.scene.Snapshot.Particles[i]
		sx, sy, ok := ctx.ToScreen(p.X, p.Y)
		if !ok {
			continue
		}
		fade := 1.0
		if p.MaxLife > 0 {
			fade = float64(p.Life) / float64(p.MaxLife)
		}
		r := '·'
		switch p.Type {
		case climb.ParticleSpark:
			r = '+'
		case climb.ParticleStar:
			r = '*'
		case climb.ParticleDebris:
			r = '▪'
		}
		fg := Lerp(RgbBackground, Hex(p.Color), fade)
		s.SetContent(sx, sy, r, nil, tcell.StyleDefault.Background(RgbBackground).Foreground(fg))
	}
}

func (v *ClimbView) renderClimber(ctx Context, s tcell.Screen) {
	c := &v.scene.Snapshot.Climber
	style := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbClimber)

	body := '█'
	if c.State == climb.StateFalling {
		body = '▓'
	}
	if sx, sy, ok := ctx.ToScreen(c.X, c.Y); ok {
		s.SetContent(sx, sy, body, nil, style)
	}
	if sx, sy, ok := ctx.ToScreen(c.X, c.Y-18); ok {
		s.SetContent(sx, sy, 'o', nil, style.Bold(true))
	}
	for _, hand := range c.Hands {
		if sx, sy, ok := ctx.ToScreen(hand.X, hand.Y); ok {
			s.SetContent(sx, sy, '\'', nil, style)
		}
	}
}

func (v *ClimbView) renderHUD(ctx Context, s tcell.Screen) {
	st := v.scene.Snapshot.State
	base := tcell.StyleDefault.Background(RgbBackground)
	text := base.Foreground(RgbText)
	dim := base.Foreground(RgbDim)
	accent := base.Foreground(RgbAccent).Bold(true)

	x := DrawText(s, 1, 0, "Score ", dim)
	x = DrawText(s, x, 0, v.printer.Sprintf("%d", st.Score), text)
	x = DrawText(s, x+2, 0, "Best ", dim)
	x = DrawText(s, x, 0, v.printer.Sprintf("%d", st.HighScore), text)
	x = DrawText(s, x+2, 0, "Alt ", dim)
	x = DrawText(s, x, 0, v.printer.Sprintf("%.1fm", st.Altitude), text)
	if st.Combo > 1 {
		DrawText(s, x+2, 0, v.printer.Sprintf("x%d combo", climb.ComboMultiplier(st.Combo-1)), accent)
	}

	c := v.scene.Snapshot.Climber
	x = DrawText(s, 1, 1, "Stamina ", dim)
	frac := c.Stamina / 100
	fill := base.Foreground(Lerp(RgbStaminaLow, RgbStaminaHigh, frac))
	DrawBar(s, x, 1, 12, frac, fill, dim)
	x += 13

	x = DrawText(s, x, 1, v.printer.Sprintf("Lv %d", st.Difficulty), dim)
	if wind := v.scene.Snapshot.Wind; wind.Active {
		arrow := "→"
		if wind.Direction < 0 {
			arrow = "←"
		}
		n := 1 + int(wind.Strength*10)
		if n > 3 {
			n = 3
		}
		x = DrawText(s, x+2, 1, "Wind "+strings.Repeat(arrow, n), base.Foreground(RgbHoldIcy))
	}
	if v.scene.Muted {
		DrawText(s, x+2, 1, "[muted]", dim)
	}
}

func (v *ClimbView) renderOverlay(ctx Context, s tcell.Screen) {
	st := v.scene.Snapshot.State
	var lines []string
	switch st.Status {
	case climb.StatusMenu:
		lines = []string{"S U M M I T", "", "Space or click to climb", "P pause  M mute  Q quit"}
	case climb.StatusPaused:
		lines = []string{"PAUSED", "", "P to resume  R to restart"}
	case climb.StatusGameOver:
		lines = []string{
			"GAME OVER",
			"",
			v.printer.Sprintf("Score %d", st.Score),
			v.printer.Sprintf("Max altitude %.1fm", st.MaxAltitude),
			v.printer.Sprintf("Best combo %d", st.MaxCombo),
		}
		if st.Score > 0 && st.Score == st.HighScore {
			lines = append(lines, "", "NEW RECORD!")
		}
		lines = append(lines, "", "Space to climb again")
	default:
		return
	}

	width := 0
	for _, l := range lines {
		if len(l) > width {
			width = len(l)
		}
	}
	boxW, boxH := width+6, len(lines)+2
	bx := (ctx.Cols - boxW) / 2
	by := (ctx.Rows - boxH) / 2

	base := tcell.StyleDefault.Background(RgbBackground)
	DrawBox(s, bx, by, boxW, boxH, base.Foreground(RgbDim))
	for i, l := range lines {
		style := base.Foreground(RgbText)
		if i == 0 || l == "NEW RECORD!" {
			style = base.Foreground(RgbAccent).Bold(true)
		}
		DrawCentered(s, by+1+i, l, style)
	}
}

// debugLayer shows metric lines in the bottom-left corner when any are supplied
type debugLayer struct {
	view *ClimbView
}

func (d *debugLayer) IsVisible() bool {
	return len(d.view.scene.Metrics) > 0
}

func (d *debugLayer) Render(ctx Context, s tcell.Screen) {
	style := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbDim)
	lines := d.view.scene.Metrics
	for i, l := range lines {
		DrawText(s, 0, ctx.Rows-len(lines)+i, l, style)
	}
}
