package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/portfolio-lab/summit/audio"
	"github.com/portfolio-lab/summit/cry"
)

// CryScene is everything one analyzer frame needs
type CryScene struct {
	Source    string
	Running   bool
	Threshold float64
	Frame     audio.Frame
	Current   *cry.Result
	History   []cry.Result
	Notice    string
	Format    audio.AnalyserConfig
	Metrics   []string // Debug lines above the key hints, shown when non-empty
}

// CryView renders the cry analyzer dashboard
type CryView struct {
	orch    *Orchestrator
	printer *message.Printer

	mu    sync.Mutex
	scene CryScene
	frame uint64
}

// NewCryView registers the dashboard layers on screen
func NewCryView(screen tcell.Screen) *CryView {
	v := &CryView{
		orch:    NewOrchestrator(screen),
		printer: message.NewPrinter(language.English),
	}
	v.orch.Register(LayerFunc(v.renderBackground), PriorityBackground)
	v.orch.Register(LayerFunc(v.renderWaveform), PriorityEntities)
	v.orch.Register(LayerFunc(v.renderResult), PriorityUI)
	v.orch.Register(LayerFunc(v.renderHistory), PriorityUI)
	v.orch.Register(LayerFunc(v.renderNotice), PriorityOverlay)
	return v
}

// Draw renders scene as one frame
func (v *CryView) Draw(scene CryScene) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.scene = scene
	v.frame++

	cols, rows := v.orch.Screen().Size()
	v.orch.RenderFrame(Context{Cols: cols, Rows: rows, Frame: v.frame})
}

// waveRows is the height of the waveform panel
func waveRows(ctx Context) int {
	h := ctx.Rows / 3
	if h < 3 {
		h = 3
	}
	return h
}

func (v *CryView) renderBackground(ctx Context, s tcell.Screen) {
	base := tcell.StyleDefault.Background(RgbBackground)
	FillRect(s, 0, 0, ctx.Cols, ctx.Rows, ' ', base)

	state := "idle"
	stateStyle := base.Foreground(RgbDim)
	if v.scene.Running {
		state = "listening"
		stateStyle = base.Foreground(RgbStaminaHigh).Bold(true)
	}
	x := DrawText(s, 1, 0, "Cry Analyzer", base.Foreground(RgbAccent).Bold(true))
	x = DrawText(s, x+2, 0, v.scene.Source, base.Foreground(RgbDim))
	x = DrawText(s, x+2, 0, state, stateStyle)
	if f := v.scene.Format; f.SampleRate > 0 {
		DrawText(s, x+2, 0, v.printer.Sprintf("%d Hz  FFT %d", f.SampleRate, f.FFTSize), base.Foreground(RgbDim))
	}
}

// renderWaveform plots the time-domain bytes, one column per sample bucket, plus a volume meter
func (v *CryView) renderWaveform(ctx Context, s tcell.Screen) {
	td := v.scene.Frame.TimeDomain
	h := waveRows(ctx)
	top := 2
	base := tcell.StyleDefault.Background(RgbBackground)
	mid := top + h/2

	for col := 0; col < ctx.Cols; col++ {
		s.SetContent(col, mid, '─', nil, base.Foreground(RgbWall))
	}
	if len(td) == 0 || ctx.Cols == 0 {
		return
	}

	wave := base.Foreground(RgbWave)
	for col := 0; col < ctx.Cols; col++ {
		i := col * len(td) / ctx.Cols
		amp := (float64(td[i]) - 128) / 128
		row := mid - int(amp*float64(h/2))
		if row < top {
			row = top
		}
		if row >= top+h {
			row = top + h - 1
		}
		s.SetContent(col, row, '•', nil, wave)
	}

	vol := cry.Volume(td)
	meterY := top + h + 1
	x := DrawText(s, 1, meterY, "Volume ", base.Foreground(RgbDim))
	fg := RgbDim
	if vol >= v.scene.Threshold {
		fg = RgbStaminaHigh
	}
	DrawBar(s, x, meterY, 30, vol/100, base.Foreground(fg), base.Foreground(RgbWall))
	DrawText(s, x+31, meterY, v.printer.Sprintf("%.0f", vol), base.Foreground(RgbText))
}

func (v *CryView) renderResult(ctx Context, s tcell.Screen) {
	base := tcell.StyleDefault.Background(RgbBackground)
	y := 2 + waveRows(ctx) + 3

	r := v.scene.Current
	if r == nil {
		DrawText(s, 1, y, "Waiting for a cry...", base.Foreground(RgbDim))
		return
	}

	x := DrawText(s, 1, y, r.Icon+" ", base)
	x = DrawText(s, x, y, r.Title, base.Foreground(RgbAccent).Bold(true))
	DrawText(s, x+2, y, v.printer.Sprintf("%.0f%% confidence", r.Confidence), base.Foreground(RgbText))
	DrawText(s, 3, y+1, r.Description, base.Foreground(RgbText))

	f := r.Features
	DrawText(s, 3, y+2, v.printer.Sprintf("vol %.1f  int %.1f  freq %.0fHz  var %.1f%%",
		f.Volume, f.Intensity, f.Frequency, f.Variability), base.Foreground(RgbDim))
}

func (v *CryView) renderHistory(ctx Context, s tcell.Screen) {
	base := tcell.StyleDefault.Background(RgbBackground)
	y := 2 + waveRows(ctx) + 7
	if y >= ctx.Rows-1 {
		return
	}
	DrawText(s, 1, y, "History", base.Foreground(RgbDim).Bold(true))
	for i, r := range v.scene.History {
		row := y + 1 + i
		if row >= ctx.Rows-1 {
			break
		}
		x := DrawText(s, 2, row, r.Timestamp.Format("15:04:05"), base.Foreground(RgbDim))
		x = DrawText(s, x+2, row, r.Icon+" "+r.Title, base.Foreground(RgbText))
		DrawText(s, x+2, row, v.printer.Sprintf("%.0f%%", r.Confidence), base.Foreground(RgbDim))
	}
}

func (v *CryView) renderNotice(ctx Context, s tcell.Screen) {
	base := tcell.StyleDefault.Background(RgbBackground)
	line := "Space start/stop  Q quit"
	if v.scene.Notice != "" {
		line = v.scene.Notice + "  |  " + line
	}
	DrawText(s, 1, ctx.Rows-1, line, base.Foreground(RgbDim))

	for i, m := range v.scene.Metrics {
		row := ctx.Rows - 1 - len(v.scene.Metrics) + i
		if row < 1 {
			continue
		}
		FillRect(s, 0, row, ctx.Cols, 1, ' ', base)
		DrawText(s, 1, row, m, base.Foreground(RgbDim))
	}
}
