package flappy

import (
	"math"

	"github.com/nepaliayush/flappy-bird/internal/core"
)

// Glyphs used by the terminal rasterizer.
const (
	BirdBodyChar  = '●'
	BirdBeakChar  = '▶'
	PipeChar      = '█'
	PipeCapTop    = '▀' // Lower end of a flipped (top) pipe
	PipeCapBottom = '▄' // Upper end of a bottom pipe
)

// cellAspect is how many times taller a terminal cell is than it is wide.
const cellAspect = 2.0

// Layout reports where the scene landed on the screen, in cells.
type Layout struct {
	Viewport core.Rect // Playfield area
	Button   core.Rect // Overlay control; empty when none is shown
}

// viewport maps world coordinates to screen cells.
type viewport struct {
	rect   core.Rect
	sx, sy float64 // Cells per world unit
}

func newViewport(world core.Box, screenW, screenH int) viewport {
	if world.W <= 0 || world.H <= 0 || screenW <= 0 || screenH <= 0 {
		return viewport{}
	}

	// Fit the world into the screen keeping its proportions.
	ratio := world.W / world.H * cellAspect
	rows := screenH
	cols := int(math.Round(float64(rows) * ratio))
	if cols > screenW {
		cols = screenW
		rows = int(math.Round(float64(cols) / ratio))
	}
	cols = core.Clamp(cols, 1, screenW)
	rows = core.Clamp(rows, 1, screenH)

	return viewport{
		rect: core.NewRect((screenW-cols)/2, (screenH-rows)/2, cols, rows),
		sx:   float64(cols) / world.W,
		sy:   float64(rows) / world.H,
	}
}

// project converts a world box to the cells it covers, clipped to the
// viewport. Anything visible covers at least one cell.
func (v viewport) project(b core.Box) core.Rect {
	x0 := int(math.Floor(b.X * v.sx))
	y0 := int(math.Floor(b.Y * v.sy))
	x1 := int(math.Ceil(b.Right() * v.sx))
	y1 := int(math.Ceil(b.Bottom() * v.sy))
	if b.W > 0 && x1 <= x0 {
		x1 = x0 + 1
	}
	if b.H > 0 && y1 <= y0 {
		y1 = y0 + 1
	}

	x0 = core.Clamp(x0, 0, v.rect.W)
	x1 = core.Clamp(x1, 0, v.rect.W)
	y0 = core.Clamp(y0, 0, v.rect.H)
	y1 = core.Clamp(y1, 0, v.rect.H)
	return core.NewRect(v.rect.X+x0, v.rect.Y+y0, x1-x0, y1-y0)
}

// Rasterize draws the scene into dst and returns where things landed.
func Rasterize(scene Scene, dst *core.Screen) Layout {
	dst.Clear()

	v := newViewport(scene.World, dst.Width(), dst.Height())
	layout := Layout{Viewport: v.rect}
	if v.rect.Empty() {
		return layout
	}

	// Background: the playfield is left blank, framed by its edges.
	drawBackground(dst, v.project(scene.Background.Box))

	for _, p := range scene.Pipes {
		drawPipe(dst, v.project(p.Top.Box), p.Top.Flipped)
		drawPipe(dst, v.project(p.Bottom.Box), p.Bottom.Flipped)
	}

	drawBird(dst, v.project(scene.Bird.Box))

	dst.DrawTextColored(v.rect.X+1, v.rect.Y, " "+scene.ScoreText+" ", core.ColorBrightWhite)

	if scene.Overlay != nil {
		layout.Button = drawOverlay(dst, v.rect, *scene.Overlay)
	}
	return layout
}

func drawBackground(dst *core.Screen, r core.Rect) {
	dst.DrawRectColored(r, ' ', core.ColorSky)
	if r.W > 2 {
		// Ground line along the bottom edge
		for x := r.X; x < r.Right(); x++ {
			dst.SetColored(x, r.Bottom()-1, '▁', core.ColorOrange)
		}
	}
}

// drawPipe fills a pipe segment. A flipped segment hangs from the top and
// gets its cap on its last row; a normal one gets it on its first row.
func drawPipe(dst *core.Screen, r core.Rect, flipped bool) {
	if r.Empty() {
		return
	}
	dst.DrawRectColored(r, PipeChar, core.ColorGreen)

	capY, capChar := r.Y, PipeCapBottom
	if flipped {
		capY, capChar = r.Bottom()-1, PipeCapTop
	}
	for x := r.X; x < r.Right(); x++ {
		dst.SetColored(x, capY, capChar, core.ColorBrightGreen)
	}
}

func drawBird(dst *core.Screen, r core.Rect) {
	if r.Empty() {
		return
	}
	dst.DrawRectColored(r, BirdBodyChar, core.ColorYellow)
	dst.SetColored(r.Right()-1, r.Y, BirdBeakChar, core.ColorOrange)
}

// drawOverlay draws a message panel centered in area and returns the cells
// of its button, if any.
func drawOverlay(dst *core.Screen, area core.Rect, o Overlay) core.Rect {
	button := ""
	if o.Button != "" {
		button = "[ " + o.Button + " ]"
	}

	boxW := core.Max(core.Max(runeLen(o.Title), runeLen(o.Message)), runeLen(button)) + 4
	boxH := 5
	if button != "" {
		boxH = 7
	}
	boxX := area.X + (area.W-boxW)/2
	boxY := area.Y + (area.H-boxH)/2
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRectColored(box, ' ', core.ColorDefault)
	dst.DrawBoxColored(box, core.ColorBrightWhite)

	centered := func(y int, text string, c core.Color) int {
		x := boxX + (boxW-runeLen(text))/2
		dst.DrawTextColored(x, y, text, c)
		return x
	}
	centered(boxY+1, o.Title, core.ColorRed)
	centered(boxY+3, o.Message, core.ColorBrightWhite)

	if button == "" {
		return core.Rect{}
	}
	x := centered(boxY+5, button, core.ColorYellow)
	return core.NewRect(x, boxY+5, runeLen(button), 1)
}

func runeLen(s string) int {
	return len([]rune(s))
}
