package falling

import (
	"fmt"
	"maps"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/drop-arcade/internal/config"
	"github.com/vovakirdan/drop-arcade/internal/core"
	"github.com/vovakirdan/drop-arcade/internal/engine"
)

// Glyph is how one entity class is drawn.
type Glyph struct {
	Rune  rune
	Color core.Color
}

// Theme maps a variant's entities to glyphs.
type Theme struct {
	Player      Glyph
	Classes     map[string]Glyph // by entity class name
	Start       string           // idle overlay subtitle
	BorderColor core.Color
}

// withConfig returns a copy of t where entity classes that set a glyph or
// color in cfg are drawn with it. Unset fields keep the theme's choice.
func (t Theme) withConfig(cfg config.VariantConfig) Theme {
	classes := make(map[string]Glyph, len(t.Classes)+len(cfg.Entities))
	maps.Copy(classes, t.Classes)

	for _, e := range cfg.Entities {
		if e.Glyph == "" && e.Color == "" {
			continue
		}
		gl, ok := classes[e.Name]
		if !ok {
			gl = kindGlyphs[engine.ParseKind(e.Kind)]
		}
		if r, _ := utf8.DecodeRuneInString(e.Glyph); e.Glyph != "" {
			gl.Rune = r
		}
		if c, err := core.ParseColor(e.Color); err == nil {
			gl.Color = c
		}
		classes[e.Name] = gl
	}

	t.Classes = classes
	return t
}

// Fallback glyphs per kind, used when a class has no entry in the theme.
var kindGlyphs = map[engine.Kind]Glyph{
	engine.KindHazard:      {'█', core.ColorRed},
	engine.KindCollectible: {'●', core.ColorBrightGreen},
	engine.KindShield:      {'◆', core.ColorBrightCyan},
	engine.KindSlow:        {'⧗', core.ColorMagenta},
}

const (
	BorderChar = '│'
	GroundChar = '═'
	hudRows    = 1
)

// cellAspect is how many columns make up one row visually.
const cellAspect = 2.0

// viewport maps playfield units to screen cells.
type viewport struct {
	ox, oy int     // top-left cell of the playfield
	w, h   int     // playfield size in cells
	sx, sy float64 // cells per playfield unit
}

func newViewport(screenW, screenH int, fieldW, fieldH float64) viewport {
	h := max(screenH-hudRows-1, 1) // HUD on top, ground at the bottom
	w := int(math.Round(float64(h) * fieldW / fieldH * cellAspect))
	w = core.Clamp(w, 1, max(screenW-2, 1))
	return viewport{
		ox: (screenW - w) / 2,
		oy: hudRows,
		w:  w,
		h:  h,
		sx: float64(w) / fieldW,
		sy: float64(h) / fieldH,
	}
}

// cells converts a playfield box to a cell rectangle, at least one cell in
// each direction, clipped to the viewport.
func (v viewport) cells(b core.Box) core.Rect {
	x0 := int(math.Floor(b.X * v.sx))
	y0 := int(math.Floor(b.Y * v.sy))
	x1 := max(int(math.Ceil(b.Right()*v.sx)), x0+1)
	y1 := max(int(math.Ceil(b.Bottom()*v.sy)), y0+1)

	x0, x1 = core.Clamp(x0, 0, v.w), core.Clamp(x1, 0, v.w)
	y0, y1 = core.Clamp(y0, 0, v.h), core.Clamp(y1, 0, v.h)
	return core.NewRect(v.ox+x0, v.oy+y0, x1-x0, y1-y0)
}

// center returns the playfield coordinates of the middle of a cell.
func (v viewport) center(cx, cy int) (float64, float64) {
	return (float64(cx-v.ox) + 0.5) / v.sx, (float64(cy-v.oy) + 0.5) / v.sy
}

// Render draws the current session snapshot.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.session.Snapshot()
	vp := newViewport(dst.Width(), dst.Height(), snap.Width, snap.Height)

	g.drawField(dst, vp)
	for _, e := range snap.Entities {
		g.drawEntity(dst, vp, e)
	}
	g.drawPlayer(dst, vp, snap)
	g.drawHUD(dst, snap)

	switch snap.Phase {
	case engine.PhaseIdle:
		start := g.theme.Start
		if start == "" {
			start = "Space/Enter to start"
		}
		drawCenteredMessage(dst, strings.ToUpper(snap.Title), start)
	case engine.PhasePaused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume  |  R to restart")
	case engine.PhaseGameOver:
		title := "GAME OVER"
		if snap.NewBest {
			title = "NEW BEST!"
		}
		drawCenteredMessage(dst, title,
			fmt.Sprintf("Score: %d  Best: %d  |  Press R to restart", snap.Score, snap.Best))
	}
}

func (g *Game) drawField(dst *core.Screen, vp viewport) {
	for y := vp.oy; y < vp.oy+vp.h; y++ {
		dst.SetColor(vp.ox-1, y, BorderChar, g.theme.BorderColor)
		dst.SetColor(vp.ox+vp.w, y, BorderChar, g.theme.BorderColor)
	}
	for x := vp.ox - 1; x <= vp.ox+vp.w; x++ {
		dst.SetColor(x, vp.oy+vp.h, GroundChar, g.theme.BorderColor)
	}
}

func (g *Game) glyph(e engine.EntityView) Glyph {
	if gl, ok := g.theme.Classes[e.Class]; ok {
		return gl
	}
	return kindGlyphs[e.Kind]
}

func (g *Game) drawEntity(dst *core.Screen, vp viewport, e engine.EntityView) {
	gl := g.glyph(e)
	r := vp.cells(e.Box)
	if r.W == 0 || r.H == 0 {
		return
	}

	if e.Shape != engine.ShapeCircle {
		dst.DrawRect(r, gl.Rune, gl.Color)
		return
	}

	// Fill the cells whose centers fall inside the circle.
	cx, cy := e.Box.X+e.Radius, e.Box.Y+e.Radius
	drawn := false
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			px, py := vp.center(x, y)
			if (px-cx)*(px-cx)+(py-cy)*(py-cy) <= e.Radius*e.Radius {
				dst.SetColor(x, y, gl.Rune, gl.Color)
				drawn = true
			}
		}
	}
	if !drawn {
		c := vp.cells(core.NewBox(cx, cy, 0, 0))
		dst.SetColor(c.X, c.Y, gl.Rune, gl.Color)
	}
}

func (g *Game) drawPlayer(dst *core.Screen, vp viewport, snap engine.Snapshot) {
	color := g.theme.Player.Color
	switch {
	case snap.Invulnerable && int(snap.Elapsed)/4%2 == 1:
		color = core.ColorGray
	case snap.Dashing:
		color = core.ColorBrightYellow
	case snap.Shield > 0:
		color = core.ColorBrightCyan
	}
	dst.DrawRect(vp.cells(snap.Player), g.theme.Player.Rune, color)
}

func (g *Game) drawHUD(dst *core.Screen, snap engine.Snapshot) {
	dst.DrawText(1, 0, hudLine(snap))
}

// hudLine formats the status bar.
func hudLine(snap engine.Snapshot) string {
	parts := []string{
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("Best: %d", snap.Best),
	}
	if snap.Stepped {
		parts = append(parts, fmt.Sprintf("Level: %d", snap.Level))
	} else {
		parts = append(parts, fmt.Sprintf("Speed: %.1fx", snap.Speed))
	}
	if snap.MissLimit > 0 {
		parts = append(parts, fmt.Sprintf("Misses: %d/%d", snap.Misses, snap.MissLimit))
	} else if snap.Lives > 1 || snap.Stepped {
		parts = append(parts, "Lives: "+strings.Repeat("♥", snap.Lives))
	}
	if snap.Shield > 0 {
		parts = append(parts, fmt.Sprintf("Shield x%d", snap.Shield))
	}
	if snap.SlowFrames > 0 {
		parts = append(parts, fmt.Sprintf("Slow %.0fs", math.Ceil(snap.SlowFrames/60)))
	}
	if snap.HasDash {
		if snap.DashReady {
			parts = append(parts, "Dash ready")
		} else {
			parts = append(parts, "Dash --")
		}
	}
	return strings.Join(parts, "  ")
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	tw, sw := len([]rune(title)), len([]rune(subtitle))
	boxW := core.Max(tw, sw) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColor(boxX+(boxW-tw)/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-sw)/2, boxY+3, subtitle)
}
