package dario

import (
	"fmt"

	"github.com/vovakirdan/tui-dario/internal/core"
	"github.com/vovakirdan/tui-dario/internal/games/dario/engine"
)

const (
	cellWidth = 2  // Screen columns per grid column
	hudWidth  = 14 // Columns right of the bottle
	hudGap    = 2
	titleRows = 2
)

// glyphs are the two-column pictures of each object type.
var glyphs = map[engine.ObjectType]string{
	engine.Empty:       "  ",
	engine.Destroyed:   "**",
	engine.Virus:       "><",
	engine.PillSegment: "()",
	engine.PillTop:     "/\\",
	engine.PillBottom:  "\\/",
	engine.PillLeft:    "(=",
	engine.PillRight:   "=)",
}

// screenColor maps engine colors to terminal colors.
func screenColor(c engine.Color) core.Color {
	switch c {
	case engine.Color1:
		return core.ColorRed
	case engine.Color2:
		return core.ColorYellow
	case engine.Color3:
		return core.ColorBlue
	default:
		return core.ColorDefault
	}
}

// layout is where the bottle goes on the screen.
type layout struct {
	bottle core.Rect // Including the border
	hudX   int
}

// fit places a bottle of cols by rows visible cells on a w by h screen.
func fit(w, h, cols, rows int) (layout, bool) {
	bw := cols*cellWidth + 2
	bh := rows + 2
	total := bw + hudGap + hudWidth
	if w < total || h < bh+titleRows {
		return layout{}, false
	}
	x := (w - total) / 2
	y := titleRows + (h-titleRows-bh)/2
	return layout{
		bottle: core.NewRect(x, y, bw, bh),
		hudX:   x + bw + hudGap,
	}, true
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	st := g.eng.State()
	opts := g.eng.Options()

	renderTitle(dst, fmt.Sprintf(" %s - Level %d", g.Title(), opts.Level))

	l, ok := fit(dst.Width(), dst.Height(), opts.Width, opts.Height)
	if !ok {
		renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	drawBottle(dst, l, st)
	g.renderHUD(dst, l, st, opts)

	switch {
	case st.Mode == engine.ModeWon && g.mode == ModeMarathon:
		renderOverlay(dst, fmt.Sprintf("Level %d cleared!", opts.Level), fmt.Sprintf("Bonus: %d", st.TimeBonus))
	case st.Mode == engine.ModeWon:
		renderOverlay(dst, "You Win!", fmt.Sprintf("Score: %d  R to restart", g.State().Score))
	case st.Mode == engine.ModeLost:
		renderOverlay(dst, "Game Over", "Press R to restart")
	case st.Mode == engine.ModePaused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// RenderState draws a bare engine state the way a spectator sees it: the
// bottle with the score, virus count and next pill beside it.
func RenderState(dst *core.Screen, st engine.GameState) {
	dst.Clear()
	renderTitle(dst, fmt.Sprintf(" Watching - %s", st.Mode))

	l, ok := fit(dst.Width(), dst.Height(), st.Grid.Cols(), st.Grid.Rows()-1)
	if !ok {
		renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}
	drawBottle(dst, l, st)

	x, y := l.hudX, l.bottle.Y
	dst.DrawTextColored(x, y, "SCORE", core.ColorGray)
	dst.DrawText(x, y+1, fmt.Sprintf("%07d", st.Score+st.TimeBonus))
	dst.DrawTextColored(x, y+3, "VIRUS", core.ColorGray)
	dst.DrawText(x+7, y+3, fmt.Sprintf("%2d", st.Viruses()))
	dst.DrawTextColored(x, y+4, "PILLS", core.ColorGray)
	dst.DrawText(x+7, y+4, fmt.Sprintf("%2d", st.PillCount))
	drawNext(dst, x, y+6, st)
}

func renderTitle(dst *core.Screen, title string) {
	dst.DrawText(0, 0, title)
	for x := 0; x < dst.Width(); x++ {
		dst.Set(x, 1, '─')
	}
}

// drawBottle draws the grid inside its border. Row 0 is the spawn row and
// sits on the top border, where the bottle neck is.
func drawBottle(dst *core.Screen, l layout, st engine.GameState) {
	b := l.bottle
	dst.DrawBox(b, core.ColorWhite)

	grid := st.Grid
	for row := 0; row < grid.Rows(); row++ {
		y := b.Y + row
		for col := 0; col < grid.Cols(); col++ {
			obj := grid.At(engine.Loc(row, col))
			if row == 0 && obj.IsEmpty() {
				continue
			}
			x := b.X + 1 + col*cellWidth
			c := screenColor(obj.Color)
			if obj.Type == engine.Destroyed {
				c = core.ColorWhite
			}
			dst.DrawTextColored(x, y, glyphs[obj.Type], c)
		}
	}
}

func (g *Game) renderHUD(dst *core.Screen, l layout, st engine.GameState, opts engine.Options) {
	x, y := l.hudX, l.bottle.Y

	dst.DrawTextColored(x, y, "SCORE", core.ColorGray)
	dst.DrawText(x, y+1, fmt.Sprintf("%07d", g.carried+st.Score+st.TimeBonus))

	dst.DrawTextColored(x, y+3, "LEVEL", core.ColorGray)
	dst.DrawText(x+7, y+3, fmt.Sprintf("%2d", opts.Level))
	dst.DrawTextColored(x, y+4, "SPEED", core.ColorGray)
	dst.DrawText(x+7, y+4, fmt.Sprintf("%2d", opts.BaseSpeed))
	dst.DrawTextColored(x, y+5, "VIRUS", core.ColorGray)
	dst.DrawText(x+7, y+5, fmt.Sprintf("%2d", st.Viruses()))

	drawNext(dst, x, y+7, st)

	if g.mode == ModeMarathon {
		dst.DrawTextColored(x, y+10, "CLEARED", core.ColorGray)
		dst.DrawText(x+8, y+10, fmt.Sprintf("%d", g.cleared))
	}
	if st.ComboLineCount > 1 {
		dst.DrawTextColored(x, y+12, fmt.Sprintf("COMBO x%d", st.ComboLineCount), core.ColorMagenta)
	}
}

func drawNext(dst *core.Screen, x, y int, st engine.GameState) {
	dst.DrawTextColored(x, y, "NEXT", core.ColorGray)
	dst.DrawTextColored(x+1, y+1, glyphs[engine.PillLeft], screenColor(st.NextPill[0]))
	dst.DrawTextColored(x+3, y+1, glyphs[engine.PillRight], screenColor(st.NextPill[1]))
}

// renderOverlay draws a centered overlay message.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	w, h := dst.Width(), dst.Height()

	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		for x := box.X + 1; x < box.Right()-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorDefault)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
