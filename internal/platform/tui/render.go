package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-arena/internal/arena"
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/skins"
)

// Glyphs for board items.
const (
	normalFoodRune  = '*'
	specialFoodRune = '$'
	deadHeadRune    = 'x'
)

var (
	styleMu     sync.Mutex
	colorStyles = map[core.Color]lipgloss.Style{
		core.ColorDefault: lipgloss.NewStyle(),
	}
)

// styleFor returns a cached lipgloss style for a colour. Hex strings and
// ANSI codes are both accepted by lipgloss.Color.
func styleFor(c core.Color) lipgloss.Style {
	styleMu.Lock()
	defer styleMu.Unlock()

	if st, ok := colorStyles[c]; ok {
		return st
	}
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(string(c)))
	colorStyles[c] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// DrawArena draws the board frame, foods and snakes. The frame takes one
// cell on each side, so dst must be at least (width+2)x(height+2).
func DrawArena(dst *core.Screen, st arena.State) {
	bounds := st.Config.Bounds()
	dst.DrawBox(core.NewRect(0, 0, bounds.W+2, bounds.H+2))

	for _, f := range st.Foods {
		r, c := normalFoodRune, core.ColorYellow
		if f.Type == arena.FoodSpecial {
			r, c = specialFoodRune, core.ColorGreen
		}
		dst.SetColored(f.Position.X+1, f.Position.Y+1, r, c)
	}

	// Dead snakes first so living ones draw on top
	for _, alivePass := range []bool{false, true} {
		for _, s := range st.Snakes {
			if s.Alive != alivePass {
				continue
			}
			drawSnake(dst, bounds, s)
		}
	}

	switch st.Status {
	case arena.StatusPaused:
		dst.DrawTextCentered(dst.Height()/2, " PAUSED ")
	case arena.StatusGameOver:
		dst.DrawTextCentered(dst.Height()/2, " GAME OVER ")
	}
}

func drawSnake(dst *core.Screen, bounds core.Rect, s arena.Snake) {
	sk := skins.ForSnake(s)
	for i := len(s.Body) - 1; i >= 0; i-- {
		p := s.Body[i]
		// A snake that died on the wall has its head off the board
		if !bounds.Contains(p) {
			continue
		}
		r, c := sk.SegmentRune(i), sk.SegmentColor(i)
		if !s.Alive {
			c = core.ColorGray
			if i == 0 {
				r = deadHeadRune
			}
		}
		dst.SetColored(p.X+1, p.Y+1, r, c)
	}
}
