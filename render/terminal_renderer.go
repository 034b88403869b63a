package render

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/countdown-tracker/constants"
	"github.com/lixenwraith/countdown-tracker/engine"
)

// Block rows relative to the top of the countdown block
const (
	rowTitle  = 0
	rowLabels = 2
	rowValues = 3
	blockRows = 4
)

// TerminalRenderer draws the countdown block centered on a tcell screen
type TerminalRenderer struct {
	screen   tcell.Screen
	title    atomic.Pointer[string]
	showHelp bool
	styles   Styles
}

// NewTerminalRenderer creates a renderer, an empty title leaves the title row blank
func NewTerminalRenderer(screen tcell.Screen, title string, showHelp bool) *TerminalRenderer {
	r := &TerminalRenderer{
		screen:   screen,
		showHelp: showHelp,
		styles:   DefaultStyles(),
	}
	r.title.Store(&title)
	return r
}

// SetTitle replaces the title line, safe to call while frames render
func (r *TerminalRenderer) SetTitle(title string) {
	r.title.Store(&title)
}

// RenderFrame clears the screen and draws one snapshot. Show is left to the caller
func (r *TerminalRenderer) RenderFrame(snap engine.Snapshot, expired bool) {
	r.screen.SetStyle(r.styles.Background)
	r.screen.Clear()

	width, height := r.screen.Size()
	widths := columnWidths(snap)
	blockWidth := layoutWidth(widths)

	x0 := max((width-blockWidth)/2, 0)
	y0 := max((height-blockRows)/2, 0)

	// Title line
	if expired {
		r.drawCentered(x0, y0+rowTitle, blockWidth, constants.ExpiredBanner, r.styles.Expired)
	} else if title := *r.title.Load(); title != "" {
		r.drawCentered(x0, y0+rowTitle, blockWidth, title, r.styles.Title)
	}

	values := snap.Fields()
	x := x0
	for i, w := range widths {
		if i > 0 {
			x += constants.ColumnGap
			drawText(r.screen, x, y0+rowValues, constants.FieldSeparator, r.styles.Separator)
			x += runewidth.StringWidth(constants.FieldSeparator) + constants.ColumnGap
		}
		r.drawCentered(x, y0+rowLabels, w, constants.FieldLabels[i], r.styles.Label)
		r.drawCentered(x, y0+rowValues, w, values[i], r.styles.Value)
		x += w
	}

	if r.showHelp && height > blockRows+1 {
		drawText(r.screen, 1, height-1, constants.HelpText, r.styles.Help)
	}
}

func (r *TerminalRenderer) drawCentered(x, y, width int, text string, style tcell.Style) {
	pad := max((width-runewidth.StringWidth(text))/2, 0)
	drawText(r.screen, x+pad, y, text, style)
}

// columnWidths is the wider of label and value per field
func columnWidths(snap engine.Snapshot) [4]int {
	var widths [4]int
	for i, v := range snap.Fields() {
		widths[i] = max(runewidth.StringWidth(constants.FieldLabels[i]), runewidth.StringWidth(v))
	}
	return widths
}

func layoutWidth(widths [4]int) int {
	sep := runewidth.StringWidth(constants.FieldSeparator) + 2*constants.ColumnGap
	total := sep * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	return total
}

// drawText writes text starting at x, cells outside the screen are dropped by tcell
func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		s.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
}
