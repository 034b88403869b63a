package render

import "github.com/gdamore/tcell/v2"

// RGB color definitions for the countdown display
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbLabel      = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbValue      = tcell.NewRGBColor(255, 255, 255) // White
	RgbSeparator  = tcell.NewRGBColor(100, 150, 255) // Normal Blue
	RgbTitle      = tcell.NewRGBColor(140, 190, 255) // Bright Blue
	RgbExpired    = tcell.NewRGBColor(255, 80, 80)   // Normal Red
	RgbHelp       = tcell.NewRGBColor(90, 90, 110)   // Dim gray
)

// Styles bundles the styles used by TerminalRenderer
type Styles struct {
	Background tcell.Style
	Label      tcell.Style
	Value      tcell.Style
	Separator  tcell.Style
	Title      tcell.Style
	Expired    tcell.Style
	Help       tcell.Style
}

// DefaultStyles returns the truecolor palette on the dark background
func DefaultStyles() Styles {
	bg := tcell.StyleDefault.Background(RgbBackground)
	return Styles{
		Background: bg,
		Label:      bg.Foreground(RgbLabel),
		Value:      bg.Foreground(RgbValue).Bold(true),
		Separator:  bg.Foreground(RgbSeparator),
		Title:      bg.Foreground(RgbTitle).Bold(true),
		Expired:    bg.Foreground(RgbExpired).Bold(true).Blink(true),
		Help:       bg.Foreground(RgbHelp),
	}
}
