package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

func newSimScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(width, height)
	t.Cleanup(s.Fini)
	return s
}

// rowText reads one screen row back as a string
func rowText(s tcell.Screen, y int) string {
	width, _ := s.Size()
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// findRow returns the first row whose fields equal want, or -1
func findRow(s tcell.Screen, want []string) int {
	_, height := s.Size()
	for y := 0; y < height; y++ {
		got := strings.Fields(rowText(s, y))
		if strings.Join(got, " ") == strings.Join(want, " ") {
			return y
		}
	}
	return -1
}
