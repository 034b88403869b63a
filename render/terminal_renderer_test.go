package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/countdown-tracker/constants"
	"github.com/lixenwraith/countdown-tracker/engine"
)

func TestRenderFrameLayout(t *testing.T) {
	s := newSimScreen(t, 80, 24)
	r := NewTerminalRenderer(s, "LAUNCH", true)

	r.RenderFrame(engine.ComputeSnapshot(90_061_000), false)

	titleRow := findRow(s, []string{"LAUNCH"})
	labelRow := findRow(s, []string{"DAYS", "HOURS", "MINUTES", "SECONDS"})
	valueRow := findRow(s, []string{"01", ":", "01", ":", "01", ":", "01"})

	assert.NotEqual(t, -1, titleRow)
	assert.Equal(t, titleRow+rowLabels, labelRow)
	assert.Equal(t, titleRow+rowValues, valueRow)
	assert.Contains(t, rowText(s, 23), constants.HelpText)
}

func TestRenderFrameCentersBlock(t *testing.T) {
	s := newSimScreen(t, 80, 24)
	r := NewTerminalRenderer(s, "", false)

	snap := engine.ComputeSnapshot(0)
	r.RenderFrame(snap, false)

	widths := columnWidths(snap)
	blockWidth := layoutWidth(widths)
	x0 := (80 - blockWidth) / 2
	y0 := (24 - blockRows) / 2

	labels := rowText(s, y0+rowLabels)
	assert.Equal(t, "DAYS", labels[x0:x0+4])
	assert.Equal(t, "", strings.TrimSpace(rowText(s, y0+rowTitle)))
	assert.Equal(t, "", strings.TrimSpace(rowText(s, 23)), "help hidden")
}

func TestRenderFrameExpiredBanner(t *testing.T) {
	s := newSimScreen(t, 80, 24)
	r := NewTerminalRenderer(s, "LAUNCH", false)

	r.RenderFrame(engine.ZeroSnapshot, true)

	assert.NotEqual(t, -1, findRow(s, []string{constants.ExpiredBanner}))
	assert.Equal(t, -1, findRow(s, []string{"LAUNCH"}))
	assert.NotEqual(t, -1, findRow(s, []string{"00", ":", "00", ":", "00", ":", "00"}))
}

func TestRenderFrameTinyScreen(t *testing.T) {
	s := newSimScreen(t, 8, 2)
	r := NewTerminalRenderer(s, "A VERY LONG TITLE", true)

	assert.NotPanics(t, func() {
		r.RenderFrame(engine.ComputeSnapshot(123_456_789), false)
	})
}

func TestSetTitle(t *testing.T) {
	s := newSimScreen(t, 80, 24)
	r := NewTerminalRenderer(s, "OLD", false)
	r.SetTitle("NEW")
	r.RenderFrame(engine.ZeroSnapshot, false)

	assert.NotEqual(t, -1, findRow(s, []string{"NEW"}))
}

func TestColumnWidthsUseWiderOfLabelAndValue(t *testing.T) {
	snap := engine.Snapshot{Days: "123", Hours: "01", Minutes: "02", Seconds: "03"}
	assert.Equal(t, [4]int{4, 5, 7, 7}, columnWidths(snap))

	snap.Days = "12345"
	assert.Equal(t, 5, columnWidths(snap)[0])
}
