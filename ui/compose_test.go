package ui

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOverlayPlainText(t *testing.T) {
	bg := strings.Join([]string{"..........", "..........", ".........."}, "\n")
	fg := "AB\nCD"

	out := PlaceOverlay(3, 1, fg, bg)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "..........", lines[0])
	assert.Equal(t, "...AB.....", lines[1])
	assert.Equal(t, "...CD.....", lines[2])
}

func TestPlaceOverlayClipsOffscreen(t *testing.T) {
	bg := "....\n...."
	out := PlaceOverlay(2, 0, "ABCDE", bg)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "..ABCDE", lines[0], "overlay may extend past the bg line")

	out = PlaceOverlay(-1, 0, "ABC", bg)
	lines = strings.Split(out, "\n")
	assert.Equal(t, "BC..", lines[0], "columns left of the screen are cut")
}

func TestPlaceOverlayKeepsWidthWithStyledBackground(t *testing.T) {
	bg := Wallpaper(10, 2)
	out := PlaceOverlay(4, 0, "XY", bg)
	for _, line := range strings.Split(out, "\n") {
		assert.Equal(t, 10, ansi.PrintableRuneWidth(line))
	}
	assert.Contains(t, out, "XY")
}

func TestWallpaperShape(t *testing.T) {
	lines := strings.Split(Wallpaper(6, 3), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, 6, ansi.PrintableRuneWidth(line))
	}
	assert.Equal(t, "", Wallpaper(0, 3))
}

func TestFitBlock(t *testing.T) {
	out := fitBlock("ab\ncdefgh", 4, 3)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ab  ", lines[0])
	assert.Equal(t, "cdef", lines[1])
	assert.Equal(t, "    ", lines[2])
}

func TestCenter(t *testing.T) {
	x, y := Center(20, 10, "abcd\nefgh")
	assert.Equal(t, 8, x)
	assert.Equal(t, 4, y)

	x, y = Center(2, 1, "abcd\nefgh")
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}
