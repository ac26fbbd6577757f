package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanvas(t *testing.T) {
	lines := canvas("ab\nlonger line\n", 5, 4)
	assert.Equal(t, []string{"ab   ", "longe", "     ", "     "}, lines)
}

func TestOverlay(t *testing.T) {
	tests := []struct {
		name  string
		block string
		x, y  int
		want  []string
	}{
		{
			name:  "inside",
			block: "XY\nZW",
			x:     1, y: 1,
			want: []string{"....", ".XY.", ".ZW.", "...."},
		},
		{
			name:  "clipped right and bottom",
			block: "XYZ\nUVW",
			x:     2, y: 3,
			want: []string{"....", "....", "....", "..XY"},
		},
		{
			name:  "clipped left and top",
			block: "XYZ\nUVW",
			x:     -1, y: -1,
			want: []string{"VW..", "....", "....", "...."},
		},
		{
			name:  "off screen",
			block: "X",
			x:     9, y: 0,
			want: []string{"....", "....", "....", "...."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bg := canvas(strings.Repeat("....\n", 4), 4, 4)
			overlay(bg, tt.block, tt.x, tt.y)
			assert.Equal(t, tt.want, bg)
		})
	}
}

func TestRenderControl(t *testing.T) {
	lines := strings.Split(renderControl(3, false), "\n")
	assert.Len(t, lines, 3)
	for _, line := range lines {
		assert.Len(t, []rune(line), 3)
	}
	assert.Contains(t, lines[1], controlGlyph)

	assert.Equal(t, "██\n██", renderControl(2, false))
	assert.Empty(t, renderControl(0, false))
}
