package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"github.com/vovakirdan/wasmcade/internal/core"
)

// halfBlock paints the upper half of a cell in the foreground colour and
// leaves the lower half to the background, giving two pixels per cell.
const halfBlock = '▀'

// SurfaceSize returns the surface size presented in a cols × rows terminal.
// Each cell shows two vertically stacked pixels, each scale surface pixels wide.
func SurfaceSize(cols, rows, scale int) core.Size {
	return core.NewSize(cols*scale, rows*2*scale)
}

// downsample scales src to cols × rows*2 pixels composited over black.
func downsample(src image.Image, cols, rows int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	if !src.Bounds().Empty() {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	}
	return dst
}

// cellColors is the pixel pair shown by one cell.
type cellColors struct {
	upper, lower color.RGBA
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// RenderSurface converts a surface image to a styled string of cols × rows
// half-block cells. Groups adjacent cells with the same colours to minimize
// ANSI escape sequences.
func RenderSurface(src image.Image, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	px := downsample(src, cols, rows)
	styles := make(map[cellColors]lipgloss.Style)

	var sb strings.Builder
	sb.Grow(cols*rows*4 + rows)

	for y := range rows {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < cols {
			start := cellColors{upper: px.RGBAAt(x, 2*y), lower: px.RGBAAt(x, 2*y+1)}

			// Collect consecutive cells with the same colours
			n := 0
			for x < cols {
				cell := cellColors{upper: px.RGBAAt(x, 2*y), lower: px.RGBAAt(x, 2*y+1)}
				if cell != start {
					break
				}
				n++
				x++
			}

			style, ok := styles[start]
			if !ok {
				style = lipgloss.NewStyle().
					Foreground(hexColor(start.upper)).
					Background(hexColor(start.lower))
				styles[start] = style
			}
			sb.WriteString(style.Render(strings.Repeat(string(halfBlock), n)))
		}
	}
	return sb.String()
}
