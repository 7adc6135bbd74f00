package image

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// upperHalf paints the top pixel of a cell as foreground and the bottom pixel as background.
const upperHalf = "▀"

// FitCells returns the largest cols x lines block that holds a w x h image
// without distortion, given that a terminal cell covers one pixel column and
// two pixel rows.
func FitCells(w, h, maxCols, maxLines int) (cols, lines int) {
	if w <= 0 || h <= 0 || maxCols <= 0 || maxLines <= 0 {
		return 0, 0
	}
	cols = maxCols
	lines = (h * cols) / (w * 2)
	if lines > maxLines {
		lines = maxLines
		cols = (w * lines * 2) / h
	}
	return max(cols, 1), max(lines, 1)
}

// HalfBlocks scales img to cols x lines*2 pixels and draws it with half-block
// characters, one text line per two pixel rows.
func HalfBlocks(img image.Image, cols, lines int) string {
	if img == nil || cols <= 0 || lines <= 0 || img.Bounds().Empty() {
		return ""
	}

	dst := image.NewGray(image.Rect(0, 0, cols, lines*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	var sb strings.Builder
	for y := 0; y < lines; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < cols; x++ {
			top := dst.GrayAt(x, 2*y).Y
			bottom := dst.GrayAt(x, 2*y+1).Y
			sb.WriteString(lipgloss.NewStyle().
				Foreground(grayColor(top)).
				Background(grayColor(bottom)).
				Render(upperHalf))
		}
	}
	return sb.String()
}

func grayColor(v uint8) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", v, v, v))
}
