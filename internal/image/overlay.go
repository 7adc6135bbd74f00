package image

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// AddTextOverlay draws text near the top of a 12-bit slice, in place.
//
// Text is drawn in white with a black outline for visibility against varying
// backgrounds. The pixels are converted to RGBA for drawing and back, and stay
// in the 12-bit range (0-4095).
func AddTextOverlay(pixels []uint16, width, height int, text string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", width, height)
	}
	if len(pixels) != width*height {
		return fmt.Errorf("pixel slice length %d does not match dimensions %dx%d", len(pixels), width, height)
	}
	if text == "" {
		return nil
	}

	// Pass 1: 12-bit to 8-bit RGBA
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gray := uint8((uint32(pixels[y*width+x]) * 255) / MaxValue12)
			img.SetRGBA(x, y, color.RGBA{gray, gray, gray, 255})
		}
	}

	face := basicfont.Face7x13
	paddingTop := int(float64(height) * 0.05)
	textWidth := font.MeasureString(face, text).Ceil()
	x := (width - textWidth) / 2
	y := paddingTop + face.Metrics().Ascent.Ceil()

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}

	outlineThickness := 2
	for dx := -outlineThickness; dx <= outlineThickness; dx++ {
		for dy := -outlineThickness; dy <= outlineThickness; dy++ {
			if dx != 0 || dy != 0 {
				drawer.Dot = fixed.P(x+dx, y+dy)
				drawer.DrawString(text)
			}
		}
	}

	drawer.Src = image.NewUniform(color.White)
	drawer.Dot = fixed.P(x, y)
	drawer.DrawString(text)

	// Pass 2: back to 12-bit
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			gray8 := uint8((r + g + b) / (3 * 256))
			pixels[y*width+x] = min(uint16((uint32(gray8)*MaxValue12)/255), MaxValue12)
		}
	}

	return nil
}
