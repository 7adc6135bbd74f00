package image

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"time"

	"golang.org/x/image/draw"
)

// SideBySide places right next to left on a black background.
func SideBySide(left, right image.Image) *image.Gray {
	lb, rb := left.Bounds(), right.Bounds()
	out := image.NewGray(image.Rect(0, 0, lb.Dx()+rb.Dx(), max(lb.Dy(), rb.Dy())))
	draw.Draw(out, image.Rect(0, 0, lb.Dx(), lb.Dy()), left, lb.Min, draw.Src)
	draw.Draw(out, image.Rect(lb.Dx(), 0, lb.Dx()+rb.Dx(), rb.Dy()), right, rb.Min, draw.Src)
	return out
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

var grayPalette = func() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return p
}()

// GIFDelay converts a playback interval into GIF delay units (1/100 s), at least 1.
func GIFDelay(interval time.Duration) int {
	return max(int(interval/(10*time.Millisecond)), 1)
}

// EncodeGIF writes frames as a looping animated GIF with a 256-level gray palette.
func EncodeGIF(w io.Writer, frames []*image.Gray, interval time.Duration) error {
	if len(frames) == 0 {
		return fmt.Errorf("encode gif: no frames")
	}

	anim := &gif.GIF{LoopCount: 0}
	delay := GIFDelay(interval)
	for _, f := range frames {
		b := f.Bounds()
		p := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), grayPalette)
		draw.Draw(p, p.Bounds(), f, b.Min, draw.Src)
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, delay)
		anim.Config.Width = max(anim.Config.Width, b.Dx())
		anim.Config.Height = max(anim.Config.Height, b.Dy())
	}
	anim.Config.ColorModel = grayPalette

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}
