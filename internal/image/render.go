// Package image turns raw DICOM pixel buffers into grayscale bitmaps and draws
// them for the terminal and for export.
package image

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrInvalidGeometry means Rows or Columns is zero.
	ErrInvalidGeometry = errors.New("invalid dimensions")
	// ErrBufferTooShort means the pixel buffer does not cover the layout.
	ErrBufferTooShort = errors.New("pixel buffer too short")
)

// Geometry is the declared size of a frame.
type Geometry struct {
	Rows    uint16
	Columns uint16
}

// Valid reports whether both dimensions are positive.
func (g Geometry) Valid() bool {
	return g.Rows > 0 && g.Columns > 0
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Columns, g.Rows)
}

// Layout describes how a bitmap is cut out of a raw buffer.
type Layout struct {
	Offset int  // First byte used
	Width  int  // Pixels per row
	Height int  // Rows
	Stride int  // Bytes between the starts of two rows
	Padded bool // Every row needs its full stride
}

// Size is the number of bytes the layout needs after Offset. An unpadded
// layout needs Width*Height bytes; rows running past the buffer are zero.
func (l Layout) Size() int {
	if l.Height <= 0 {
		return 0
	}
	if l.Padded {
		return l.Stride * l.Height
	}
	return l.Width * l.Height
}

// LeftLayout reads the whole buffer: columns x rows at a stride of columns*2.
// The buffer must hold stride*rows bytes.
func LeftLayout(g Geometry) Layout {
	cols := int(g.Columns)
	return Layout{
		Offset: 0,
		Width:  cols,
		Height: int(g.Rows),
		Stride: cols * 2,
		Padded: true,
	}
}

// RightLayout starts (columns/2)*2 bytes in, (columns/2)*2 pixels wide at a
// stride of (columns/2)*4, and runs to the end of the buffer. It needs
// width*rows bytes after the offset, which a full 16-bit frame always holds.
func RightLayout(g Geometry) Layout {
	half := int(g.Columns) / 2
	return Layout{
		Offset: half * 2,
		Width:  half * 2,
		Height: int(g.Rows),
		Stride: half * 4,
	}
}

// RenderLeft builds the left bitmap of a frame.
func RenderLeft(buf []byte, g Geometry) (*image.Gray, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("left image %s: %w", g, ErrInvalidGeometry)
	}
	img, err := Cut(buf, LeftLayout(g))
	if err != nil {
		return nil, fmt.Errorf("left image %s: %w", g, err)
	}
	return img, nil
}

// RenderRight builds the right bitmap of a frame.
func RenderRight(buf []byte, g Geometry) (*image.Gray, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("right image %s: %w", g, ErrInvalidGeometry)
	}
	img, err := Cut(buf, RightLayout(g))
	if err != nil {
		return nil, fmt.Errorf("right image %s: %w", g, err)
	}
	return img, nil
}

// Cut copies the bytes described by l into a new 8-bit grayscale image. buf is
// never modified and the result does not alias it.
func Cut(buf []byte, l Layout) (*image.Gray, error) {
	if l.Width <= 0 || l.Height <= 0 || l.Stride < l.Width {
		return nil, ErrInvalidGeometry
	}
	if l.Offset > len(buf) || len(buf)-l.Offset < l.Size() {
		return nil, fmt.Errorf("%w: have %d bytes after offset %d, need %d",
			ErrBufferTooShort, max(len(buf)-l.Offset, 0), l.Offset, l.Size())
	}

	// Whatever lies past the end of buf stays zero.
	pix := make([]byte, l.Stride*l.Height)
	copy(pix, buf[l.Offset:])

	return &image.Gray{
		Pix:    pix,
		Stride: l.Stride,
		Rect:   image.Rect(0, 0, l.Width, l.Height),
	}, nil
}
