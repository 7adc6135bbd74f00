package playback

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/mrsinham/dicomloop/internal/dicom"
	dcmimage "github.com/mrsinham/dicomloop/internal/image"
	"github.com/mrsinham/dicomloop/internal/util"
)

// ErrNoPixelData is reported for frames without a PixelData element.
var ErrNoPixelData = errors.New("no pixel data")

// FrameView is everything the display needs for one frame.
type FrameView struct {
	Index    int
	Filename string
	Left     *image.Gray
	Right    *image.Gray
	Text     string
	Stats    dcmimage.Stats
	Geometry dcmimage.Geometry
	Err      error // Set when the frame cannot be drawn; Text is always filled
}

// HasImage reports whether both bitmaps are available.
func (v FrameView) HasImage() bool {
	return v.Err == nil && v.Left != nil && v.Right != nil
}

// Options configures a Session.
type Options struct {
	Interval    time.Duration
	ExtraFields []util.TagInfo
}

// Session owns the loaded frames and the playback driver for as long as the
// viewer shows them.
type Session struct {
	frames []dicom.Frame
	driver *Driver
	extra  []util.TagInfo
}

// NewSession takes ownership of frames.
func NewSession(frames []dicom.Frame, opts Options) *Session {
	return &Session{
		frames: frames,
		driver: NewDriver(len(frames), opts.Interval),
		extra:  opts.ExtraFields,
	}
}

func (s *Session) Driver() *Driver { return s.driver }

func (s *Session) Len() int { return len(s.frames) }

func (s *Session) Cursor() int { return s.driver.Cursor() }

// Frame returns the frame at i.
func (s *Session) Frame(i int) (dicom.Frame, bool) {
	if i < 0 || i >= len(s.frames) {
		return dicom.Frame{}, false
	}
	return s.frames[i], true
}

// Current returns the view of the frame under the cursor.
func (s *Session) Current() (FrameView, bool) {
	return s.View(s.driver.Cursor())
}

// View renders frame i. ok is false only when i is out of range; a frame that
// cannot be drawn still yields its file name and metadata with Err set.
func (s *Session) View(i int) (FrameView, bool) {
	f, ok := s.Frame(i)
	if !ok {
		return FrameView{}, false
	}

	v := FrameView{
		Index:    i,
		Filename: f.Filename,
		Text:     dicom.FormatMetadata(f.Dataset, s.extra...),
	}
	if buf, ok := f.Dataset.PixelBuffer(); ok {
		v.Stats = dcmimage.BufferStats(buf)
	}
	v.Geometry, _ = f.Dataset.Geometry()
	v.Left, v.Right, v.Err = RenderFrame(f.Dataset)
	return v, true
}

// RenderFrame builds the left and right bitmaps of ds. Missing pixel data,
// missing or zero geometry and short buffers are returned as errors.
func RenderFrame(ds dicom.Dataset) (left, right *image.Gray, err error) {
	buf, ok := ds.PixelBuffer()
	if !ok {
		return nil, nil, ErrNoPixelData
	}
	g, ok := ds.Geometry()
	if !ok {
		return nil, nil, fmt.Errorf("rows/columns missing: %w", dcmimage.ErrInvalidGeometry)
	}

	left, err = dcmimage.RenderLeft(buf, g)
	if err != nil {
		return nil, nil, err
	}
	right, err = dcmimage.RenderRight(buf, g)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}
