package playback

import (
	"errors"
	"strings"
	"testing"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	dcmdicom "github.com/mrsinham/dicomloop/internal/dicom"
	dcmimage "github.com/mrsinham/dicomloop/internal/image"
	"github.com/mrsinham/dicomloop/internal/util"
)

func element(t *testing.T, tg tag.Tag, value any) *dicom.Element {
	t.Helper()
	elem, err := dicom.NewElement(tg, value)
	if err != nil {
		t.Fatalf("NewElement(%v): %v", tg, err)
	}
	return elem
}

func pixelElement(t *testing.T, buf []byte) *dicom.Element {
	return element(t, tag.PixelData, dicom.PixelDataInfo{
		IntentionallyUnprocessed: true,
		UnprocessedValueData:     buf,
	})
}

// frame builds a 16-bit rows x cols frame.
func frame(t *testing.T, name string, rows, cols int) dcmdicom.Frame {
	t.Helper()
	buf := make([]byte, rows*cols*2)
	for i := range buf {
		buf[i] = byte(i)
	}
	return dcmdicom.Frame{
		Filename: name,
		Dataset: dcmdicom.FromElements(
			element(t, tag.PatientName, []string{"DOE^JANE"}),
			element(t, tag.Modality, []string{"MR"}),
			element(t, tag.StudyDate, []string{"20240115"}),
			element(t, tag.Rows, []int{rows}),
			element(t, tag.Columns, []int{cols}),
			pixelElement(t, buf),
		),
	}
}

func TestSession_View(t *testing.T) {
	s := NewSession([]dcmdicom.Frame{
		frame(t, "1-01.dcm", 4, 6),
		frame(t, "1-02.dcm", 4, 6),
	}, Options{})

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}

	v, ok := s.View(1)
	if !ok {
		t.Fatal("View(1) out of range")
	}
	if v.Filename != "1-02.dcm" {
		t.Errorf("Filename = %q", v.Filename)
	}
	if !v.HasImage() {
		t.Fatalf("Expected image, got error %v", v.Err)
	}
	if v.Left.Bounds().Dx() != 6 || v.Right.Bounds().Dx() != 6 {
		t.Errorf("Unexpected widths %d and %d", v.Left.Bounds().Dx(), v.Right.Bounds().Dx())
	}
	want := "Patient Name: DOE^JANE\nModality: MR\nStudy Date: 20240115"
	if v.Text != want {
		t.Errorf("Text = %q, want %q", v.Text, want)
	}
	if v.Stats.Count != 48 {
		t.Errorf("Stats.Count = %d, want 48", v.Stats.Count)
	}
	if v.Geometry != (dcmimage.Geometry{Rows: 4, Columns: 6}) {
		t.Errorf("Geometry = %v", v.Geometry)
	}
}

func TestSession_ViewOutOfRange(t *testing.T) {
	s := NewSession(nil, Options{})
	for _, i := range []int{-1, 0, 1} {
		if _, ok := s.View(i); ok {
			t.Errorf("View(%d) should be out of range", i)
		}
	}
	if _, ok := s.Current(); ok {
		t.Error("Current on an empty session should not be ok")
	}
}

func TestSession_CurrentFollowsDriver(t *testing.T) {
	s := NewSession([]dcmdicom.Frame{
		frame(t, "a-1.dcm", 2, 2),
		frame(t, "a-2.dcm", 2, 2),
		frame(t, "a-3.dcm", 2, 2),
	}, Options{Interval: testInterval})

	pump(t, s.Driver(), s.Driver().Start(), 4)

	v, ok := s.Current()
	if !ok {
		t.Fatal("Current not ok")
	}
	if v.Index != 1 || v.Filename != "a-2.dcm" {
		t.Errorf("Current = %d %q, want 1 a-2.dcm", v.Index, v.Filename)
	}
}

func TestSession_ExtraFields(t *testing.T) {
	extra, err := util.ResolveTags([]string{"PatientSex"})
	if err != nil {
		t.Fatalf("ResolveTags: %v", err)
	}
	s := NewSession([]dcmdicom.Frame{frame(t, "x-1.dcm", 2, 2)}, Options{ExtraFields: extra})

	v, _ := s.View(0)
	if !strings.HasSuffix(v.Text, "\nPatientSex: Unknown") {
		t.Errorf("Extra field missing from %q", v.Text)
	}
}

func TestRenderFrame_Failures(t *testing.T) {
	tests := []struct {
		name  string
		elems func(t *testing.T) []*dicom.Element
		want  error
	}{
		{
			name: "no pixel data",
			elems: func(t *testing.T) []*dicom.Element {
				return []*dicom.Element{
					element(t, tag.Rows, []int{2}),
					element(t, tag.Columns, []int{2}),
				}
			},
			want: ErrNoPixelData,
		},
		{
			name: "missing geometry",
			elems: func(t *testing.T) []*dicom.Element {
				return []*dicom.Element{pixelElement(t, make([]byte, 8))}
			},
			want: dcmimage.ErrInvalidGeometry,
		},
		{
			name: "zero rows",
			elems: func(t *testing.T) []*dicom.Element {
				return []*dicom.Element{
					element(t, tag.Rows, []int{0}),
					element(t, tag.Columns, []int{2}),
					pixelElement(t, make([]byte, 8)),
				}
			},
			want: dcmimage.ErrInvalidGeometry,
		},
		{
			name: "short buffer",
			elems: func(t *testing.T) []*dicom.Element {
				return []*dicom.Element{
					element(t, tag.Rows, []int{4}),
					element(t, tag.Columns, []int{4}),
					pixelElement(t, make([]byte, 10)),
				}
			},
			want: dcmimage.ErrBufferTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right, err := RenderFrame(dcmdicom.FromElements(tt.elems(t)...))
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			if left != nil || right != nil {
				t.Error("Expected no bitmaps on failure")
			}
		})
	}
}

func TestSession_BrokenFrameKeepsText(t *testing.T) {
	broken := dcmdicom.Frame{
		Filename: "1-09.dcm",
		Dataset:  dcmdicom.FromElements(element(t, tag.Modality, []string{"CT"})),
	}
	s := NewSession([]dcmdicom.Frame{broken}, Options{})

	v, ok := s.View(0)
	if !ok {
		t.Fatal("View(0) out of range")
	}
	if v.HasImage() {
		t.Error("Broken frame should have no image")
	}
	if !errors.Is(v.Err, ErrNoPixelData) {
		t.Errorf("Err = %v, want ErrNoPixelData", v.Err)
	}
	if !strings.Contains(v.Text, "Modality: CT") || !strings.Contains(v.Text, "Patient Name: Unknown") {
		t.Errorf("Unexpected text %q", v.Text)
	}
}
