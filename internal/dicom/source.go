// Package dicom loads DICOM series from disk and exposes the handful of
// attributes the viewer reads. Parsing is delegated to github.com/suyashkumar/dicom.
package dicom

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	dcmimage "github.com/mrsinham/dicomloop/internal/image"
)

// ErrEmptyDataset is returned when a file parses but holds no elements.
var ErrEmptyDataset = errors.New("empty dataset")

// Dataset is a read-only view over a parsed DICOM dataset.
type Dataset struct {
	ds dicom.Dataset
}

// Open parses the file at path. Pixel data is kept as the raw element bytes.
func Open(path string) (Dataset, error) {
	ds, err := dicom.ParseFile(path, nil, dicom.SkipProcessingPixelDataValue())
	if err != nil {
		return Dataset{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(ds.Elements) == 0 {
		return Dataset{}, fmt.Errorf("parse %s: %w", path, ErrEmptyDataset)
	}
	return Dataset{ds: ds}, nil
}

// FromElements wraps already-built elements, mostly for tests.
func FromElements(elems ...*dicom.Element) Dataset {
	return Dataset{ds: dicom.Dataset{Elements: elems}}
}

// Len returns the number of top-level elements.
func (d Dataset) Len() int {
	return len(d.ds.Elements)
}

// GetString returns the string value of t. Multi-valued attributes are joined
// with the DICOM backslash separator. Blank values count as missing.
func (d Dataset) GetString(t tag.Tag) (string, bool) {
	elem, err := d.ds.FindElementByTag(t)
	if err != nil || elem.Value == nil {
		return "", false
	}
	values, ok := elem.Value.GetValue().([]string)
	if !ok || len(values) == 0 {
		return "", false
	}
	s := strings.TrimSpace(strings.Trim(strings.Join(values, `\`), "\x00"))
	if s == "" {
		return "", false
	}
	return s, true
}

// GetUint16 returns the first integer value of t when it fits in 16 bits.
func (d Dataset) GetUint16(t tag.Tag) (uint16, bool) {
	elem, err := d.ds.FindElementByTag(t)
	if err != nil || elem.Value == nil {
		return 0, false
	}
	values, ok := elem.Value.GetValue().([]int)
	if !ok || len(values) == 0 {
		return 0, false
	}
	v := values[0]
	if v < 0 || v > math.MaxUint16 {
		return 0, false
	}
	return uint16(v), true
}

// PixelBuffer returns the raw PixelData bytes. For encapsulated data the first
// fragment is returned as-is.
func (d Dataset) PixelBuffer() ([]byte, bool) {
	elem, err := d.ds.FindElementByTag(tag.PixelData)
	if err != nil || elem.Value == nil {
		return nil, false
	}
	info, ok := elem.Value.GetValue().(dicom.PixelDataInfo)
	if !ok {
		return nil, false
	}

	var data []byte
	switch {
	case info.IntentionallyUnprocessed:
		data = info.UnprocessedValueData
	case len(info.Frames) > 0 && info.Frames[0].Encapsulated:
		data = info.Frames[0].EncapsulatedData.Data
	}
	if len(data) == 0 {
		return nil, false
	}
	return data, true
}

// Geometry returns Rows and Columns. ok is false when either is absent; zero
// values are returned as-is and rejected by the renderer.
func (d Dataset) Geometry() (dcmimage.Geometry, bool) {
	rows, okRows := d.GetUint16(tag.Rows)
	cols, okCols := d.GetUint16(tag.Columns)
	return dcmimage.Geometry{Rows: rows, Columns: cols}, okRows && okCols
}
