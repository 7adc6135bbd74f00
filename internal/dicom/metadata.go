package dicom

import (
	"strings"

	"github.com/suyashkumar/dicom/pkg/tag"

	"github.com/mrsinham/dicomloop/internal/util"
)

// Unknown replaces any missing metadata value.
const Unknown = "Unknown"

// FormatMetadata renders the patient name, modality and study date of ds, one
// per line, followed by one line per extra tag.
func FormatMetadata(ds Dataset, extra ...util.TagInfo) string {
	var sb strings.Builder
	sb.WriteString("Patient Name: ")
	sb.WriteString(valueOrUnknown(ds, tag.PatientName))
	sb.WriteString("\nModality: ")
	sb.WriteString(valueOrUnknown(ds, tag.Modality))
	sb.WriteString("\nStudy Date: ")
	sb.WriteString(valueOrUnknown(ds, tag.StudyDate))

	for _, info := range extra {
		sb.WriteString("\n")
		sb.WriteString(info.Name)
		sb.WriteString(": ")
		sb.WriteString(valueOrUnknown(ds, info.Tag))
	}

	return sb.String()
}

func valueOrUnknown(ds Dataset, t tag.Tag) string {
	if v, ok := ds.GetString(t); ok {
		return v
	}
	return Unknown
}
