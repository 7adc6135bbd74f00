package edgecases

import "math/rand/v2"

// Applicator applies edge cases to generated files
type Applicator struct {
	config Config
	rng    *rand.Rand
}

// NewApplicator creates a new edge case applicator
func NewApplicator(config Config, rng *rand.Rand) *Applicator {
	return &Applicator{config: config, rng: rng}
}

// ShouldApply returns true if edge cases should apply to this file
func (a *Applicator) ShouldApply() bool {
	if !a.config.IsEnabled() {
		return false
	}
	return a.rng.IntN(100) < a.config.Percentage
}

// SelectEdgeCaseType randomly selects which edge case type to apply
func (a *Applicator) SelectEdgeCaseType() EdgeCaseType {
	return a.config.Types[a.rng.IntN(len(a.config.Types))]
}

// Next picks the edge case of the next file, or "" for a regular file.
func (a *Applicator) Next() EdgeCaseType {
	if !a.ShouldApply() {
		return ""
	}
	return a.SelectEdgeCaseType()
}

// ApplyToPatientName applies edge cases to a patient name
func (a *Applicator) ApplyToPatientName(kind EdgeCaseType, sex, original string) string {
	switch kind {
	case SpecialChars:
		return GenerateSpecialCharName(sex, a.rng)
	case LongNames:
		return GenerateLongPatientName(sex, a.rng)
	default:
		return original
	}
}

// GetTagsToOmit returns the displayed tags to leave out of this file
func (a *Applicator) GetTagsToOmit(kind EdgeCaseType) []string {
	if kind != MissingTags {
		return nil
	}
	count := 1 + a.rng.IntN(len(DisplayedTags)) // Omit 1-3 tags
	return SelectTagsToOmit(a.rng, count)
}

// ApplyToGeometry applies edge cases to the declared Rows and Columns
func (a *Applicator) ApplyToGeometry(kind EdgeCaseType, rows, cols int) (int, int) {
	if kind != ZeroGeometry {
		return rows, cols
	}
	return ZeroDimensions(rows, cols, a.rng)
}

// ApplyToPixelRows returns the number of pixel rows written for a frame
// declaring rows.
func (a *Applicator) ApplyToPixelRows(kind EdgeCaseType, rows int) int {
	if kind != TruncatedPixels {
		return rows
	}
	return TruncateRows(rows, a.rng)
}

// ApplyToFilename applies edge cases to the file name of the index-th file
func (a *Applicator) ApplyToFilename(kind EdgeCaseType, index int, ext, original string) string {
	if kind != UnnumberedNames {
		return original
	}
	return UnnumberedFilename(index, ext, a.rng)
}
