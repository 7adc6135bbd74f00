package edgecases

import "math/rand/v2"

// DisplayedTags lists the attributes shown in the viewer's info panel. Any of
// them may be omitted; the viewer prints "Unknown" in their place.
var DisplayedTags = []string{
	"PatientName",
	"Modality",
	"StudyDate",
}

// SelectTagsToOmit randomly selects which displayed tags to omit
func SelectTagsToOmit(rng *rand.Rand, count int) []string {
	if count >= len(DisplayedTags) {
		return append([]string(nil), DisplayedTags...)
	}
	// Fisher-Yates shuffle and take first count
	indices := make([]int, len(DisplayedTags))
	for i := range indices {
		indices[i] = i
	}
	for i := len(indices) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		indices[i], indices[j] = indices[j], indices[i]
	}
	result := make([]string, count)
	for i := 0; i < count; i++ {
		result[i] = DisplayedTags[indices[i]]
	}
	return result
}
