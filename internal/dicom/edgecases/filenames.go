package edgecases

import (
	"fmt"
	"math/rand/v2"
)

var unnumberedPrefixes = []string{"scout", "localizer", "SR_report", "dose_summary"}

// UnnumberedFilename returns a series file name without a "-<number>" part,
// so it sorts with key 0.
func UnnumberedFilename(index int, ext string, rng *rand.Rand) string {
	prefix := unnumberedPrefixes[rng.IntN(len(unnumberedPrefixes))]
	return fmt.Sprintf("%s_%02d%s", prefix, index, ext)
}
