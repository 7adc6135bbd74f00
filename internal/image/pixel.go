package image

import (
	"math"
	"math/rand/v2"
)

// MaxValue12 is the largest sample value stored by generated slices.
const MaxValue12 = 4095

// GenerateSlice generates the pixels of one synthetic 12-bit slice: a bright
// disc fading to the edges with layered noise on top.
//
// The seed parameter ensures reproducible generation.
// Returns nil if dimensions are invalid (zero, negative, or would overflow).
func GenerateSlice(width, height int, seed uint64) []uint16 {
	if width <= 0 || height <= 0 {
		return nil
	}

	// Check for potential overflow on 32-bit systems
	maxSize := int(^uint(0) >> 1)
	if width > maxSize/height {
		return nil
	}

	rng := rand.New(rand.NewPCG(seed, seed))

	const valueRange = float64(MaxValue12)
	const baseValue = 600.0
	centerX, centerY := float64(width)/2, float64(height)/2
	maxDist := math.Sqrt(centerX*centerX + centerY*centerY)

	pixels := make([]uint16, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx := float64(x) - centerX
			dy := float64(y) - centerY
			normalizedDist := math.Sqrt(dx*dx+dy*dy) / maxDist

			intensity := baseValue + (1.0-normalizedDist)*valueRange*0.5
			intensity += (rng.Float64() - 0.5) * valueRange * 0.15
			intensity += (rng.Float64() - 0.5) * valueRange * 0.05

			pixels[y*width+x] = uint16(math.Max(0, math.Min(valueRange, intensity)))
		}
	}

	return pixels
}
