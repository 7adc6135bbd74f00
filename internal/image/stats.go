package image

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises the bytes of a pixel buffer.
type Stats struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// BufferStats computes byte statistics of buf. An empty buffer gives zero Stats.
func BufferStats(buf []byte) Stats {
	if len(buf) == 0 {
		return Stats{}
	}

	x := make([]float64, len(buf))
	for i, b := range buf {
		x[i] = float64(b)
	}

	s := Stats{
		Count: len(x),
		Min:   floats.Min(x),
		Max:   floats.Max(x),
	}
	if len(x) == 1 {
		s.Mean = x[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(x, nil)
	return s
}

func (s Stats) String() string {
	if s.Count == 0 {
		return "no pixel data"
	}
	return fmt.Sprintf("%d bytes  min %.0f  max %.0f  mean %.1f  sd %.1f", s.Count, s.Min, s.Max, s.Mean, s.StdDev)
}
