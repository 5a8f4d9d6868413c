package bench

import (
	"math"
	"time"

	"lukechampine.com/uint128"
)

// Stats summarizes the durations of timed batches of one operation.
type Stats struct {
	// Count is the number of timed batches.
	Count int `json:"count"`
	// BatchSize is the number of operations per batch.
	BatchSize int `json:"batch_size"`

	Min    time.Duration `json:"min"`
	Max    time.Duration `json:"max"`
	Mean   float64       `json:"mean"`
	StdDev float64       `json:"stddev"`

	// NsPerOp is Mean divided by BatchSize.
	NsPerOp float64 `json:"ns_per_op"`

	sum, sumSquares uint128.Uint128
}

func toFloat(v uint128.Uint128) float64 {
	return float64(v.Hi)*0x1p64 + float64(v.Lo)
}

// Add records the duration of one batch.
func (s *Stats) Add(d time.Duration) {
	if d < 0 {
		d = 0
	}
	if s.Count == 0 || d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
	s.Count++

	ns := uint64(d)
	s.sum = s.sum.Add64(ns)
	s.sumSquares = s.sumSquares.Add(uint128.From64(ns).Mul64(ns))

	n := float64(s.Count)
	s.Mean = toFloat(s.sum) / n
	variance := toFloat(s.sumSquares)/n - s.Mean*s.Mean
	s.StdDev = math.Sqrt(max(variance, 0))
	if s.BatchSize > 0 {
		s.NsPerOp = s.Mean / float64(s.BatchSize)
	}
}
