package bench

import (
	"fmt"
	"slices"
	"time"

	"git.gammaspectra.live/P2Pool/helioselene-contest/differential"
	"git.gammaspectra.live/P2Pool/helioselene-contest/utils"
)

const (
	ImplementationCandidate = "candidate"
	ImplementationReference = "reference"
)

// Series is the measurement of one operation of one implementation.
type Series struct {
	Operation      string `json:"operation"`
	Implementation string `json:"implementation"`
	Stats          Stats  `json:"stats"`
}

// Context carries the settings and the collected series of one component.
type Context struct {
	Component string
	// Samples is the minimum number of timed batches per operation.
	Samples int
	// MinTime is the minimum measuring time per operation.
	MinTime time.Duration
	// BatchScale scales every descriptor batch size; zero means 1.
	BatchScale float64
	// Operations restricts the measured operations by name; empty measures all.
	Operations []string

	Series []Series
}

func NewContext(component string, samples int, minTime time.Duration) *Context {
	return &Context{
		Component: component,
		Samples:   samples,
		MinTime:   minTime,
	}
}

func (c *Context) selected(op differential.Operation) bool {
	return len(c.Operations) == 0 || slices.Contains(c.Operations, op.Name)
}

func (c *Context) batchSize(op differential.Operation) int {
	if c.BatchScale <= 0 {
		return op.Batch
	}
	return max(1, int(float64(op.Batch)*c.BatchScale))
}

// Measure runs one warm-up batch of fn, then timed batches until both Samples and
// MinTime are reached. An error from fn is a BenchmarkOperationFailure.
func (c *Context) Measure(op differential.Operation, implementation string, fn func() error) error {
	size := c.batchSize(op)
	batch := func() (time.Duration, error) {
		start := time.Now()
		err := Repeat(size, fn)
		return time.Since(start), err
	}
	fail := func(err error) error {
		return &differential.Divergence{
			Kind:      differential.BenchmarkOperationFailure,
			Component: c.Component,
			Operation: op.Name,
			Err:       fmt.Errorf("%s: %w", implementation, err),
		}
	}

	if _, err := batch(); err != nil {
		return fail(err)
	}

	stats := Stats{BatchSize: size}
	started := time.Now()
	for stats.Count < c.Samples || time.Since(started) < c.MinTime {
		d, err := batch()
		if err != nil {
			return fail(err)
		}
		stats.Add(d)
	}

	utils.Debugf("Bench", "%s %s %s: %d batches of %d, %.1f ns/op", c.Component, op.Name, implementation, stats.Count, size, stats.NsPerOp)

	c.Series = append(c.Series, Series{
		Operation:      op.Name,
		Implementation: implementation,
		Stats:          stats,
	})
	return nil
}

// Lookup returns the series of one operation and implementation.
func (c *Context) Lookup(operation, implementation string) (Series, bool) {
	for _, s := range c.Series {
		if s.Operation == operation && s.Implementation == implementation {
			return s, true
		}
	}
	return Series{}, false
}
