package bench

import (
	"runtime"
	"time"

	"git.gammaspectra.live/P2Pool/helioselene-contest/types"
	"golang.org/x/sys/cpu"
)

// Host describes the machine a report was measured on.
type Host struct {
	OS        string   `json:"os"`
	Arch      string   `json:"arch"`
	GoVersion string   `json:"go_version"`
	NumCPU    int      `json:"num_cpu"`
	Features  []string `json:"features"`
}

func NewHost() Host {
	h := Host{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		GoVersion: runtime.Version(),
		NumCPU:    runtime.NumCPU(),
		Features:  []string{},
	}

	features := []struct {
		name string
		has  bool
	}{
		{"adx", cpu.X86.HasADX},
		{"avx", cpu.X86.HasAVX},
		{"avx2", cpu.X86.HasAVX2},
		{"avx512f", cpu.X86.HasAVX512F},
		{"bmi2", cpu.X86.HasBMI2},
		{"asimd", cpu.ARM64.HasASIMD},
		{"sve", cpu.ARM64.HasSVE},
	}
	for _, f := range features {
		if f.has {
			h.Features = append(h.Features, f.name)
		}
	}
	return h
}

type Component struct {
	Name   string   `json:"name"`
	Series []Series `json:"series"`
}

// Comparison relates the candidate and reference timings of one operation.
type Comparison struct {
	Component string  `json:"component"`
	Operation string  `json:"operation"`
	Candidate float64 `json:"candidate_ns_per_op"`
	Reference float64 `json:"reference_ns_per_op"`
	// Speedup is reference ns/op divided by candidate ns/op.
	Speedup float64 `json:"speedup"`
}

type Report struct {
	Host        Host         `json:"host"`
	Seed        types.Hash   `json:"seed"`
	Started     time.Time    `json:"started"`
	Components  []Component  `json:"components"`
	Comparisons []Comparison `json:"comparisons"`
}

func NewReport(seed types.Hash) *Report {
	return &Report{
		Host:    NewHost(),
		Seed:    seed,
		Started: time.Now().UTC(),
	}
}

// Add appends the series of ctx and one comparison per operation measured on both implementations.
func (r *Report) Add(ctx *Context) {
	r.Components = append(r.Components, Component{
		Name:   ctx.Component,
		Series: ctx.Series,
	})

	for _, candidate := range ctx.Series {
		if candidate.Implementation != ImplementationCandidate {
			continue
		}
		reference, ok := ctx.Lookup(candidate.Operation, ImplementationReference)
		if !ok {
			continue
		}
		c := Comparison{
			Component: ctx.Component,
			Operation: candidate.Operation,
			Candidate: candidate.Stats.NsPerOp,
			Reference: reference.Stats.NsPerOp,
		}
		if c.Candidate > 0 {
			c.Speedup = c.Reference / c.Candidate
		}
		r.Comparisons = append(r.Comparisons, c)
	}
}
