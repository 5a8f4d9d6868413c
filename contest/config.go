package contest

import (
	"errors"
	"io"
	"time"

	"git.gammaspectra.live/P2Pool/helioselene-contest/bench"
	"git.gammaspectra.live/P2Pool/helioselene-contest/entropy"
	"git.gammaspectra.live/P2Pool/helioselene-contest/utils"
)

const (
	ComponentHelioseleneField = "helioselene-field"
	ComponentField25519       = "field25519"
	ComponentHelios           = "helios-point"
	ComponentSelene           = "selene-point"
)

var errSeedWithSystem = errors.New("a seed cannot be combined with system entropy")

// Components lists every benchmark component in run order.
var Components = []string{ComponentHelioseleneField, ComponentField25519, ComponentHelios, ComponentSelene}

type CheckConfig struct {
	// Iterations is the number of sampling rounds after the property suites.
	Iterations int
	// Seed keys the entropy stream. A nil seed draws a fresh one.
	Seed *entropy.Seed
	// SystemEntropy samples from the operating system source instead of a seeded
	// stream. Such a run cannot be replayed.
	SystemEntropy bool
	// SkipAxioms skips the structural property suites.
	SkipAxioms bool
}

func DefaultCheckConfig() CheckConfig {
	return CheckConfig{
		Iterations: 1000,
	}
}

type BenchConfig struct {
	Samples int
	MinTime time.Duration
	// BatchScale scales every operation batch size; zero keeps them as described.
	BatchScale float64
	Seed       *entropy.Seed
	// SystemEntropy samples from the operating system source; see CheckConfig.
	SystemEntropy bool
	// Components restricts the measured components; empty measures all.
	Components []string
	// Operations restricts the measured operations by name; empty measures all.
	Operations []string
	Sinks      []bench.Sink
}

func DefaultBenchConfig() BenchConfig {
	return BenchConfig{
		Samples: 10,
		MinTime: time.Second,
	}
}

// source resolves the seed of a run and returns its entropy stream. With system
// entropy the returned seed is zero and only identifies the run as unseeded.
func source(prefix string, seed *entropy.Seed, system bool) (entropy.Seed, io.Reader, error) {
	if system {
		if seed != nil {
			return entropy.Seed{}, nil, errSeedWithSystem
		}
		utils.Noticef(prefix, "sampling from system entropy, this run cannot be replayed")
		return entropy.Seed{}, entropy.System(), nil
	}
	if seed != nil {
		utils.Noticef(prefix, "seed %s", *seed)
		return *seed, entropy.NewSeeded(*seed), nil
	}
	s, err := entropy.NewSeed()
	if err != nil {
		return s, nil, err
	}
	utils.Noticef(prefix, "seed %s", s)
	return s, entropy.NewSeeded(s), nil
}
