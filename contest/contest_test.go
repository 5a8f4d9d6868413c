package contest

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.gammaspectra.live/P2Pool/helioselene-contest/axioms"
	"git.gammaspectra.live/P2Pool/helioselene-contest/bench"
	"git.gammaspectra.live/P2Pool/helioselene-contest/differential"
	"git.gammaspectra.live/P2Pool/helioselene-contest/entropy"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	check := DefaultCheckConfig()
	require.Equal(t, 1000, check.Iterations)
	require.Nil(t, check.Seed)
	require.False(t, check.SkipAxioms)

	b := DefaultBenchConfig()
	require.Positive(t, b.Samples)
	require.Equal(t, time.Second, b.MinTime)
}

func TestCheck(t *testing.T) {
	axioms.Rounds = 4
	seed := entropy.Seed{0x40}

	cfg := DefaultCheckConfig()
	cfg.Seed = &seed
	cfg.Iterations = 25
	if testing.Short() {
		cfg.Iterations = 5
	}
	require.NoError(t, Check(cfg))
}

func TestCheckSystemEntropy(t *testing.T) {
	cfg := DefaultCheckConfig()
	cfg.Iterations = 2
	cfg.SkipAxioms = true
	cfg.SystemEntropy = true
	require.NoError(t, Check(cfg))

	seed := entropy.Seed{0x42}
	cfg.Seed = &seed
	require.ErrorIs(t, Check(cfg), errSeedWithSystem)
}

func TestRoundsStopAtFirstDivergence(t *testing.T) {
	divergence := &differential.Divergence{
		Kind:      differential.EncodingMismatch,
		Component: ComponentHelios,
		Operation: "add",
	}

	var calls int
	err := rounds(entropy.System(), 10, func(io.Reader) error {
		calls++
		if calls == 3 {
			return divergence
		}
		return nil
	})
	require.Equal(t, 3, calls)
	require.ErrorIs(t, err, differential.ErrEncodingMismatch)

	var d *differential.Divergence
	require.True(t, errors.As(err, &d))
	require.Same(t, divergence, d)

	calls = 0
	require.NoError(t, rounds(entropy.System(), 4, func(io.Reader) error {
		calls++
		return nil
	}))
	require.Equal(t, 4, calls)
}

func TestCheckWithoutSeed(t *testing.T) {
	cfg := DefaultCheckConfig()
	cfg.Iterations = 2
	cfg.SkipAxioms = true
	require.NoError(t, Check(cfg))
}

func testBenchConfig(t *testing.T) BenchConfig {
	seed := entropy.Seed{0x41}
	cfg := DefaultBenchConfig()
	cfg.Seed = &seed
	cfg.Samples = 2
	cfg.MinTime = 0
	cfg.BatchScale = 1e-6
	return cfg
}

func TestBench(t *testing.T) {
	cfg := testBenchConfig(t)
	if testing.Short() {
		cfg.Components = []string{ComponentHelioseleneField, ComponentHelios}
		cfg.Operations = []string{"add", "mul"}
	}

	var text bytes.Buffer
	path := filepath.Join(t.TempDir(), "bench.json")
	cfg.Sinks = []bench.Sink{bench.TextSink{Writer: &text}, bench.JSONSink{Path: path}}

	report, err := Bench(cfg)
	require.NoError(t, err)
	require.Equal(t, *cfg.Seed, report.Seed)

	components := Components
	if len(cfg.Components) > 0 {
		components = cfg.Components
	}
	require.Len(t, report.Components, len(components))
	for i, c := range report.Components {
		require.Equal(t, components[i], c.Name)
		require.NotEmpty(t, c.Series)
		for _, s := range c.Series {
			require.Equal(t, cfg.Samples, s.Stats.Count)
		}
	}
	require.NotEmpty(t, report.Comparisons)
	for _, c := range report.Comparisons {
		require.GreaterOrEqual(t, c.Candidate, 0.0)
		require.GreaterOrEqual(t, c.Reference, 0.0)
	}

	require.Contains(t, text.String(), ComponentHelioseleneField)
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestBenchInvalidConfig(t *testing.T) {
	cfg := testBenchConfig(t)
	cfg.Components = []string{"ed25519"}
	_, err := Bench(cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)

	for _, samples := range []int{0, -1} {
		cfg = testBenchConfig(t)
		cfg.Samples = samples
		report, err := Bench(cfg)
		require.ErrorIs(t, err, ErrInvalidConfig)
		require.Nil(t, report)
	}

	cfg = testBenchConfig(t)
	cfg.BatchScale = -1
	_, err = Bench(cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)

	cfg = testBenchConfig(t)
	cfg.Operations = []string{"div"}
	_, err = Bench(cfg)
	require.ErrorIs(t, err, differential.ErrUnknownOperation)
}
