package contest

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"git.gammaspectra.live/P2Pool/helioselene-contest/bench"
	"git.gammaspectra.live/P2Pool/helioselene-contest/curve"
	"git.gammaspectra.live/P2Pool/helioselene-contest/differential"
	"git.gammaspectra.live/P2Pool/helioselene-contest/helioselene"
	"git.gammaspectra.live/P2Pool/helioselene-contest/reference"
	"git.gammaspectra.live/P2Pool/helioselene-contest/utils"
)

var ErrInvalidConfig = errors.New("invalid benchmark configuration")

type benchComponent func(ctx *bench.Context, r io.Reader) error

func benchField[C, R any, VC curve.Field[C], VR curve.Field[R]](ctx *bench.Context, r io.Reader) error {
	a, aRef, err := differential.SampleField[C, R, VC, VR](ctx.Component, r)
	if err != nil {
		return err
	}
	b, bRef, err := differential.SampleField[C, R, VC, VR](ctx.Component, r)
	if err != nil {
		return err
	}
	return bench.Field[C, R, VC, VR](ctx, a, b, aRef, bRef)
}

func benchGroup[C, SC, R, SR any, VC curve.CurvePoint[C, SC], VSC curve.Field[SC], VR curve.CurvePoint[R, SR], VSR curve.Field[SR]](ctx *bench.Context, r io.Reader) error {
	a, aRef, err := differential.SamplePoint[C, R, VC, VR](ctx.Component, r)
	if err != nil {
		return err
	}
	b, bRef, err := differential.SamplePoint[C, R, VC, VR](ctx.Component, r)
	if err != nil {
		return err
	}
	s, sRef, err := differential.SampleField[SC, SR, VSC, VSR](ctx.Component, r)
	if err != nil {
		return err
	}
	return bench.Group[C, SC, R, SR, VC, VR](ctx, a, b, aRef, bRef, s, sRef)
}

var benchComponents = map[string]benchComponent{
	ComponentHelioseleneField: benchField[helioselene.HelioseleneField, reference.HelioseleneField],
	ComponentField25519:       benchField[helioselene.Field25519, reference.Field25519],
	ComponentHelios:           benchGroup[helioselene.HeliosPoint, helioselene.HelioseleneField, reference.HeliosPoint, reference.HelioseleneField],
	ComponentSelene:           benchGroup[helioselene.SelenePoint, helioselene.Field25519, reference.SelenePoint, reference.Field25519],
}

// validate rejects unknown component and operation names, and settings that would
// record no batches.
func (cfg BenchConfig) validate() error {
	if cfg.Samples < 1 {
		return fmt.Errorf("%w: samples must be at least 1, got %d", ErrInvalidConfig, cfg.Samples)
	}
	if cfg.MinTime < 0 || cfg.BatchScale < 0 {
		return fmt.Errorf("%w: negative min-time or batch-scale", ErrInvalidConfig)
	}
	for _, c := range cfg.Components {
		if !slices.Contains(Components, c) {
			return fmt.Errorf("%w: unknown component %q", ErrInvalidConfig, c)
		}
	}
	for _, name := range cfg.Operations {
		_, fieldErr := differential.LookupOperation(differential.KindField, name)
		_, pointErr := differential.LookupOperation(differential.KindPoint, name)
		if fieldErr != nil && pointErr != nil {
			return fieldErr
		}
	}
	return nil
}

// Bench measures every selected component on both implementations and publishes
// the report to every sink.
func Bench(cfg BenchConfig) (*bench.Report, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seed, r, err := source("Bench", cfg.Seed, cfg.SystemEntropy)
	if err != nil {
		return nil, err
	}

	report := bench.NewReport(seed)
	for _, name := range Components {
		if len(cfg.Components) > 0 && !slices.Contains(cfg.Components, name) {
			continue
		}
		ctx := bench.NewContext(name, cfg.Samples, cfg.MinTime)
		ctx.BatchScale = cfg.BatchScale
		ctx.Operations = cfg.Operations

		utils.Logf("Bench", "measuring %s", name)
		if err = benchComponents[name](ctx, r); err != nil {
			return nil, err
		}
		report.Add(ctx)
	}
	utils.Noticef("Bench", "measured %d components, %d comparisons", len(report.Components), len(report.Comparisons))

	for _, sink := range cfg.Sinks {
		if err = sink.Publish(report); err != nil {
			return report, fmt.Errorf("publish: %w", err)
		}
	}
	return report, nil
}
