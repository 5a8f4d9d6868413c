package contest

import (
	"io"
	"time"

	"git.gammaspectra.live/P2Pool/helioselene-contest/axioms"
	"git.gammaspectra.live/P2Pool/helioselene-contest/differential"
	"git.gammaspectra.live/P2Pool/helioselene-contest/helioselene"
	"git.gammaspectra.live/P2Pool/helioselene-contest/reference"
	"git.gammaspectra.live/P2Pool/helioselene-contest/utils"
)

// Axioms runs the structural property suites on every candidate type.
func Axioms(r io.Reader) error {
	if err := axioms.Field[helioselene.Field25519](r, ComponentField25519); err != nil {
		return err
	}
	if err := axioms.Field[helioselene.HelioseleneField](r, ComponentHelioseleneField); err != nil {
		return err
	}
	if err := axioms.Group[helioselene.HeliosPoint, helioselene.HelioseleneField](r, ComponentHelios); err != nil {
		return err
	}
	return axioms.Group[helioselene.SelenePoint, helioselene.Field25519](r, ComponentSelene)
}

// Round samples every component once and compares the candidate against the reference.
func Round(r io.Reader) error {
	{
		a, aRef, err := differential.SampleField[helioselene.HelioseleneField, reference.HelioseleneField](ComponentHelioseleneField, r)
		if err != nil {
			return err
		}
		b, bRef, err := differential.SampleField[helioselene.HelioseleneField, reference.HelioseleneField](ComponentHelioseleneField, r)
		if err != nil {
			return err
		}
		if err = differential.CompareField(ComponentHelioseleneField, a, b, aRef, bRef); err != nil {
			return err
		}
	}
	{
		a, aRef, err := differential.SampleField[helioselene.Field25519, reference.Field25519](ComponentField25519, r)
		if err != nil {
			return err
		}
		b, bRef, err := differential.SampleField[helioselene.Field25519, reference.Field25519](ComponentField25519, r)
		if err != nil {
			return err
		}
		if err = differential.CompareField(ComponentField25519, a, b, aRef, bRef); err != nil {
			return err
		}
	}
	{
		a, aRef, err := differential.SamplePoint[helioselene.HeliosPoint, reference.HeliosPoint](ComponentHelios, r)
		if err != nil {
			return err
		}
		b, bRef, err := differential.SamplePoint[helioselene.HeliosPoint, reference.HeliosPoint](ComponentHelios, r)
		if err != nil {
			return err
		}
		s, sRef, err := differential.SampleField[helioselene.HelioseleneField, reference.HelioseleneField](ComponentHelios, r)
		if err != nil {
			return err
		}
		if err = differential.CompareGroup(ComponentHelios, a, b, aRef, bRef, s, sRef); err != nil {
			return err
		}
	}
	{
		a, aRef, err := differential.SamplePoint[helioselene.SelenePoint, reference.SelenePoint](ComponentSelene, r)
		if err != nil {
			return err
		}
		b, bRef, err := differential.SamplePoint[helioselene.SelenePoint, reference.SelenePoint](ComponentSelene, r)
		if err != nil {
			return err
		}
		s, sRef, err := differential.SampleField[helioselene.Field25519, reference.Field25519](ComponentSelene, r)
		if err != nil {
			return err
		}
		if err = differential.CompareGroup(ComponentSelene, a, b, aRef, bRef, s, sRef); err != nil {
			return err
		}
	}
	return nil
}

// Check runs the property suites, then cfg.Iterations comparison rounds, and
// returns the first divergence.
func Check(cfg CheckConfig) error {
	_, r, err := source("Check", cfg.Seed, cfg.SystemEntropy)
	if err != nil {
		return err
	}

	if !cfg.SkipAxioms {
		if err = Axioms(r); err != nil {
			return err
		}
		utils.Logf("Check", "property suites passed")
	}

	return rounds(r, cfg.Iterations, Round)
}

// rounds calls round n times and stops at the first failure.
func rounds(r io.Reader, n int, round func(io.Reader) error) error {
	started := time.Now()
	for i := range n {
		if err := round(r); err != nil {
			utils.Errorf("Check", "divergence in round %d of %d", i+1, n)
			return err
		}
		if utils.IsLogLevelDebug() && (i+1)%100 == 0 {
			utils.Debugf("Check", "%d/%d rounds", i+1, n)
		}
	}
	utils.Noticef("Check", "%d rounds passed in %s", n, time.Since(started).Round(time.Millisecond))
	return nil
}
