package differential

import (
	"bytes"
	"errors"
	"fmt"

	"git.gammaspectra.live/P2Pool/helioselene-contest/curve"
	"git.gammaspectra.live/P2Pool/helioselene-contest/types"
)

// runPoint applies op and returns the compressed encoding of its result.
func runPoint[P, S any, VP curve.CurvePoint[P, S]](op Operation, a, b *P, s *S) ([]byte, error) {
	var out P
	kernel, err := PointKernel[P, S, VP](op, &out, a, b, s)
	if err != nil {
		return nil, err
	}
	if err = kernel(); err != nil {
		return nil, err
	}
	return VP(&out).Bytes(), nil
}

// roundTrip decodes the encoding of p and checks it yields p again.
func roundTrip[P any, VP curve.Point[P]](p *P) error {
	var decoded P
	if _, err := VP(&decoded).SetBytes(VP(p).Bytes()); err != nil {
		return err
	}
	if VP(&decoded).Equal(p) != 1 {
		return errors.New("decoded point differs")
	}
	return nil
}

// groupConsistency checks laws of a single implementation that hold for any a and s.
func groupConsistency[P, S any, VP curve.CurvePoint[P, S]](a *P, s *S) (string, error) {
	var l, r P
	VP(&l).Double(a)
	VP(&r).Add(a, a)
	if VP(&l).Equal(&r) != 1 {
		return "dbl-add", errResultsDiffer
	}

	VP(&r).Negate(a)
	VP(&l).Add(a, &r)
	if !bytes.Equal(VP(&l).Bytes(), curve.IdentityEncoding[:]) {
		return "add-neg", errors.New("a + (-a) does not encode to the identity")
	}

	VP(&l).ScalarBaseMult(s)
	VP(&r).ScalarMult(s, VP(new(P)).Generator())
	if VP(&l).Equal(&r) != 1 {
		return "mul-base", errors.New("fixed-base multiplication differs from mul-gen")
	}
	return "", nil
}

// CompareGroup compares encodings of the sampled points, then applies every group
// operation to both implementations, then checks per-implementation consistency.
func CompareGroup[C, SC, R, SR any, VC curve.CurvePoint[C, SC], VSC curve.Field[SC], VR curve.CurvePoint[R, SR], VSR curve.Field[SR]](component string, a, b *C, aRef, bRef *R, s *SC, sRef *SR) error {
	candidateOperands := encodings(VC(a).Bytes(), VC(b).Bytes(), VSC(s).Bytes())
	referenceOperands := encodings(VR(aRef).Bytes(), VR(bRef).Bytes(), VSR(sRef).Bytes())

	for i, name := range []string{"encode-a", "encode-b"} {
		c, r := candidateOperands[i], referenceOperands[i]
		if len(c) != curve.EncodingSize || len(r) != curve.EncodingSize || !bytes.Equal(c, r) {
			return &Divergence{
				Kind:              EncodingMismatch,
				Component:         component,
				Operation:         name,
				CandidateOperands: candidateOperands,
				ReferenceOperands: referenceOperands,
				Candidate:         c,
				Reference:         r,
			}
		}
	}

	if err := roundTrip[C, VC](a); err != nil {
		return &Divergence{Kind: DecodeFailure, Component: component, Operation: "round-trip", CandidateOperands: candidateOperands[:1], Err: fmt.Errorf("candidate: %w", err)}
	}
	if err := roundTrip[R, VR](aRef); err != nil {
		return &Divergence{Kind: DecodeFailure, Component: component, Operation: "round-trip", ReferenceOperands: referenceOperands[:1], Err: fmt.Errorf("reference: %w", err)}
	}

	if c, r := VC(new(C)).Generator(), VR(new(R)).Generator(); !bytes.Equal(VC(c).Bytes(), VR(r).Bytes()) {
		return &Divergence{
			Kind:      EncodingMismatch,
			Component: component,
			Operation: "generator",
			Candidate: VC(c).Bytes(),
			Reference: VR(r).Bytes(),
		}
	}

	for _, op := range PointOperations {
		operands := func(all []types.Bytes) []types.Bytes {
			switch op.Name {
			case "mul":
				return []types.Bytes{all[0], all[2]}
			case "mul-gen", "mul-base":
				return all[2:]
			}
			return all[:op.Arity]
		}

		candidate, candidateErr := runPoint[C, SC, VC](op, a, b, s)
		reference, referenceErr := runPoint[R, SR, VR](op, aRef, bRef, sRef)
		if err := compareResults(component, op.Name, operands(candidateOperands), operands(referenceOperands), candidate, reference, candidateErr, referenceErr); err != nil {
			return err
		}
	}

	if name, err := groupConsistency[C, SC, VC](a, s); err != nil {
		return &Divergence{Kind: OperationDivergence, Component: component, Operation: name, CandidateOperands: candidateOperands, Err: fmt.Errorf("candidate: %w", err)}
	}
	if name, err := groupConsistency[R, SR, VR](aRef, sRef); err != nil {
		return &Divergence{Kind: OperationDivergence, Component: component, Operation: name, ReferenceOperands: referenceOperands, Err: fmt.Errorf("reference: %w", err)}
	}
	return nil
}
