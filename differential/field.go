package differential

import (
	"bytes"
	"errors"
	"fmt"

	"git.gammaspectra.live/P2Pool/helioselene-contest/curve"
	"git.gammaspectra.live/P2Pool/helioselene-contest/types"
)

var errResultsDiffer = errors.New("results differ")

// runField applies op and returns the canonical encoding of its result.
func runField[F any, VF curve.Field[F]](op Operation, a, b *F) ([]byte, error) {
	var out F
	var bit int
	kernel, err := FieldKernel[F, VF](op, &out, a, b, &bit)
	if err != nil {
		return nil, err
	}
	if err = kernel(); err != nil {
		return nil, err
	}
	if op.Predicate {
		return types.Bit(bit), nil
	}
	return VF(&out).Bytes(), nil
}

// compareResults compares the results of one operation. Differing encodings are an
// EncodingMismatch. A success on one side and a failure on the other is an
// OperationDivergence, as is a failure on both.
func compareResults(component, operation string, candidateOperands, referenceOperands []types.Bytes, candidate, reference []byte, candidateErr, referenceErr error) error {
	d := &Divergence{
		Kind:              OperationDivergence,
		Component:         component,
		Operation:         operation,
		CandidateOperands: candidateOperands,
		ReferenceOperands: referenceOperands,
		Candidate:         candidate,
		Reference:         reference,
	}
	switch {
	case candidateErr == nil && referenceErr == nil:
		if bytes.Equal(candidate, reference) {
			return nil
		}
		d.Kind = EncodingMismatch
		d.Err = errResultsDiffer
	case candidateErr != nil && referenceErr != nil:
		d.Err = errors.Join(fmt.Errorf("candidate: %w", candidateErr), fmt.Errorf("reference: %w", referenceErr))
	case candidateErr != nil:
		d.Err = fmt.Errorf("candidate: %w", candidateErr)
	default:
		d.Err = fmt.Errorf("reference: %w", referenceErr)
	}
	return d
}

// fieldConsistency checks laws of a single implementation that hold for any nonzero a.
func fieldConsistency[F any, VF curve.Field[F]](a *F) (string, error) {
	var inv, back F
	if _, err := VF(&inv).Invert(a); err != nil {
		return "inv-inv", err
	}
	if _, err := VF(&back).Invert(&inv); err != nil {
		return "inv-inv", err
	}
	if VF(&back).Equal(a) != 1 {
		return "inv-inv", errResultsDiffer
	}

	var sq, root, again F
	VF(&sq).Square(a)
	if _, err := VF(&root).Sqrt(&sq); err != nil {
		return "sqrt-square", err
	}
	VF(&again).Square(&root)
	if VF(&again).Equal(&sq) != 1 {
		return "sqrt-square", errResultsDiffer
	}
	if VF(&root).IsEven() != 1 {
		return "sqrt-even", errors.New("square root is odd")
	}

	if VF(a).IsOdd() == VF(a).IsEven() {
		return "parity", errors.New("is-odd equals is-even")
	}
	return "", nil
}

// CompareField applies every field operation to both implementations and compares
// canonical encodings, then checks per-implementation consistency.
func CompareField[C, R any, VC curve.Field[C], VR curve.Field[R]](component string, a, b *C, aRef, bRef *R) error {
	var sq C
	var sqRef R
	VC(&sq).Square(a)
	VR(&sqRef).Square(aRef)

	for _, op := range FieldOperations {
		ca, ra := a, aRef
		if op.Name == "sqrt" {
			ca, ra = &sq, &sqRef
		}
		candidateOperands := encodings(VC(ca).Bytes(), VC(b).Bytes())[:op.Arity]
		referenceOperands := encodings(VR(ra).Bytes(), VR(bRef).Bytes())[:op.Arity]

		candidate, candidateErr := runField[C, VC](op, ca, b)
		reference, referenceErr := runField[R, VR](op, ra, bRef)
		if err := compareResults(component, op.Name, candidateOperands, referenceOperands, candidate, reference, candidateErr, referenceErr); err != nil {
			return err
		}
	}

	if name, err := fieldConsistency[C, VC](a); err != nil {
		return &Divergence{
			Kind:              OperationDivergence,
			Component:         component,
			Operation:         name,
			CandidateOperands: encodings(VC(a).Bytes()),
			Err:               fmt.Errorf("candidate: %w", err),
		}
	}
	if name, err := fieldConsistency[R, VR](aRef); err != nil {
		return &Divergence{
			Kind:              OperationDivergence,
			Component:         component,
			Operation:         name,
			ReferenceOperands: encodings(VR(aRef).Bytes()),
			Err:               fmt.Errorf("reference: %w", err),
		}
	}
	return nil
}
