package bench

import (
	"git.gammaspectra.live/P2Pool/helioselene-contest/curve"
	"git.gammaspectra.live/P2Pool/helioselene-contest/differential"
)

// Field measures every selected field operation on the candidate, then on the
// reference, with the same operands and batch size.
func Field[C, R any, VC curve.Field[C], VR curve.Field[R]](ctx *Context, a, b *C, aRef, bRef *R) error {
	var sq C
	var sqRef R
	VC(&sq).Square(a)
	VR(&sqRef).Square(aRef)

	for _, op := range differential.FieldOperations {
		if !ctx.selected(op) {
			continue
		}
		ca, ra := a, aRef
		if op.Name == "sqrt" {
			ca, ra = &sq, &sqRef
		}

		var out C
		var bit int
		kernel, err := differential.FieldKernel[C, VC](op, &out, ca, b, &bit)
		if err != nil {
			return err
		}
		if err = ctx.Measure(op, ImplementationCandidate, kernel); err != nil {
			return err
		}

		var outRef R
		kernel, err = differential.FieldKernel[R, VR](op, &outRef, ra, bRef, &bit)
		if err != nil {
			return err
		}
		if err = ctx.Measure(op, ImplementationReference, kernel); err != nil {
			return err
		}
	}
	return nil
}

// Group measures every selected point operation on the candidate, then on the
// reference, with the same operands and batch size.
func Group[C, SC, R, SR any, VC curve.CurvePoint[C, SC], VR curve.CurvePoint[R, SR]](ctx *Context, a, b *C, aRef, bRef *R, s *SC, sRef *SR) error {
	for _, op := range differential.PointOperations {
		if !ctx.selected(op) {
			continue
		}

		var out C
		kernel, err := differential.PointKernel[C, SC, VC](op, &out, a, b, s)
		if err != nil {
			return err
		}
		if err = ctx.Measure(op, ImplementationCandidate, kernel); err != nil {
			return err
		}

		var outRef R
		kernel, err = differential.PointKernel[R, SR, VR](op, &outRef, aRef, bRef, sRef)
		if err != nil {
			return err
		}
		if err = ctx.Measure(op, ImplementationReference, kernel); err != nil {
			return err
		}
	}
	return nil
}
