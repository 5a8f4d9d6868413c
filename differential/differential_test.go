package differential

import (
	"errors"
	"strings"
	"testing"

	"git.gammaspectra.live/P2Pool/helioselene-contest/entropy"
	"git.gammaspectra.live/P2Pool/helioselene-contest/helioselene"
	"git.gammaspectra.live/P2Pool/helioselene-contest/reference"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/stretchr/testify/require"
)

func TestCompareField(t *testing.T) {
	spec.Run(t, "CompareField", func(t *testing.T, when spec.G, it spec.S) {
		r := entropy.NewSeeded(entropy.Seed{0x10})

		it.After(func() {
			fault = ""
		})

		samplePair := func() (*faultyField, *faultyField, *reference.Field25519, *reference.Field25519) {
			a, aRef, err := SampleField[faultyField, reference.Field25519]("faulty", r)
			require.NoError(t, err)
			b, bRef, err := SampleField[faultyField, reference.Field25519]("faulty", r)
			require.NoError(t, err)
			return a, b, aRef, bRef
		}

		when("the candidate is correct", func() {
			it("agrees on every operation", func() {
				for range 20 {
					a, b, aRef, bRef := samplePair()
					require.NoError(t, CompareField("faulty", a, b, aRef, bRef))
				}
			})

			it("agrees with the optimized candidate", func() {
				for range 20 {
					a, aRef, err := SampleField[helioselene.HelioseleneField, reference.HelioseleneField]("helioselene-field", r)
					require.NoError(t, err)
					b, bRef, err := SampleField[helioselene.HelioseleneField, reference.HelioseleneField]("helioselene-field", r)
					require.NoError(t, err)
					require.NoError(t, CompareField("helioselene-field", a, b, aRef, bRef))
				}
			})
		})

		when("an operation result differs", func() {
			it("reports an encoding mismatch on add", func() {
				a, b, aRef, bRef := samplePair()
				fault = "add"

				err := CompareField("faulty", a, b, aRef, bRef)
				require.ErrorIs(t, err, ErrEncodingMismatch)
				require.NotErrorIs(t, err, ErrOperationDivergence)

				var d *Divergence
				require.True(t, errors.As(err, &d))
				require.Equal(t, EncodingMismatch, d.Kind)
				require.Equal(t, "add", d.Operation)
				require.Len(t, d.CandidateOperands, 2)
				require.NotEqual(t, d.Candidate, d.Reference)
			})

			it("reports an odd square root", func() {
				a, b, aRef, bRef := samplePair()
				fault = "sqrt-odd"

				var d *Divergence
				require.True(t, errors.As(CompareField("faulty", a, b, aRef, bRef), &d))
				require.Equal(t, EncodingMismatch, d.Kind)
				require.Equal(t, "sqrt", d.Operation)
			})

			it("reports a wrong predicate", func() {
				a, b, aRef, bRef := samplePair()
				fault = "is-odd"

				var d *Divergence
				require.True(t, errors.As(CompareField("faulty", a, b, aRef, bRef), &d))
				require.Equal(t, EncodingMismatch, d.Kind)
				require.Equal(t, "is-odd", d.Operation)
				require.Len(t, d.Candidate, 1)
			})
		})

		when("only one side fails", func() {
			it("reports a divergence wrapping the failure", func() {
				a, b, aRef, bRef := samplePair()
				fault = "inv"

				err := CompareField("faulty", a, b, aRef, bRef)
				require.ErrorIs(t, err, ErrOperationDivergence)
				require.ErrorIs(t, err, errInjected)
				require.NotErrorIs(t, err, ErrEncodingMismatch)
				require.Contains(t, err.Error(), "inv")
				require.Contains(t, err.Error(), "candidate")
			})
		})

		when("sampling", func() {
			it("reports a candidate decode failure", func() {
				fault = "decode"
				_, _, err := SampleField[faultyField, reference.Field25519]("faulty", r)
				require.ErrorIs(t, err, ErrDecodeFailure)
				require.ErrorIs(t, err, errInjected)
			})

			it("reports an encoding mismatch", func() {
				fault = "encode"
				_, _, err := SampleField[faultyField, reference.Field25519]("faulty", r)
				require.ErrorIs(t, err, ErrEncodingMismatch)

				var d *Divergence
				require.True(t, errors.As(err, &d))
				require.Equal(t, "decode", d.Operation)
			})
		})
	}, spec.Report(report.Log{}), spec.Sequential())
}

func TestCompareGroup(t *testing.T) {
	spec.Run(t, "CompareGroup", func(t *testing.T, when spec.G, it spec.S) {
		r := entropy.NewSeeded(entropy.Seed{0x20})

		type heliosSample struct {
			a, b       *helioselene.HeliosPoint
			aRef, bRef *reference.HeliosPoint
			s          *helioselene.HelioseleneField
			sRef       *reference.HelioseleneField
		}
		sample := func() (h heliosSample) {
			var err error
			h.a, h.aRef, err = SamplePoint[helioselene.HeliosPoint, reference.HeliosPoint]("helios-point", r)
			require.NoError(t, err)
			h.b, h.bRef, err = SamplePoint[helioselene.HeliosPoint, reference.HeliosPoint]("helios-point", r)
			require.NoError(t, err)
			h.s, h.sRef, err = SampleField[helioselene.HelioseleneField, reference.HelioseleneField]("helios-point", r)
			require.NoError(t, err)
			return h
		}

		it("agrees on Helios", func() {
			for range 3 {
				h := sample()
				require.NoError(t, CompareGroup("helios-point", h.a, h.b, h.aRef, h.bRef, h.s, h.sRef))
			}
		})

		it("agrees on Selene", func() {
			for range 3 {
				a, aRef, err := SamplePoint[helioselene.SelenePoint, reference.SelenePoint]("selene-point", r)
				require.NoError(t, err)
				b, bRef, err := SamplePoint[helioselene.SelenePoint, reference.SelenePoint]("selene-point", r)
				require.NoError(t, err)
				s, sRef, err := SampleField[helioselene.Field25519, reference.Field25519]("selene-point", r)
				require.NoError(t, err)
				require.NoError(t, CompareGroup("selene-point", a, b, aRef, bRef, s, sRef))
			}
		})

		it("agrees on the identity", func() {
			h := sample()
			h.a.Identity()
			h.aRef.Identity()
			require.NoError(t, CompareGroup("helios-point", h.a, h.b, h.aRef, h.bRef, h.s, h.sRef))
		})

		it("agrees on zero value points", func() {
			h := sample()
			*h.a, *h.aRef = helioselene.HeliosPoint{}, reference.HeliosPoint{}
			require.NoError(t, CompareGroup("helios-point", h.a, h.b, h.aRef, h.bRef, h.s, h.sRef))
		})

		it("reports mismatched operands as an encoding mismatch", func() {
			h, other := sample(), sample()
			err := CompareGroup("helios-point", other.a, h.b, h.aRef, h.bRef, h.s, h.sRef)
			require.ErrorIs(t, err, ErrEncodingMismatch)

			var d *Divergence
			require.True(t, errors.As(err, &d))
			require.Equal(t, "encode-a", d.Operation)
		})

		it("reports a differing scalar multiplication", func() {
			h, other := sample(), sample()
			err := CompareGroup("helios-point", h.a, h.b, h.aRef, h.bRef, other.s, h.sRef)

			require.ErrorIs(t, err, ErrEncodingMismatch)

			var d *Divergence
			require.True(t, errors.As(err, &d))
			require.Equal(t, EncodingMismatch, d.Kind)
			require.Equal(t, "mul", d.Operation)
			require.Len(t, d.CandidateOperands, 2)
		})
	}, spec.Report(report.Log{}), spec.Sequential())
}

func TestDivergenceError(t *testing.T) {
	d := &Divergence{
		Kind:              EncodingMismatch,
		Component:         "helioselene-field",
		Operation:         "mul",
		CandidateOperands: encodings([]byte{0x01, 0xab}),
		ReferenceOperands: encodings([]byte{0x01, 0xab}),
		Candidate:         []byte{0xde, 0xad},
		Reference:         []byte{0xbe, 0xef},
		Err:               errResultsDiffer,
	}

	msg := d.Error()
	require.True(t, strings.HasPrefix(msg, "helioselene-field: mul: encoding mismatch: results differ"))
	require.Contains(t, msg, "candidate operand 0: 01ab")
	require.Contains(t, msg, "candidate result:  dead")
	require.Contains(t, msg, "reference result:  beef")

	require.ErrorIs(t, d, ErrEncodingMismatch)
	require.ErrorIs(t, d, errResultsDiffer)
	require.NotErrorIs(t, d, ErrOperationDivergence)

	for kind, sentinel := range map[DivergenceKind]error{
		EncodingMismatch:          ErrEncodingMismatch,
		DecodeFailure:             ErrDecodeFailure,
		OperationDivergence:       ErrOperationDivergence,
		BenchmarkOperationFailure: ErrBenchmarkOperationFailure,
	} {
		require.ErrorIs(t, &Divergence{Kind: kind}, sentinel)
		require.Equal(t, sentinel.Error(), kind.String())
	}
}

func TestLookupOperation(t *testing.T) {
	for _, op := range FieldOperations {
		found, err := LookupOperation(KindField, op.Name)
		require.NoError(t, err)
		require.Equal(t, op, found)
	}
	for _, op := range PointOperations {
		found, err := LookupOperation(KindPoint, op.Name)
		require.NoError(t, err)
		require.Equal(t, op, found)
	}

	_, err := LookupOperation(KindPoint, "sqrt")
	require.ErrorIs(t, err, ErrUnknownOperation)
	_, err = LookupOperation(KindField, "mul-gen")
	require.ErrorIs(t, err, ErrUnknownOperation)

	_, err = FieldKernel[reference.Field25519](Operation{Name: "div"}, nil, nil, nil, nil)
	require.ErrorIs(t, err, ErrUnknownOperation)
}
