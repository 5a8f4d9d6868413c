package differential

import (
	"errors"
	"fmt"
	"strings"

	"git.gammaspectra.live/P2Pool/helioselene-contest/types"
)

type DivergenceKind int

const (
	EncodingMismatch = DivergenceKind(iota + 1)
	DecodeFailure
	OperationDivergence
	BenchmarkOperationFailure
)

var (
	ErrEncodingMismatch          = errors.New("encoding mismatch")
	ErrDecodeFailure             = errors.New("decode failure")
	ErrOperationDivergence       = errors.New("operation divergence")
	ErrBenchmarkOperationFailure = errors.New("benchmark operation failure")
)

func (k DivergenceKind) sentinel() error {
	switch k {
	case EncodingMismatch:
		return ErrEncodingMismatch
	case DecodeFailure:
		return ErrDecodeFailure
	case OperationDivergence:
		return ErrOperationDivergence
	case BenchmarkOperationFailure:
		return ErrBenchmarkOperationFailure
	default:
		return nil
	}
}

func (k DivergenceKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("divergence(%d)", int(k))
}

// Divergence is a failed comparison between the candidate and the reference.
// errors.Is matches both the sentinel of its Kind and Err.
type Divergence struct {
	Kind      DivergenceKind `json:"kind"`
	Component string         `json:"component"`
	Operation string         `json:"operation"`

	CandidateOperands []types.Bytes `json:"candidate_operands,omitempty"`
	ReferenceOperands []types.Bytes `json:"reference_operands,omitempty"`

	Candidate types.Bytes `json:"candidate,omitempty"`
	Reference types.Bytes `json:"reference,omitempty"`

	Err error `json:"-"`
}

func (d *Divergence) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s: %s", d.Component, d.Operation, d.Kind)
	if d.Err != nil {
		fmt.Fprintf(&sb, ": %s", d.Err)
	}
	writeOperands := func(side string, operands []types.Bytes) {
		for i, o := range operands {
			fmt.Fprintf(&sb, "\n  %s operand %d: %s", side, i, o)
		}
	}
	writeOperands("candidate", d.CandidateOperands)
	writeOperands("reference", d.ReferenceOperands)
	if d.Candidate != nil || d.Reference != nil {
		fmt.Fprintf(&sb, "\n  candidate result:  %s", d.Candidate)
		fmt.Fprintf(&sb, "\n  reference result:  %s", d.Reference)
	}
	return sb.String()
}

func (d *Divergence) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := d.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if d.Err != nil {
		errs = append(errs, d.Err)
	}
	return errs
}

// encodings captures the canonical encodings of every operand.
func encodings(operands ...[]byte) []types.Bytes {
	out := make([]types.Bytes, len(operands))
	for i := range operands {
		out[i] = operands[i]
	}
	return out
}
