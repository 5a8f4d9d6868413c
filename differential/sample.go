package differential

import (
	"bytes"
	"fmt"
	"io"

	"git.gammaspectra.live/P2Pool/helioselene-contest/curve"
	"git.gammaspectra.live/P2Pool/helioselene-contest/types"
)

// decodePair decodes the reference encoding through the candidate and checks the
// candidate encodes it back identically.
func decodePair(component string, encoded []byte, setBytes func([]byte) error, reencode func() []byte) error {
	if err := setBytes(encoded); err != nil {
		return &Divergence{
			Kind:              DecodeFailure,
			Component:         component,
			Operation:         "decode",
			ReferenceOperands: encodings(encoded),
			Err:               err,
		}
	}
	if candidate := reencode(); !bytes.Equal(candidate, encoded) {
		return &Divergence{
			Kind:              EncodingMismatch,
			Component:         component,
			Operation:         "decode",
			ReferenceOperands: encodings(encoded),
			Candidate:         candidate,
			Reference:         types.Bytes(encoded),
		}
	}
	return nil
}

// SampleField draws a random element from the reference and mirrors it into the candidate.
func SampleField[C, R any, VC curve.Field[C], VR curve.Field[R]](component string, r io.Reader) (*C, *R, error) {
	ref, err := VR(new(R)).Random(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: sample: %w", component, err)
	}
	candidate := new(C)
	err = decodePair(component, VR(ref).Bytes(), func(buf []byte) error {
		_, err := VC(candidate).SetBytes(buf)
		return err
	}, VC(candidate).Bytes)
	if err != nil {
		return nil, nil, err
	}
	return candidate, ref, nil
}

// SamplePoint draws a random point from the reference and mirrors it into the candidate.
func SamplePoint[C, R any, VC curve.Point[C], VR curve.Point[R]](component string, r io.Reader) (*C, *R, error) {
	ref, err := VR(new(R)).Random(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: sample: %w", component, err)
	}
	candidate := new(C)
	err = decodePair(component, VR(ref).Bytes(), func(buf []byte) error {
		_, err := VC(candidate).SetBytes(buf)
		return err
	}, VC(candidate).Bytes)
	if err != nil {
		return nil, nil, err
	}
	return candidate, ref, nil
}
