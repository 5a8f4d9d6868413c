package differential

import (
	"errors"
	"io"

	"git.gammaspectra.live/P2Pool/helioselene-contest/reference"
)

var errInjected = errors.New("injected fault")

// fault selects the misbehaviour of faultyField; empty means none.
var fault string

// faultyField is a correct field implementation with one switchable defect.
type faultyField struct {
	e reference.Field25519
}

func (v *faultyField) Add(a, b *faultyField) *faultyField {
	v.e.Add(&a.e, &b.e)
	if fault == "add" {
		var one reference.Field25519
		v.e.Add(&v.e, one.One())
	}
	return v
}

func (v *faultyField) Subtract(a, b *faultyField) *faultyField {
	v.e.Subtract(&a.e, &b.e)
	return v
}

func (v *faultyField) Multiply(a, b *faultyField) *faultyField {
	v.e.Multiply(&a.e, &b.e)
	return v
}

func (v *faultyField) Square(a *faultyField) *faultyField {
	v.e.Square(&a.e)
	return v
}

func (v *faultyField) Double(a *faultyField) *faultyField {
	v.e.Double(&a.e)
	return v
}

func (v *faultyField) Negate(a *faultyField) *faultyField {
	v.e.Negate(&a.e)
	return v
}

func (v *faultyField) Invert(a *faultyField) (*faultyField, error) {
	if fault == "inv" {
		return nil, errInjected
	}
	if _, err := v.e.Invert(&a.e); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *faultyField) Sqrt(a *faultyField) (*faultyField, error) {
	if _, err := v.e.Sqrt(&a.e); err != nil {
		return nil, err
	}
	if fault == "sqrt-odd" {
		v.e.Negate(&v.e)
	}
	return v, nil
}

func (v *faultyField) Pow(a, e *faultyField) *faultyField {
	v.e.Pow(&a.e, &e.e)
	return v
}

func (v *faultyField) SetBytes(buf []byte) (*faultyField, error) {
	if fault == "decode" {
		return nil, errInjected
	}
	if _, err := v.e.SetBytes(buf); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *faultyField) Bytes() []byte {
	buf := v.e.Bytes()
	if fault == "encode" {
		buf[1] ^= 1
	}
	return buf
}

func (v *faultyField) Random(r io.Reader) (*faultyField, error) {
	if _, err := v.e.Random(r); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *faultyField) Set(a *faultyField) *faultyField {
	v.e.Set(&a.e)
	return v
}

func (v *faultyField) Select(a, b *faultyField, cond int) *faultyField {
	v.e.Select(&a.e, &b.e, cond)
	return v
}

func (v *faultyField) Zero() *faultyField {
	v.e.Zero()
	return v
}

func (v *faultyField) One() *faultyField {
	v.e.One()
	return v
}

func (v *faultyField) IsOdd() int {
	if fault == "is-odd" {
		return 1 - v.e.IsOdd()
	}
	return v.e.IsOdd()
}

func (v *faultyField) IsEven() int {
	return v.e.IsEven()
}

func (v *faultyField) Equal(a *faultyField) int {
	return v.e.Equal(&a.e)
}
