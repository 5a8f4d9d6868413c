package helioselene

import (
	"bytes"
	"io"

	"git.gammaspectra.live/P2Pool/edwards25519/field"
	"git.gammaspectra.live/P2Pool/helioselene-contest/curve"
)

// Field25519 is an element of GF(2^255 - 19), the base field of Helios and the
// scalar field of Selene. The zero value is 0.
type Field25519 struct {
	e field.Element
}

var field25519One = new(field.Element).One()

func (v *Field25519) Add(a, b *Field25519) *Field25519 {
	v.e.Add(&a.e, &b.e)
	return v
}

func (v *Field25519) Subtract(a, b *Field25519) *Field25519 {
	v.e.Subtract(&a.e, &b.e)
	return v
}

func (v *Field25519) Multiply(a, b *Field25519) *Field25519 {
	v.e.Multiply(&a.e, &b.e)
	return v
}

func (v *Field25519) Square(a *Field25519) *Field25519 {
	v.e.Square(&a.e)
	return v
}

func (v *Field25519) Double(a *Field25519) *Field25519 {
	v.e.Add(&a.e, &a.e)
	return v
}

func (v *Field25519) Negate(a *Field25519) *Field25519 {
	v.e.Negate(&a.e)
	return v
}

func (v *Field25519) Invert(a *Field25519) (*Field25519, error) {
	var zero field.Element
	if a.e.Equal(&zero) == 1 {
		return nil, curve.ErrZeroInverse
	}
	v.e.Invert(&a.e)
	return v, nil
}

// Sqrt sets v to the non-negative (even) square root of a.
func (v *Field25519) Sqrt(a *Field25519) (*Field25519, error) {
	var r field.Element
	if _, wasSquare := r.SqrtRatio(&a.e, field25519One); wasSquare == 0 {
		return nil, curve.ErrNonResidue
	}
	v.e.Set(&r)
	return v, nil
}

func (v *Field25519) Pow(a, e *Field25519) *Field25519 {
	return pow[Field25519](v, a, e.Bytes())
}

// SetBytes decodes a canonical little-endian encoding. Unlike field.Element,
// it rejects values >= p and a set top bit.
func (v *Field25519) SetBytes(buf []byte) (*Field25519, error) {
	if len(buf) != curve.EncodingSize {
		return nil, curve.ErrInvalidLength
	}
	if buf[curve.EncodingSize-1]&0x80 != 0 {
		return nil, curve.ErrNonCanonical
	}

	var e field.Element
	if _, err := e.SetBytes(buf); err != nil {
		return nil, err
	}
	if !bytes.Equal(e.Bytes(), buf) {
		return nil, curve.ErrNonCanonical
	}
	v.e.Set(&e)
	return v, nil
}

func (v *Field25519) Bytes() []byte {
	return v.e.Bytes()
}

// Random rejection samples 255-bit strings until one is canonical.
func (v *Field25519) Random(r io.Reader) (*Field25519, error) {
	var buf [curve.EncodingSize]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		buf[curve.EncodingSize-1] &= 0x7f
		if _, err := v.SetBytes(buf[:]); err == nil {
			return v, nil
		}
	}
}

func (v *Field25519) Set(a *Field25519) *Field25519 {
	v.e.Set(&a.e)
	return v
}

// Select sets v to a if cond == 1, and to b if cond == 0.
func (v *Field25519) Select(a, b *Field25519, cond int) *Field25519 {
	v.e.Select(&a.e, &b.e, cond)
	return v
}

func (v *Field25519) Zero() *Field25519 {
	v.e.Zero()
	return v
}

func (v *Field25519) One() *Field25519 {
	v.e.One()
	return v
}

func (v *Field25519) IsOdd() int {
	return v.e.IsNegative()
}

func (v *Field25519) IsEven() int {
	return int(^v.e.Bytes()[0] & 1)
}

func (v *Field25519) Equal(a *Field25519) int {
	return v.e.Equal(&a.e)
}
