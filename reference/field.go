package reference

import (
	"bytes"
	"io"
	"math/big"

	"git.gammaspectra.live/P2Pool/helioselene-contest/curve"
)

// Modulus selects the prime of an Element. Implementations are zero-sized.
type Modulus interface {
	modulus() *big.Int
}

// Element is a textbook prime field element. The value is kept as its
// canonical little-endian encoding so that Element can be copied freely;
// every operation goes through math/big.
type Element[M Modulus] struct {
	le [curve.EncodingSize]byte
}

func (e *Element[M]) bigInt() *big.Int {
	var be [curve.EncodingSize]byte
	for i := range e.le {
		be[curve.EncodingSize-1-i] = e.le[i]
	}
	return new(big.Int).SetBytes(be[:])
}

func (e *Element[M]) setBigInt(x *big.Int) *Element[M] {
	var m M
	x = new(big.Int).Mod(x, m.modulus())

	var be [curve.EncodingSize]byte
	x.FillBytes(be[:])
	for i := range be {
		e.le[curve.EncodingSize-1-i] = be[i]
	}
	return e
}

func (e *Element[M]) Add(a, b *Element[M]) *Element[M] {
	return e.setBigInt(new(big.Int).Add(a.bigInt(), b.bigInt()))
}

func (e *Element[M]) Subtract(a, b *Element[M]) *Element[M] {
	return e.setBigInt(new(big.Int).Sub(a.bigInt(), b.bigInt()))
}

func (e *Element[M]) Multiply(a, b *Element[M]) *Element[M] {
	return e.setBigInt(new(big.Int).Mul(a.bigInt(), b.bigInt()))
}

func (e *Element[M]) Square(a *Element[M]) *Element[M] {
	x := a.bigInt()
	return e.setBigInt(x.Mul(x, x))
}

func (e *Element[M]) Double(a *Element[M]) *Element[M] {
	x := a.bigInt()
	return e.setBigInt(x.Lsh(x, 1))
}

func (e *Element[M]) Negate(a *Element[M]) *Element[M] {
	return e.setBigInt(new(big.Int).Neg(a.bigInt()))
}

func (e *Element[M]) Invert(a *Element[M]) (*Element[M], error) {
	var m M
	inv := new(big.Int).ModInverse(a.bigInt(), m.modulus())
	if inv == nil {
		return nil, curve.ErrZeroInverse
	}
	return e.setBigInt(inv), nil
}

// Sqrt sets e to the even square root of a.
func (e *Element[M]) Sqrt(a *Element[M]) (*Element[M], error) {
	var m M
	r := new(big.Int).ModSqrt(a.bigInt(), m.modulus())
	if r == nil {
		return nil, curve.ErrNonResidue
	}
	if r.Bit(0) == 1 {
		r.Sub(m.modulus(), r)
	}
	return e.setBigInt(r), nil
}

func (e *Element[M]) Pow(a, exp *Element[M]) *Element[M] {
	var m M
	return e.setBigInt(new(big.Int).Exp(a.bigInt(), exp.bigInt(), m.modulus()))
}

func (e *Element[M]) SetBytes(buf []byte) (*Element[M], error) {
	if len(buf) != curve.EncodingSize {
		return nil, curve.ErrInvalidLength
	}
	var tmp Element[M]
	copy(tmp.le[:], buf)

	var m M
	if tmp.bigInt().Cmp(m.modulus()) >= 0 {
		return nil, curve.ErrNonCanonical
	}
	*e = tmp
	return e, nil
}

func (e *Element[M]) Bytes() []byte {
	out := e.le
	return out[:]
}

// Random sets e to a uniform element by reducing 64 bytes of entropy.
func (e *Element[M]) Random(r io.Reader) (*Element[M], error) {
	var wide [curve.EncodingSize * 2]byte
	if _, err := io.ReadFull(r, wide[:]); err != nil {
		return nil, err
	}
	for i, j := 0, len(wide)-1; i < j; i, j = i+1, j-1 {
		wide[i], wide[j] = wide[j], wide[i]
	}
	return e.setBigInt(new(big.Int).SetBytes(wide[:])), nil
}

func (e *Element[M]) Set(a *Element[M]) *Element[M] {
	*e = *a
	return e
}

func (e *Element[M]) Select(a, b *Element[M], cond int) *Element[M] {
	if cond == 1 {
		*e = *a
	} else {
		*e = *b
	}
	return e
}

func (e *Element[M]) Zero() *Element[M] {
	*e = Element[M]{}
	return e
}

func (e *Element[M]) One() *Element[M] {
	*e = Element[M]{}
	e.le[0] = 1
	return e
}

func (e *Element[M]) IsOdd() int {
	return int(e.bigInt().Bit(0))
}

func (e *Element[M]) IsEven() int {
	return 1 - int(e.bigInt().Bit(0))
}

func (e *Element[M]) Equal(a *Element[M]) int {
	if bytes.Equal(e.le[:], a.le[:]) {
		return 1
	}
	return 0
}

func (e *Element[M]) String() string {
	return e.bigInt().String()
}

func mustDecimal(s string) *big.Int {
	m, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("invalid decimal " + s)
	}
	return m
}

// p = 2^255 - 19
var modulus25519 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(19))

var modulusHelioselene = mustDecimal("57896044618658097711785492504343953926549254372227246365156541811699034343327")

type field25519 struct{}

func (field25519) modulus() *big.Int { return modulus25519 }

type fieldHelioselene struct{}

func (fieldHelioselene) modulus() *big.Int { return modulusHelioselene }

// Field25519 is GF(2^255 - 19), the base field of Helios and scalar field of Selene.
type Field25519 = Element[field25519]

// HelioseleneField is the base field of Selene and scalar field of Helios.
type HelioseleneField = Element[fieldHelioselene]

var (
	_ = curve.IsZero[Field25519, *Field25519]
	_ = curve.IsZero[HelioseleneField, *HelioseleneField]
)
