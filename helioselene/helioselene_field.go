package helioselene

import (
	"encoding/binary"
	"io"
	"math/bits"

	"git.gammaspectra.live/P2Pool/helioselene-contest/curve"
)

// HelioseleneField is an element of GF(q), q = 2^255 - 85737960593035654572250192257530476641,
// the base field of Selene and the scalar field of Helios. The zero value is 0.
//
// Limbs are little-endian, in Montgomery form with R = 2^256 and always fully reduced,
// so equal values have equal limbs.
type HelioseleneField struct {
	l [4]uint64
}

var (
	// q
	helioseleneModulus = [4]uint64{0x6eb6d2727927c79f, 0xbf7f782cb7656b58, 0xffffffffffffffff, 0x7fffffffffffffff}
	// R^2 mod q
	helioseleneRSquare = [4]uint64{0x796519faf06a5304, 0x6e709b56a6427587, 0xf19be179bd15cd0c, 0x410211c6fe99a770}
	// R mod q
	helioseleneROne = [4]uint64{0x22925b1b0db070c2, 0x81010fa69135294f, 0, 0}

	// q - 2, little-endian
	helioseleneInvertExp = [curve.EncodingSize]byte{
		0x9d, 0xc7, 0x27, 0x79, 0x72, 0xd2, 0xb6, 0x6e, 0x58, 0x6b, 0x65, 0xb7, 0x2c, 0x78, 0x7f, 0xbf,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f,
	}
	// (q + 1) / 4, little-endian. q = 3 mod 4
	helioseleneSqrtExp = [curve.EncodingSize]byte{
		0xe8, 0xf1, 0x49, 0x9e, 0x9c, 0xb4, 0xad, 0x1b, 0xd6, 0x5a, 0xd9, 0x2d, 0x0b, 0xde, 0xdf, 0xef,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x1f,
	}
)

// -q^-1 mod 2^64
const helioseleneInv64 = 0x8a5f094bd6f46ba1

// madd returns a*b + c + d as a 128-bit (hi, lo) pair. It cannot overflow.
func madd(a, b, c, d uint64) (hi, lo uint64) {
	var carry uint64
	hi, lo = bits.Mul64(a, b)
	lo, carry = bits.Add64(lo, c, 0)
	hi += carry
	lo, carry = bits.Add64(lo, d, 0)
	hi += carry
	return hi, lo
}

// montgomeryMultiply sets z = x * y * R^-1 mod q (CIOS).
func montgomeryMultiply(z, x, y *[4]uint64) {
	var t [6]uint64
	for i := range 4 {
		var c uint64
		for j := range 4 {
			c, t[j] = madd(x[j], y[i], t[j], c)
		}
		t[4], t[5] = bits.Add64(t[4], c, 0)

		m := t[0] * helioseleneInv64
		c, _ = madd(m, helioseleneModulus[0], t[0], 0)
		for j := 1; j < 4; j++ {
			c, t[j-1] = madd(m, helioseleneModulus[j], t[j], c)
		}
		var carry uint64
		t[3], carry = bits.Add64(t[4], c, 0)
		t[4] = t[5] + carry
	}

	reduceOnce(z, (*[4]uint64)(t[:4]), t[4])
}

// reduceOnce sets z = t - q if t (with extra high word hi) is at least q, else z = t.
func reduceOnce(z, t *[4]uint64, hi uint64) {
	var r [4]uint64
	var borrow uint64
	r[0], borrow = bits.Sub64(t[0], helioseleneModulus[0], 0)
	r[1], borrow = bits.Sub64(t[1], helioseleneModulus[1], borrow)
	r[2], borrow = bits.Sub64(t[2], helioseleneModulus[2], borrow)
	r[3], borrow = bits.Sub64(t[3], helioseleneModulus[3], borrow)
	_, borrow = bits.Sub64(hi, 0, borrow)

	// borrow set means t < q
	mask := -borrow
	for i := range z {
		z[i] = (t[i] & mask) | (r[i] &^ mask)
	}
}

func (v *HelioseleneField) Add(a, b *HelioseleneField) *HelioseleneField {
	var t [4]uint64
	var carry uint64
	t[0], carry = bits.Add64(a.l[0], b.l[0], 0)
	t[1], carry = bits.Add64(a.l[1], b.l[1], carry)
	t[2], carry = bits.Add64(a.l[2], b.l[2], carry)
	t[3], carry = bits.Add64(a.l[3], b.l[3], carry)
	reduceOnce(&v.l, &t, carry)
	return v
}

func (v *HelioseleneField) Subtract(a, b *HelioseleneField) *HelioseleneField {
	var t [4]uint64
	var borrow uint64
	t[0], borrow = bits.Sub64(a.l[0], b.l[0], 0)
	t[1], borrow = bits.Sub64(a.l[1], b.l[1], borrow)
	t[2], borrow = bits.Sub64(a.l[2], b.l[2], borrow)
	t[3], borrow = bits.Sub64(a.l[3], b.l[3], borrow)

	// add q back if the subtraction wrapped
	mask := -borrow
	var carry uint64
	v.l[0], carry = bits.Add64(t[0], helioseleneModulus[0]&mask, 0)
	v.l[1], carry = bits.Add64(t[1], helioseleneModulus[1]&mask, carry)
	v.l[2], carry = bits.Add64(t[2], helioseleneModulus[2]&mask, carry)
	v.l[3], _ = bits.Add64(t[3], helioseleneModulus[3]&mask, carry)
	return v
}

func (v *HelioseleneField) Multiply(a, b *HelioseleneField) *HelioseleneField {
	montgomeryMultiply(&v.l, &a.l, &b.l)
	return v
}

func (v *HelioseleneField) Square(a *HelioseleneField) *HelioseleneField {
	montgomeryMultiply(&v.l, &a.l, &a.l)
	return v
}

func (v *HelioseleneField) Double(a *HelioseleneField) *HelioseleneField {
	return v.Add(a, a)
}

func (v *HelioseleneField) Negate(a *HelioseleneField) *HelioseleneField {
	var zero HelioseleneField
	return v.Subtract(&zero, a)
}

// Invert sets v = a^(q-2).
func (v *HelioseleneField) Invert(a *HelioseleneField) (*HelioseleneField, error) {
	if a.l == [4]uint64{} {
		return nil, curve.ErrZeroInverse
	}
	return pow[HelioseleneField](v, a, helioseleneInvertExp[:]), nil
}

// Sqrt sets v to the even square root of a, computed as a^((q+1)/4).
func (v *HelioseleneField) Sqrt(a *HelioseleneField) (*HelioseleneField, error) {
	var r, check, neg HelioseleneField
	pow[HelioseleneField](&r, a, helioseleneSqrtExp[:])
	if check.Square(&r).Equal(a) == 0 {
		return nil, curve.ErrNonResidue
	}
	neg.Negate(&r)
	return v.Select(&neg, &r, r.IsOdd()), nil
}

func (v *HelioseleneField) Pow(a, e *HelioseleneField) *HelioseleneField {
	return pow[HelioseleneField](v, a, e.Bytes())
}

// SetBytes decodes a canonical little-endian encoding, rejecting values >= q.
func (v *HelioseleneField) SetBytes(buf []byte) (*HelioseleneField, error) {
	if len(buf) != curve.EncodingSize {
		return nil, curve.ErrInvalidLength
	}
	var t [4]uint64
	for i := range t {
		t[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}

	var borrow uint64
	_, borrow = bits.Sub64(t[0], helioseleneModulus[0], 0)
	_, borrow = bits.Sub64(t[1], helioseleneModulus[1], borrow)
	_, borrow = bits.Sub64(t[2], helioseleneModulus[2], borrow)
	_, borrow = bits.Sub64(t[3], helioseleneModulus[3], borrow)
	if borrow == 0 {
		return nil, curve.ErrNonCanonical
	}

	montgomeryMultiply(&v.l, &t, &helioseleneRSquare)
	return v, nil
}

func (v *HelioseleneField) Bytes() []byte {
	var t [4]uint64
	montgomeryMultiply(&t, &v.l, &[4]uint64{1})

	out := make([]byte, curve.EncodingSize)
	for i := range t {
		binary.LittleEndian.PutUint64(out[i*8:], t[i])
	}
	return out
}

// Random rejection samples 255-bit strings until one is below q.
func (v *HelioseleneField) Random(r io.Reader) (*HelioseleneField, error) {
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

func (v *HelioseleneField) Set(a *HelioseleneField) *HelioseleneField {
	v.l = a.l
	return v
}

// Select sets v to a if cond == 1, and to b if cond == 0.
func (v *HelioseleneField) Select(a, b *HelioseleneField, cond int) *HelioseleneField {
	mask := -uint64(cond)
	for i := range v.l {
		v.l[i] = (a.l[i] & mask) | (b.l[i] &^ mask)
	}
	return v
}

func (v *HelioseleneField) Zero() *HelioseleneField {
	v.l = [4]uint64{}
	return v
}

func (v *HelioseleneField) One() *HelioseleneField {
	v.l = helioseleneROne
	return v
}

func (v *HelioseleneField) IsOdd() int {
	var t [4]uint64
	montgomeryMultiply(&t, &v.l, &[4]uint64{1})
	return int(t[0] & 1)
}

func (v *HelioseleneField) IsEven() int {
	return 1 - v.IsOdd()
}

func (v *HelioseleneField) Equal(a *HelioseleneField) int {
	acc := (v.l[0] ^ a.l[0]) | (v.l[1] ^ a.l[1]) | (v.l[2] ^ a.l[2]) | (v.l[3] ^ a.l[3])
	return int(((acc | -acc) >> 63) ^ 1)
}
