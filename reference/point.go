package reference

import (
	"io"

	"git.gammaspectra.live/P2Pool/helioselene-contest/curve"
)

// Curve selects the short Weierstrass curve y^2 = x^3 - 3x + b over GF(M).
type Curve[M Modulus] interface {
	b() *Element[M]
	generator() (x, y *Element[M])
}

// Point is an affine point on a curve over GF(M) with scalars in GF(N).
// The zero value is the point at infinity.
type Point[M, N Modulus, C Curve[M]] struct {
	x, y   Element[M]
	finite bool
}

// rhs returns x^3 - 3x + b.
func rhs[M Modulus, C Curve[M]](x *Element[M]) *Element[M] {
	var c C
	var x3, t Element[M]
	x3.Square(x)
	x3.Multiply(&x3, x)
	t.Double(x)
	t.Add(&t, x)
	x3.Subtract(&x3, &t)
	return x3.Add(&x3, c.b())
}

func (v *Point[M, N, C]) Add(p, q *Point[M, N, C]) *Point[M, N, C] {
	if !p.finite {
		return v.Set(q)
	}
	if !q.finite {
		return v.Set(p)
	}

	if p.x.Equal(&q.x) == 1 {
		var sum Element[M]
		if curve.IsZero[Element[M], *Element[M]](sum.Add(&p.y, &q.y)) {
			return v.Identity()
		}
		return v.Double(p)
	}

	// lambda = (y2 - y1) / (x2 - x1)
	var num, den, lambda Element[M]
	num.Subtract(&q.y, &p.y)
	den.Subtract(&q.x, &p.x)
	if _, err := den.Invert(&den); err != nil {
		panic(err)
	}
	lambda.Multiply(&num, &den)

	return v.chord(&lambda, p, &q.x)
}

// chord sets v to the third intersection of the line of slope lambda through p,
// where x2 is the x coordinate of the second point, negated.
func (v *Point[M, N, C]) chord(lambda *Element[M], p *Point[M, N, C], x2 *Element[M]) *Point[M, N, C] {
	var x3, y3 Element[M]
	x3.Square(lambda)
	x3.Subtract(&x3, &p.x)
	x3.Subtract(&x3, x2)

	y3.Subtract(&p.x, &x3)
	y3.Multiply(&y3, lambda)
	y3.Subtract(&y3, &p.y)

	v.x, v.y, v.finite = x3, y3, true
	return v
}

func (v *Point[M, N, C]) Subtract(p, q *Point[M, N, C]) *Point[M, N, C] {
	var neg Point[M, N, C]
	return v.Add(p, neg.Negate(q))
}

func (v *Point[M, N, C]) Double(p *Point[M, N, C]) *Point[M, N, C] {
	if !p.finite || curve.IsZero[Element[M], *Element[M]](&p.y) {
		return v.Identity()
	}

	// lambda = (3x^2 - 3) / 2y
	var num, den, one, lambda Element[M]
	one.One()
	num.Square(&p.x)
	num.Subtract(&num, &one)
	num.Add(&num, den.Double(&num))
	den.Double(&p.y)
	if _, err := den.Invert(&den); err != nil {
		panic(err)
	}
	lambda.Multiply(&num, &den)

	return v.chord(&lambda, p, &p.x)
}

func (v *Point[M, N, C]) Negate(p *Point[M, N, C]) *Point[M, N, C] {
	v.Set(p)
	v.y.Negate(&v.y)
	return v
}

// ScalarMult sets v = s * p by plain double-and-add over the bits of s.
func (v *Point[M, N, C]) ScalarMult(s *Element[N], p *Point[M, N, C]) *Point[M, N, C] {
	base := *p
	k := s.bigInt()

	var acc Point[M, N, C]
	for i := k.BitLen() - 1; i >= 0; i-- {
		acc.Double(&acc)
		if k.Bit(i) == 1 {
			acc.Add(&acc, &base)
		}
	}
	*v = acc
	return v
}

func (v *Point[M, N, C]) ScalarBaseMult(s *Element[N]) *Point[M, N, C] {
	var g Point[M, N, C]
	return v.ScalarMult(s, g.Generator())
}

func (v *Point[M, N, C]) Generator() *Point[M, N, C] {
	var c C
	x, y := c.generator()
	v.x, v.y, v.finite = *x, *y, true
	return v
}

// SetBytes decodes x with the parity of y in the top bit. All zero bytes decode
// to the identity.
func (v *Point[M, N, C]) SetBytes(buf []byte) (*Point[M, N, C], error) {
	if len(buf) != curve.EncodingSize {
		return nil, curve.ErrInvalidLength
	}
	if [curve.EncodingSize]byte(buf) == curve.IdentityEncoding {
		return v.Identity(), nil
	}

	var xBuf [curve.EncodingSize]byte
	copy(xBuf[:], buf)
	odd := int(xBuf[curve.EncodingSize-1] >> 7)
	xBuf[curve.EncodingSize-1] &= 0x7f

	var x, y Element[M]
	if _, err := x.SetBytes(xBuf[:]); err != nil {
		return nil, err
	}
	if _, err := y.Sqrt(rhs[M, C](&x)); err != nil {
		return nil, curve.ErrNotOnCurve
	}
	if odd == 1 {
		if curve.IsZero[Element[M], *Element[M]](&y) {
			return nil, curve.ErrNonCanonical
		}
		y.Negate(&y)
	}

	v.x, v.y, v.finite = x, y, true
	return v, nil
}

func (v *Point[M, N, C]) Bytes() []byte {
	if !v.finite {
		out := curve.IdentityEncoding
		return out[:]
	}
	out := v.x.Bytes()
	out[curve.EncodingSize-1] |= byte(v.y.IsOdd()) << 7
	return out
}

// Random samples x uniformly until it lands on the curve, then picks the sign
// of y from one more byte of entropy.
func (v *Point[M, N, C]) Random(r io.Reader) (*Point[M, N, C], error) {
	var x, y Element[M]
	for {
		if _, err := x.Random(r); err != nil {
			return nil, err
		}
		if _, err := y.Sqrt(rhs[M, C](&x)); err == nil {
			break
		}
	}

	var sign [1]byte
	if _, err := io.ReadFull(r, sign[:]); err != nil {
		return nil, err
	}
	if sign[0]&1 == 1 {
		y.Negate(&y)
	}

	v.x, v.y, v.finite = x, y, true
	return v, nil
}

func (v *Point[M, N, C]) Set(p *Point[M, N, C]) *Point[M, N, C] {
	*v = *p
	return v
}

func (v *Point[M, N, C]) Identity() *Point[M, N, C] {
	*v = Point[M, N, C]{}
	return v
}

func (v *Point[M, N, C]) IsIdentity() int {
	if v.finite {
		return 0
	}
	return 1
}

func (v *Point[M, N, C]) Equal(p *Point[M, N, C]) int {
	if !v.finite || !p.finite {
		if v.finite == p.finite {
			return 1
		}
		return 0
	}
	return v.x.Equal(&p.x) & v.y.Equal(&p.y)
}
