package helioselene

import (
	"io"
	"sync"

	"git.gammaspectra.live/P2Pool/helioselene-contest/curve"
)

// curveParams binds a curve y^2 = x^3 - 3x + b to its base field F.
type curveParams[F any] interface {
	b() *F
	generator() (x, y *F)
	tables() *baseTables
}

// baseTables lazily holds the fixed-base table of one curve.
type baseTables struct {
	once  sync.Once
	table any
}

// Point is a projective point (X : Y : Z) on the curve selected by C, over the
// field F with scalars S. The identity is (0 : 1 : 0).
//
// The zero value (0 : 0 : 0) is also the identity. Exported operations normalize it
// before use, since the addition formulas do not accept it.
type Point[F, S any, VF curve.Field[F], VS curve.Field[S], C curveParams[F]] struct {
	x, y, z F
}

// normalize returns p, or the identity (0 : 1 : 0) in tmp if p is the zero value.
func (p *Point[F, S, VF, VS, C]) normalize(tmp *Point[F, S, VF, VS, C]) *Point[F, S, VF, VS, C] {
	var zero, one F
	VF(&one).One()
	isZero := VF(&p.y).Equal(&zero) & VF(&p.z).Equal(&zero)

	tmp.x = p.x
	VF(&tmp.y).Select(&one, &p.y, isZero)
	tmp.z = p.z
	return tmp
}

// Add sets v = p + q.
func (v *Point[F, S, VF, VS, C]) Add(p, q *Point[F, S, VF, VS, C]) *Point[F, S, VF, VS, C] {
	var pn, qn Point[F, S, VF, VS, C]
	return v.add(p.normalize(&pn), q.normalize(&qn))
}

// add sets v = p + q (RCB 2016, algorithm 4). Neither input may be the zero value.
func (v *Point[F, S, VF, VS, C]) add(p, q *Point[F, S, VF, VS, C]) *Point[F, S, VF, VS, C] {
	var c C
	b := c.b()

	var t0, t1, t2, t3, t4, x3, y3, z3 F
	VF(&t0).Multiply(&p.x, &q.x)
	VF(&t1).Multiply(&p.y, &q.y)
	VF(&t2).Multiply(&p.z, &q.z)
	VF(&t3).Add(&p.x, &p.y)
	VF(&t4).Add(&q.x, &q.y)
	VF(&t3).Multiply(&t3, &t4)
	VF(&t4).Add(&t0, &t1)
	VF(&t3).Subtract(&t3, &t4)
	VF(&t4).Add(&p.y, &p.z)
	VF(&x3).Add(&q.y, &q.z)
	VF(&t4).Multiply(&t4, &x3)
	VF(&x3).Add(&t1, &t2)
	VF(&t4).Subtract(&t4, &x3)
	VF(&x3).Add(&p.x, &p.z)
	VF(&y3).Add(&q.x, &q.z)
	VF(&x3).Multiply(&x3, &y3)
	VF(&y3).Add(&t0, &t2)
	VF(&y3).Subtract(&x3, &y3)
	VF(&z3).Multiply(b, &t2)
	VF(&x3).Subtract(&y3, &z3)
	VF(&z3).Add(&x3, &x3)
	VF(&x3).Add(&x3, &z3)
	VF(&z3).Subtract(&t1, &x3)
	VF(&x3).Add(&t1, &x3)
	VF(&y3).Multiply(b, &y3)
	VF(&t1).Add(&t2, &t2)
	VF(&t2).Add(&t1, &t2)
	VF(&y3).Subtract(&y3, &t2)
	VF(&y3).Subtract(&y3, &t0)
	VF(&t1).Add(&y3, &y3)
	VF(&y3).Add(&t1, &y3)
	VF(&t1).Add(&t0, &t0)
	VF(&t0).Add(&t1, &t0)
	VF(&t0).Subtract(&t0, &t2)
	VF(&t1).Multiply(&t4, &y3)
	VF(&t2).Multiply(&t0, &y3)
	VF(&y3).Multiply(&x3, &z3)
	VF(&y3).Add(&y3, &t2)
	VF(&x3).Multiply(&x3, &t3)
	VF(&x3).Subtract(&x3, &t1)
	VF(&z3).Multiply(&t4, &z3)
	VF(&t1).Multiply(&t3, &t0)
	VF(&z3).Add(&z3, &t1)

	v.x, v.y, v.z = x3, y3, z3
	return v
}

func (v *Point[F, S, VF, VS, C]) Subtract(p, q *Point[F, S, VF, VS, C]) *Point[F, S, VF, VS, C] {
	var pn, qn, neg Point[F, S, VF, VS, C]
	return v.add(p.normalize(&pn), neg.Negate(q.normalize(&qn)))
}

// Double sets v = 2p.
func (v *Point[F, S, VF, VS, C]) Double(p *Point[F, S, VF, VS, C]) *Point[F, S, VF, VS, C] {
	var pn Point[F, S, VF, VS, C]
	return v.double(p.normalize(&pn))
}

// double sets v = 2p (RCB 2016, algorithm 6).
func (v *Point[F, S, VF, VS, C]) double(p *Point[F, S, VF, VS, C]) *Point[F, S, VF, VS, C] {
	var c C
	b := c.b()

	var t0, t1, t2, t3, x3, y3, z3 F
	VF(&t0).Square(&p.x)
	VF(&t1).Square(&p.y)
	VF(&t2).Square(&p.z)
	VF(&t3).Multiply(&p.x, &p.y)
	VF(&t3).Add(&t3, &t3)
	VF(&z3).Multiply(&p.x, &p.z)
	VF(&z3).Add(&z3, &z3)
	VF(&y3).Multiply(b, &t2)
	VF(&y3).Subtract(&y3, &z3)
	VF(&x3).Add(&y3, &y3)
	VF(&y3).Add(&x3, &y3)
	VF(&x3).Subtract(&t1, &y3)
	VF(&y3).Add(&t1, &y3)
	VF(&y3).Multiply(&x3, &y3)
	VF(&x3).Multiply(&x3, &t3)
	VF(&t3).Add(&t2, &t2)
	VF(&t2).Add(&t2, &t3)
	VF(&z3).Multiply(b, &z3)
	VF(&z3).Subtract(&z3, &t2)
	VF(&z3).Subtract(&z3, &t0)
	VF(&t3).Add(&z3, &z3)
	VF(&z3).Add(&z3, &t3)
	VF(&t3).Add(&t0, &t0)
	VF(&t0).Add(&t3, &t0)
	VF(&t0).Subtract(&t0, &t2)
	VF(&t0).Multiply(&t0, &z3)
	VF(&y3).Add(&y3, &t0)
	VF(&t0).Multiply(&p.y, &p.z)
	VF(&t0).Add(&t0, &t0)
	VF(&z3).Multiply(&t0, &z3)
	VF(&x3).Subtract(&x3, &z3)
	VF(&z3).Multiply(&t0, &t1)
	VF(&z3).Add(&z3, &z3)
	VF(&z3).Add(&z3, &z3)

	v.x, v.y, v.z = x3, y3, z3
	return v
}

func (v *Point[F, S, VF, VS, C]) Negate(p *Point[F, S, VF, VS, C]) *Point[F, S, VF, VS, C] {
	VF(&v.x).Set(&p.x)
	VF(&v.y).Negate(&p.y)
	VF(&v.z).Set(&p.z)
	return v
}

// selectPoint sets v to table[index] without branching on index.
func (v *Point[F, S, VF, VS, C]) selectPoint(table *[16]Point[F, S, VF, VS, C], index byte) *Point[F, S, VF, VS, C] {
	v.Identity()
	for i := range table {
		cond := eq(i, int(index))
		VF(&v.x).Select(&table[i].x, &v.x, cond)
		VF(&v.y).Select(&table[i].y, &v.y, cond)
		VF(&v.z).Select(&table[i].z, &v.z, cond)
	}
	return v
}

// multiples sets table[i] = i * p.
func multiples[F, S any, VF curve.Field[F], VS curve.Field[S], C curveParams[F]](table *[16]Point[F, S, VF, VS, C], p *Point[F, S, VF, VS, C]) {
	table[0].Identity()
	table[1].Set(p)
	for i := 2; i < len(table); i += 2 {
		table[i].double(&table[i/2])
		table[i+1].add(&table[i], p)
	}
}

// ScalarMult sets v = s * p with a fixed 4-bit window over the canonical encoding of s.
func (v *Point[F, S, VF, VS, C]) ScalarMult(s *S, p *Point[F, S, VF, VS, C]) *Point[F, S, VF, VS, C] {
	var pn Point[F, S, VF, VS, C]
	var table [16]Point[F, S, VF, VS, C]
	multiples[F, S, VF, VS, C](&table, p.normalize(&pn))

	k := VS(s).Bytes()

	var acc, entry Point[F, S, VF, VS, C]
	acc.Identity()
	for i := len(k) - 1; i >= 0; i-- {
		for _, nibble := range [2]byte{k[i] >> 4, k[i] & 0x0f} {
			acc.double(&acc)
			acc.double(&acc)
			acc.double(&acc)
			acc.double(&acc)
			acc.add(&acc, entry.selectPoint(&table, nibble))
		}
	}
	return v.Set(&acc)
}

// baseTable holds j * 16^i * G for every 4-bit window i.
type baseTable[F, S any, VF curve.Field[F], VS curve.Field[S], C curveParams[F]] [2 * curve.EncodingSize][16]Point[F, S, VF, VS, C]

func generatorTable[F, S any, VF curve.Field[F], VS curve.Field[S], C curveParams[F]]() *baseTable[F, S, VF, VS, C] {
	var c C
	t := c.tables()
	t.once.Do(func() {
		table := new(baseTable[F, S, VF, VS, C])
		var base Point[F, S, VF, VS, C]
		base.Generator()
		for i := range table {
			multiples[F, S, VF, VS, C](&table[i], &base)
			// base <- 16 * base
			base.double(&table[i][8])
		}
		t.table = table
	})
	return t.table.(*baseTable[F, S, VF, VS, C])
}

// ScalarBaseMult sets v = s * G from the precomputed generator table.
func (v *Point[F, S, VF, VS, C]) ScalarBaseMult(s *S) *Point[F, S, VF, VS, C] {
	table := generatorTable[F, S, VF, VS, C]()
	k := VS(s).Bytes()

	var acc, entry Point[F, S, VF, VS, C]
	acc.Identity()
	for i := range k {
		acc.add(&acc, entry.selectPoint(&table[2*i], k[i]&0x0f))
		acc.add(&acc, entry.selectPoint(&table[2*i+1], k[i]>>4))
	}
	return v.Set(&acc)
}

func (v *Point[F, S, VF, VS, C]) Generator() *Point[F, S, VF, VS, C] {
	var c C
	x, y := c.generator()
	VF(&v.x).Set(x)
	VF(&v.y).Set(y)
	VF(&v.z).One()
	return v
}

// rhs returns x^3 - 3x + b.
func rhs[F any, VF curve.Field[F], C curveParams[F]](x *F) *F {
	var c C
	var x3, t F
	VF(&x3).Square(x)
	VF(&x3).Multiply(&x3, x)
	VF(&t).Double(x)
	VF(&t).Add(&t, x)
	VF(&x3).Subtract(&x3, &t)
	return VF(&x3).Add(&x3, c.b())
}

// SetBytes decodes a compressed point: x little-endian with the parity of y in the top bit.
func (v *Point[F, S, VF, VS, C]) SetBytes(buf []byte) (*Point[F, S, VF, VS, C], error) {
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

	var x, y, negY F
	if _, err := VF(&x).SetBytes(xBuf[:]); err != nil {
		return nil, err
	}
	if _, err := VF(&y).Sqrt(rhs[F, VF, C](&x)); err != nil {
		return nil, curve.ErrNotOnCurve
	}
	if odd == 1 && curve.IsZero[F, VF](&y) {
		return nil, curve.ErrNonCanonical
	}
	VF(&y).Select(VF(&negY).Negate(&y), &y, odd)

	v.x, v.y = x, y
	VF(&v.z).One()
	return v, nil
}

func (v *Point[F, S, VF, VS, C]) Bytes() []byte {
	var zInv, x, y F
	if _, err := VF(&zInv).Invert(&v.z); err != nil {
		out := curve.IdentityEncoding
		return out[:]
	}
	VF(&x).Multiply(&v.x, &zInv)
	VF(&y).Multiply(&v.y, &zInv)

	out := VF(&x).Bytes()
	out[curve.EncodingSize-1] |= byte(VF(&y).IsOdd()) << 7
	return out
}

// Random samples x until it lands on the curve, then picks the sign of y from
// one more byte of entropy.
func (v *Point[F, S, VF, VS, C]) Random(r io.Reader) (*Point[F, S, VF, VS, C], error) {
	var x, y, negY F
	for {
		if _, err := VF(&x).Random(r); err != nil {
			return nil, err
		}
		if _, err := VF(&y).Sqrt(rhs[F, VF, C](&x)); err == nil {
			break
		}
	}

	var sign [1]byte
	if _, err := io.ReadFull(r, sign[:]); err != nil {
		return nil, err
	}
	VF(&y).Select(VF(&negY).Negate(&y), &y, int(sign[0]&1))

	v.x, v.y = x, y
	VF(&v.z).One()
	return v, nil
}

func (v *Point[F, S, VF, VS, C]) Set(p *Point[F, S, VF, VS, C]) *Point[F, S, VF, VS, C] {
	*v = *p
	return v
}

func (v *Point[F, S, VF, VS, C]) Identity() *Point[F, S, VF, VS, C] {
	VF(&v.x).Zero()
	VF(&v.y).One()
	VF(&v.z).Zero()
	return v
}

func (v *Point[F, S, VF, VS, C]) IsIdentity() int {
	var zero F
	return VF(&v.z).Equal(VF(&zero).Zero())
}

// Equal compares X1*Z2 == X2*Z1 and Y1*Z2 == Y2*Z1.
func (v *Point[F, S, VF, VS, C]) Equal(q *Point[F, S, VF, VS, C]) int {
	var an, bn Point[F, S, VF, VS, C]
	a, b := v.normalize(&an), q.normalize(&bn)

	var l, r F
	VF(&l).Multiply(&a.x, &b.z)
	VF(&r).Multiply(&b.x, &a.z)
	eqX := VF(&l).Equal(&r)
	VF(&l).Multiply(&a.y, &b.z)
	VF(&r).Multiply(&b.y, &a.z)
	return eqX & VF(&l).Equal(&r)
}
