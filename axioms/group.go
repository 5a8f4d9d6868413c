package axioms

import (
	"bytes"
	"io"

	"git.gammaspectra.live/P2Pool/helioselene-contest/curve"
)

func same[P any, VP curve.Point[P]](a, b *P) bool {
	return VP(a).Equal(b) == 1
}

// Group checks the group axioms and the encoding rules of the curve P with scalars S.
func Group[P, S any, VP curve.CurvePoint[P, S], VS curve.Field[S]](r io.Reader, name string) error {
	s := &suite{name: name}

	var identity, g, t P
	VP(&identity).Identity()
	VP(&g).Generator()

	s.check(bytes.Equal(VP(&identity).Bytes(), curve.IdentityEncoding[:]), "identity encodes as all zero")
	_, err := VP(&t).SetBytes(curve.IdentityEncoding[:])
	s.check(err == nil && VP(&t).IsIdentity() == 1, "all zero decodes to the identity")
	s.check(VP(&g).IsIdentity() == 0, "generator is not the identity")

	var one, minusOne, zero S
	VS(&one).One()
	VS(&minusOne).Negate(&one)
	VS(&zero).Zero()
	s.check(same[P, VP](VP(&t).ScalarMult(&one, &g), &g), "1 * G = G")
	VP(&t).ScalarMult(&zero, &g)
	s.check(VP(&t).IsIdentity() == 1, "0 * G = O")
	s.check(same[P, VP](VP(&t).ScalarMult(&minusOne, &g), VP(new(P)).Negate(&g)), "(-1) * G = -G")

	groupEncoding[P, S, VP](s, &g)

	for range Rounds {
		var a, b, c P
		for _, p := range []*P{&a, &b, &c} {
			if _, err := VP(p).Random(r); err != nil {
				s.fail(err, "random")
				return s.err
			}
		}
		var k, m S
		for _, v := range []*S{&k, &m} {
			if _, err := VS(v).Random(r); err != nil {
				s.fail(err, "random")
				return s.err
			}
		}
		groupRound[P, S, VP, VS](s, &a, &b, &c, &g, &identity, &k, &m)
		if s.err != nil {
			return s.err
		}
	}
	return s.err
}

func groupEncoding[P, S any, VP curve.CurvePoint[P, S]](s *suite, g *P) {
	enc := VP(g).Bytes()
	s.check(len(enc) == curve.EncodingSize, "encoding length")

	for _, n := range []int{0, curve.EncodingSize - 1, curve.EncodingSize + 1} {
		_, err := VP(new(P)).SetBytes(make([]byte, n))
		s.check(err != nil, "wrong length is rejected")
	}

	// x = 0 is not on the curve since b is a non-residue
	offCurve := make([]byte, curve.EncodingSize)
	offCurve[curve.EncodingSize-1] = 0x80
	_, err := VP(new(P)).SetBytes(offCurve)
	s.check(err != nil, "x = 0 with the sign bit is rejected")

	// x = 2^255 - 1 is not canonical in either field
	nonCanonical := bytes.Repeat([]byte{0xff}, curve.EncodingSize)
	nonCanonical[curve.EncodingSize-1] = 0x7f
	_, err = VP(new(P)).SetBytes(nonCanonical)
	s.check(err != nil, "non-canonical x is rejected")
}

func groupRound[P, S any, VP curve.CurvePoint[P, S], VS curve.Field[S]](s *suite, a, b, c, g, identity *P, k, m *S) {
	var l, r, t P

	s.check(same[P, VP](VP(&l).Add(a, identity), a), "a + O = a")
	s.check(same[P, VP](VP(&l).Add(identity, a), a), "O + a = a")
	VP(&l).Add(a, VP(&t).Negate(a))
	s.check(VP(&l).IsIdentity() == 1, "a + (-a) = O")
	s.check(same[P, VP](VP(&l).Add(a, b), VP(&r).Add(b, a)), "a + b = b + a")

	VP(&l).Add(VP(&l).Add(a, b), c)
	VP(&r).Add(a, VP(&r).Add(b, c))
	s.check(same[P, VP](&l, &r), "(a + b) + c = a + (b + c)")

	s.check(same[P, VP](VP(&l).Double(a), VP(&r).Add(a, a)), "dbl(a) = a + a")
	s.check(same[P, VP](VP(&l).Subtract(a, b), VP(&r).Add(a, VP(&t).Negate(b))), "a - b = a + (-b)")

	_, err := VP(&l).SetBytes(VP(a).Bytes())
	s.check(err == nil && same[P, VP](&l, a), "decode(encode(a)) = a")
	VP(&t).Add(a, b)
	_, err = VP(&l).SetBytes(VP(&t).Bytes())
	s.check(err == nil && same[P, VP](&l, &t), "a + b encodes to a point")

	s.check(same[P, VP](VP(&l).ScalarMult(k, g), VP(&r).ScalarBaseMult(k)), "k * G = base(k)")

	var sum, product S
	VS(&sum).Add(k, m)
	VP(&l).ScalarBaseMult(&sum)
	VP(&r).Add(VP(&r).ScalarBaseMult(k), VP(&t).ScalarBaseMult(m))
	s.check(same[P, VP](&l, &r), "(k + m) * G = k * G + m * G")

	VS(&product).Multiply(k, m)
	VP(&l).ScalarBaseMult(&product)
	VP(&r).ScalarMult(k, VP(&t).ScalarMult(m, g))
	s.check(same[P, VP](&l, &r), "(k * m) * G = k * (m * G)")

	VP(&l).ScalarMult(k, VP(&t).Add(a, b))
	VP(&r).Add(VP(&r).ScalarMult(k, a), VP(new(P)).ScalarMult(k, b))
	s.check(same[P, VP](&l, &r), "k * (a + b) = k * a + k * b")
}
