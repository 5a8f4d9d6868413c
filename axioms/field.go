package axioms

import (
	"bytes"
	"errors"
	"io"

	"git.gammaspectra.live/P2Pool/helioselene-contest/curve"
)

func equal[F any, VF curve.Field[F]](a, b *F) bool {
	return VF(a).Equal(b) == 1
}

// Field checks the field axioms and the encoding rules of F.
func Field[F any, VF curve.Field[F]](r io.Reader, name string) error {
	s := &suite{name: name}

	var zero, one, minusOne, two, half F
	VF(&zero).Zero()
	VF(&one).One()
	VF(&minusOne).Negate(&one)
	VF(&two).Double(&one)
	if _, err := VF(&half).Invert(&two); err != nil {
		s.fail(err, "invert two")
		return s.err
	}
	// (m-1)/2 as an integer is the field element -1/2
	var euler F
	VF(&euler).Multiply(&minusOne, &half)

	fieldEncoding[F, VF](s, &minusOne)

	{
		_, err := VF(new(F)).Invert(&zero)
		s.check(errors.Is(err, curve.ErrZeroInverse), "inversion of zero fails")
	}
	s.check(curve.IsZero[F, VF](&zero), "zero is zero")
	s.check(!curve.IsZero[F, VF](&one), "one is not zero")
	s.check(VF(&zero).IsEven() == 1 && VF(&one).IsOdd() == 1, "parity of small values")

	for range Rounds {
		var x, y, z F
		for _, v := range []*F{&x, &y, &z} {
			if _, err := VF(v).Random(r); err != nil {
				s.fail(err, "random")
				return s.err
			}
		}
		fieldRound[F, VF](s, &x, &y, &z, &one, &euler)
		if s.err != nil {
			return s.err
		}
	}

	batchInvert[F, VF](s, r)
	return s.err
}

func fieldEncoding[F any, VF curve.Field[F]](s *suite, minusOne *F) {
	enc := VF(minusOne).Bytes()
	s.check(len(enc) == curve.EncodingSize, "encoding length")
	if len(enc) != curve.EncodingSize {
		return
	}
	s.check(enc[31]&0x40 != 0 && enc[31]&0x80 == 0, "encoding of -1 has bit 254 set and bit 255 clear")

	// enc + 1 is the modulus itself
	modulus := bytes.Clone(enc)
	for i := range modulus {
		modulus[i]++
		if modulus[i] != 0 {
			break
		}
	}
	_, err := VF(new(F)).SetBytes(modulus)
	s.check(err != nil, "modulus is rejected")

	topBit := make([]byte, curve.EncodingSize)
	topBit[0] = 1
	topBit[31] = 0x80
	_, err = VF(new(F)).SetBytes(topBit)
	s.check(err != nil, "top bit is rejected")

	for _, n := range []int{0, curve.EncodingSize - 1, curve.EncodingSize + 1} {
		_, err = VF(new(F)).SetBytes(make([]byte, n))
		s.check(err != nil, "wrong length is rejected")
	}
}

func fieldRound[F any, VF curve.Field[F]](s *suite, x, y, z, one, euler *F) {
	var l, r, t F

	// identities
	VF(&t).Zero()
	s.check(equal[F, VF](VF(&l).Add(x, &t), x), "x + 0 = x")
	s.check(equal[F, VF](VF(&l).Multiply(x, one), x), "x * 1 = x")
	s.check(curve.IsZero[F, VF](VF(&l).Multiply(x, &t)), "x * 0 = 0")

	// commutativity
	s.check(equal[F, VF](VF(&l).Add(x, y), VF(&r).Add(y, x)), "x + y = y + x")
	s.check(equal[F, VF](VF(&l).Multiply(x, y), VF(&r).Multiply(y, x)), "x * y = y * x")

	// associativity
	VF(&l).Add(VF(&l).Add(x, y), z)
	VF(&r).Add(x, VF(&r).Add(y, z))
	s.check(equal[F, VF](&l, &r), "(x + y) + z = x + (y + z)")
	VF(&l).Multiply(VF(&l).Multiply(x, y), z)
	VF(&r).Multiply(x, VF(&r).Multiply(y, z))
	s.check(equal[F, VF](&l, &r), "(x * y) * z = x * (y * z)")

	// distributivity
	VF(&l).Multiply(x, VF(&l).Add(y, z))
	VF(&r).Add(VF(&r).Multiply(x, y), VF(&t).Multiply(x, z))
	s.check(equal[F, VF](&l, &r), "x * (y + z) = x * y + x * z")

	// derived operations
	s.check(curve.IsZero[F, VF](VF(&l).Add(x, VF(&t).Negate(x))), "x + (-x) = 0")
	s.check(equal[F, VF](VF(&l).Subtract(x, y), VF(&r).Add(x, VF(&t).Negate(y))), "x - y = x + (-y)")
	s.check(equal[F, VF](VF(&l).Double(x), VF(&r).Add(x, x)), "dbl(x) = x + x")
	s.check(equal[F, VF](VF(&l).Square(x), VF(&r).Multiply(x, x)), "sq(x) = x * x")

	// inversion
	if !curve.IsZero[F, VF](x) {
		_, err := VF(&t).Invert(x)
		s.fail(err, "invert")
		s.check(err == nil && equal[F, VF](VF(&l).Multiply(x, &t), one), "x * inv(x) = 1")
	}

	// square roots
	var root F
	VF(&t).Square(x)
	_, err := VF(&root).Sqrt(&t)
	s.fail(err, "sqrt of a square")
	if err == nil {
		s.check(VF(&root).IsEven() == 1, "sqrt is even")
		s.check(equal[F, VF](VF(&l).Square(&root), &t), "sqrt(x^2)^2 = x^2")
	}
	if !curve.IsZero[F, VF](x) {
		VF(&l).Pow(x, euler)
		residue := equal[F, VF](&l, one)
		_, err = VF(&root).Sqrt(x)
		s.check(residue == (err == nil), "euler criterion agrees with sqrt")
		s.check(residue || errors.Is(err, curve.ErrNonResidue), "sqrt of a non-residue fails with ErrNonResidue")
	}

	// parity
	s.check(VF(x).IsOdd() != VF(x).IsEven(), "exactly one of is-odd and is-even")
	if !curve.IsZero[F, VF](x) {
		VF(&t).Negate(x)
		s.check(VF(x).IsOdd() != VF(&t).IsOdd(), "negation flips parity")
	}

	// pow
	VF(&t).Zero()
	s.check(equal[F, VF](VF(&l).Pow(x, &t), one), "x^0 = 1")
	s.check(equal[F, VF](VF(&l).Pow(x, one), x), "x^1 = x")
	VF(&t).Double(one)
	s.check(equal[F, VF](VF(&l).Pow(x, &t), VF(&r).Square(x)), "x^2 = sq(x)")

	// encoding
	_, err = VF(&l).SetBytes(VF(x).Bytes())
	s.check(err == nil && equal[F, VF](&l, x), "decode(encode(x)) = x")
}

func batchInvert[F any, VF curve.Field[F]](s *suite, r io.Reader) {
	values := make([]F, 8)
	expected := make([]F, len(values))
	for i := range values {
		if i == 3 {
			VF(&values[i]).Zero()
			continue
		}
		if _, err := VF(&values[i]).Random(r); err != nil {
			s.fail(err, "random")
			return
		}
		if _, err := VF(&expected[i]).Invert(&values[i]); err != nil {
			s.fail(err, "invert")
			return
		}
	}

	inputs := make([]*F, len(values))
	for i := range values {
		inputs[i] = &values[i]
	}
	var product F
	curve.BatchInvert[F, VF](&product, inputs...)

	for i := range values {
		s.check(equal[F, VF](&values[i], &expected[i]), "batch inversion agrees with inversion")
	}
}
