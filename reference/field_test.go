package reference

import (
	"errors"
	"testing"

	"git.gammaspectra.live/P2Pool/helioselene-contest/curve"
	fasthex "github.com/tmthrgd/go-hex"
)

type fieldVector struct {
	a, b                                         string
	add, mul, sub, sq, dbl, inv, sqrt, pow, neg string
	odd                                          int
}

var field25519Vector = fieldVector{
	a:    "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20",
	b:    "7765666768696a6b6c6d6e6f707172737475767778797a7b7c7d7e7f80818203",
	add:  "7867696b6d6f71737577797b7d7f81838587898b8d8f91939597999b9d9fa123",
	mul:  "c38300c7b19b5fd8e0530ce5b862bda3f07e29cb3e5f07125aba0d2ff946f358",
	sub:  "8a9c9c9c9c9c9c9c9c9c9c9c9c9c9c9c9c9c9c9c9c9c9c9c9c9c9c9c9c9c9c1c",
	sq:   "4bf177a55460a3f83a45f21ca0561bc93a4bd5b3c1d9d693ebb8d61f6f9f8b0e",
	dbl:  "020406080a0c0e10121416181a1c1e20222426282a2c2e30323436383a3c3e40",
	inv:  "e5faf5a435158b4cc68d583058fece071d8b8d20ed6abf17651a73c28fec414d",
	sqrt: "ecfdfcfbfaf9f8f7f6f5f4f3f2f1f0efeeedecebeae9e8e7e6e5e4e3e2e1e05f",
	pow:  "2dfcd39c93a59465e087093983c4e8a4e0e08bd98bffc7e494ae878d64dd3373",
	neg:  "ecfdfcfbfaf9f8f7f6f5f4f3f2f1f0efeeedecebeae9e8e7e6e5e4e3e2e1e05f",
	odd:  1,
}

var helioseleneVector = fieldVector{
	a:    "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20",
	b:    "c59d3eeef596b3fc130209b843f9f2b37475767778797a7b7c7d7e7f80818203",
	add:  "c69f41f2fa9cba041d0c14c4500702c48587898b8d8f91939597999b9d9fa123",
	mul:  "9833ba8a7b0b2bd9794beda34dc2baf2ae118773bfbfc617ca98e8248f345b73",
	sub:  "3c64c4150f6f530bf5070254c9141c5c9c9c9c9c9c9c9c9c9c9c9c9c9c9c9c1c",
	sq:   "1def098ed88962cdf21195d9ff80fa2a7a6b9f366fad37ffa8c7f1e715392d61",
	dbl:  "020406080a0c0e10121416181a1c1e20222426282a2c2e30323436383a3c3e40",
	inv:  "2d9ec67e6b1310f99aeb729a319d5d1eea786933263f9e5d85c1c18e2e75e103",
	sqrt: "9ec524756dccaf664f615aab1f6a70afeeedecebeae9e8e7e6e5e4e3e2e1e05f",
	pow:  "f06f12e318c53b464f1cdf55a121ce2b2dcbd6bd3c36859d33f56a77be498e0b",
	neg:  "9ec524756dccaf664f615aab1f6a70afeeedecebeae9e8e7e6e5e4e3e2e1e05f",
	odd:  1,
}

func mustHex(t testing.TB, s string) []byte {
	t.Helper()
	buf, err := fasthex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func testVector[F any, VF curve.Field[F]](t *testing.T, v fieldVector) {
	decode := func(s string) *F {
		x, err := VF(new(F)).SetBytes(mustHex(t, s))
		if err != nil {
			t.Fatalf("decode %s: %s", s, err)
		}
		return x
	}
	a, b := decode(v.a), decode(v.b)

	results := []struct {
		name     string
		expected string
		op       func(out *F) (*F, error)
	}{
		{"add", v.add, func(out *F) (*F, error) { return VF(out).Add(a, b), nil }},
		{"mul", v.mul, func(out *F) (*F, error) { return VF(out).Multiply(a, b), nil }},
		{"sub", v.sub, func(out *F) (*F, error) { return VF(out).Subtract(a, b), nil }},
		{"sq", v.sq, func(out *F) (*F, error) { return VF(out).Square(a), nil }},
		{"dbl", v.dbl, func(out *F) (*F, error) { return VF(out).Double(a), nil }},
		{"inv", v.inv, func(out *F) (*F, error) { return VF(out).Invert(a) }},
		{"sqrt", v.sqrt, func(out *F) (*F, error) { return VF(out).Sqrt(VF(new(F)).Square(a)) }},
		{"pow", v.pow, func(out *F) (*F, error) { return VF(out).Pow(a, b), nil }},
		{"neg", v.neg, func(out *F) (*F, error) { return VF(out).Negate(a), nil }},
	}
	for _, r := range results {
		t.Run(r.name, func(t *testing.T) {
			out, err := r.op(new(F))
			if err != nil {
				t.Fatal(err)
			}
			if got := fasthex.EncodeToString(VF(out).Bytes()); got != r.expected {
				t.Errorf("expected %s, got %s", r.expected, got)
			}
		})
	}

	if VF(a).IsOdd() != v.odd || VF(a).IsEven() != 1-v.odd {
		t.Errorf("wrong parity")
	}
}

func TestField25519Vector(t *testing.T) {
	testVector[Field25519](t, field25519Vector)
}

func TestHelioseleneFieldVector(t *testing.T) {
	testVector[HelioseleneField](t, helioseleneVector)
}

func TestFieldErrors(t *testing.T) {
	var zero, two, minusOne Field25519
	two.One()
	two.Double(&two)
	minusOne.Negate(minusOne.One())

	if _, err := new(Field25519).Invert(&zero); !errors.Is(err, curve.ErrZeroInverse) {
		t.Errorf("expected ErrZeroInverse, got %v", err)
	}
	// 2 is a non-residue since p = 5 mod 8
	if _, err := new(Field25519).Sqrt(&two); !errors.Is(err, curve.ErrNonResidue) {
		t.Errorf("expected ErrNonResidue, got %v", err)
	}

	// -1 is a non-residue since q = 3 mod 4
	var minusOneQ HelioseleneField
	minusOneQ.Negate(minusOneQ.One())
	if _, err := new(HelioseleneField).Sqrt(&minusOneQ); !errors.Is(err, curve.ErrNonResidue) {
		t.Errorf("expected ErrNonResidue, got %v", err)
	}

	for _, s := range []string{
		// p
		"edffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f",
		// top bit
		"0100000000000000000000000000000000000000000000000000000000000080",
	} {
		if _, err := new(Field25519).SetBytes(mustHex(t, s)); !errors.Is(err, curve.ErrNonCanonical) {
			t.Errorf("%s: expected ErrNonCanonical, got %v", s, err)
		}
	}
	if _, err := new(Field25519).SetBytes(make([]byte, 31)); !errors.Is(err, curve.ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength, got %v", err)
	}

	if got := fasthex.EncodeToString(minusOne.Bytes()); got != "ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f" {
		t.Errorf("wrong encoding of -1: %s", got)
	}
}
