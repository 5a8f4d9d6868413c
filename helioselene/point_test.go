package helioselene

import (
	"testing"

	"git.gammaspectra.live/P2Pool/helioselene-contest/axioms"
	"git.gammaspectra.live/P2Pool/helioselene-contest/curve"
	"git.gammaspectra.live/P2Pool/helioselene-contest/entropy"
	"git.gammaspectra.live/P2Pool/helioselene-contest/reference"
	"github.com/stretchr/testify/require"
	fasthex "github.com/tmthrgd/go-hex"
)

var pointVectors = []struct {
	name             string
	g, g2, g7, k, kG string
}{
	{
		name: "Helios",
		g:    "0300000000000000000000000000000000000000000000000000000000000000",
		g2:   "262942408090b3c507b8ac94d46fc495fc129fb4d165372411d5e5ea008402f2",
		g7:   "03df58ab3f9099c34d76642b4c99e582e38cf47e1bee444c4817a481ba499826",
		k:    "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20",
		kG:   "fc5d24fc63a3719e047ea399bc98bbf3dc2ba3c4c441563b924cbb7d38fd643e",
	},
	{
		name: "Selene",
		g:    "0100000000000000000000000000000000000000000000000000000000000000",
		g2:   "9dc7277972d2b66e586b65b72c787fbfffffffffffffffffffffffffffffffff",
		g7:   "9930214df235941dba78b61cebf3812c69c0431828f9089e01695d8afd58be2f",
		k:    "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20",
		kG:   "f03e4fa4d4a8df1c8bdc505244fcb5b15ee1103a268a71fbbbdfc39de2027b58",
	},
}

func testPointVector[P, S any, VP curve.CurvePoint[P, S], VS curve.Field[S]](t *testing.T, g, g2, g7, kHex, kG string) {
	var gen, r P
	VP(&gen).Generator()

	encodes := func(expected string, p *P) {
		require.Equal(t, expected, fasthex.EncodeToString(VP(p).Bytes()))
		decoded, err := VP(new(P)).SetBytes(mustHex(t, expected))
		require.NoError(t, err)
		require.Equal(t, 1, VP(decoded).Equal(p))
	}

	encodes(g, &gen)
	encodes(g2, VP(&r).Double(&gen))
	encodes(g2, VP(&r).Add(&gen, &gen))

	var seven S
	VS(&seven).SetBytes(mustHex(t, "0700000000000000000000000000000000000000000000000000000000000000"))
	encodes(g7, VP(&r).ScalarMult(&seven, &gen))
	encodes(g7, VP(&r).ScalarBaseMult(&seven))

	k, err := VS(new(S)).SetBytes(mustHex(t, kHex))
	require.NoError(t, err)
	encodes(kG, VP(&r).ScalarBaseMult(k))
	encodes(kG, VP(&r).ScalarMult(k, &gen))
}

func TestPointVectors(t *testing.T) {
	for _, v := range pointVectors {
		t.Run(v.name, func(t *testing.T) {
			if v.name == "Helios" {
				testPointVector[HeliosPoint, HelioseleneField](t, v.g, v.g2, v.g7, v.k, v.kG)
			} else {
				testPointVector[SelenePoint, Field25519](t, v.g, v.g2, v.g7, v.k, v.kG)
			}
		})
	}
}

func TestProjectiveIdentity(t *testing.T) {
	var o, g, r HeliosPoint
	o.Identity()
	g.Generator()

	require.Equal(t, curve.IdentityEncoding[:], o.Bytes())
	require.Equal(t, 1, r.Add(&o, &o).IsIdentity())
	require.Equal(t, 1, r.Double(&o).IsIdentity())
	require.Equal(t, 1, r.Add(&g, &o).Equal(&g))
	require.Equal(t, 1, r.Subtract(&g, &g).IsIdentity())
	require.Equal(t, curve.IdentityEncoding[:], r.Bytes())
	require.Equal(t, 0, g.Equal(&o))

	var zero, minusOne HelioseleneField
	minusOne.Negate(minusOne.One())
	require.Equal(t, 1, r.ScalarMult(&zero, &g).IsIdentity())
	require.Equal(t, 1, r.ScalarBaseMult(&zero).IsIdentity())
	require.Equal(t, 1, r.ScalarBaseMult(&minusOne).Equal(new(HeliosPoint).Negate(&g)))
}

func TestZeroValueIsIdentity(t *testing.T) {
	var zero, o, g, r SelenePoint
	o.Identity()
	g.Generator()

	require.Equal(t, 1, zero.IsIdentity())
	require.Equal(t, curve.IdentityEncoding[:], zero.Bytes())
	require.Equal(t, 1, zero.Equal(&o))
	require.Equal(t, 1, o.Equal(&zero))
	require.Equal(t, 0, zero.Equal(&g))
	require.Equal(t, 0, g.Equal(&zero))

	require.Equal(t, 1, r.Add(&g, &zero).Equal(&g))
	require.Equal(t, 1, r.Add(&zero, &g).Equal(&g))
	require.Equal(t, 1, r.Subtract(&g, &zero).Equal(&g))
	require.Equal(t, 1, r.Subtract(&zero, &g).Equal(new(SelenePoint).Negate(&g)))
	require.Equal(t, 1, r.Add(&zero, &zero).IsIdentity())
	require.Equal(t, 1, r.Double(&zero).IsIdentity())
	require.Equal(t, 1, r.Negate(&zero).IsIdentity())

	var seven Field25519
	_, err := seven.SetBytes(mustHex(t, "0700000000000000000000000000000000000000000000000000000000000000"))
	require.NoError(t, err)
	require.Equal(t, 1, r.ScalarMult(&seven, &zero).IsIdentity())
	require.Equal(t, curve.IdentityEncoding[:], r.Bytes())

	// a zero value accumulator
	var acc SelenePoint
	for range 4 {
		acc.Add(&acc, &g)
	}
	var four Field25519
	four.Double(four.Double(four.One()))
	require.Equal(t, 1, acc.Equal(r.ScalarBaseMult(&four)))
}

// testPointsAgainstReference compares random points and scalars with the affine math/big implementation.
func testPointsAgainstReference[C, SC, R, SR any, VC curve.CurvePoint[C, SC], VSC curve.Field[SC], VR curve.CurvePoint[R, SR], VSR curve.Field[SR]](t *testing.T, rounds int) {
	r := entropy.NewSeeded(entropy.Seed{5})

	point := func() (*C, *R) {
		ref, err := VR(new(R)).Random(r)
		require.NoError(t, err)
		c, err := VC(new(C)).SetBytes(VR(ref).Bytes())
		require.NoError(t, err)
		return c, ref
	}

	for range rounds {
		a, aRef := point()
		b, bRef := point()
		sRef, err := VSR(new(SR)).Random(r)
		require.NoError(t, err)
		s, err := VSC(new(SC)).SetBytes(VSR(sRef).Bytes())
		require.NoError(t, err)

		var c C
		var ref R
		same := func(name string) {
			require.Equal(t, VR(&ref).Bytes(), VC(&c).Bytes(), name)
		}

		VR(&ref).Add(aRef, bRef)
		VC(&c).Add(a, b)
		same("add")
		VR(&ref).Subtract(aRef, bRef)
		VC(&c).Subtract(a, b)
		same("sub")
		VR(&ref).Double(aRef)
		VC(&c).Double(a)
		same("dbl")
		VR(&ref).Negate(aRef)
		VC(&c).Negate(a)
		same("neg")
		VR(&ref).ScalarMult(sRef, aRef)
		VC(&c).ScalarMult(s, a)
		same("mul")
		VR(&ref).ScalarBaseMult(sRef)
		VC(&c).ScalarBaseMult(s)
		same("mul-base")
	}
}

func TestHeliosAgainstReference(t *testing.T) {
	rounds := 20
	if testing.Short() {
		rounds = 4
	}
	testPointsAgainstReference[HeliosPoint, HelioseleneField, reference.HeliosPoint, reference.HelioseleneField](t, rounds)
}

func TestSeleneAgainstReference(t *testing.T) {
	rounds := 20
	if testing.Short() {
		rounds = 4
	}
	testPointsAgainstReference[SelenePoint, Field25519, reference.SelenePoint, reference.Field25519](t, rounds)
}

func TestAxioms(t *testing.T) {
	r := entropy.NewSeeded(entropy.Seed{6})

	require.NoError(t, axioms.Field[Field25519](r, "field25519"))
	require.NoError(t, axioms.Field[HelioseleneField](r, "helioselene-field"))
	require.NoError(t, axioms.Group[HeliosPoint, HelioseleneField](r, "helios-point"))
	require.NoError(t, axioms.Group[SelenePoint, Field25519](r, "selene-point"))
}

func BenchmarkHeliosPoint(b *testing.B) {
	r := entropy.NewSeeded(entropy.Seed{7})
	var p, q, out HeliosPoint
	var s HelioseleneField
	_, _ = p.Random(r)
	_, _ = q.Random(r)
	_, _ = s.Random(r)

	b.Run("Add", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			out.Add(&p, &q)
		}
	})
	b.Run("Double", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			out.Double(&p)
		}
	})
	b.Run("ScalarMult", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			out.ScalarMult(&s, &p)
		}
	})
	b.Run("ScalarBaseMult", func(b *testing.B) {
		out.ScalarBaseMult(&s)
		b.ResetTimer()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			out.ScalarBaseMult(&s)
		}
	})
}
