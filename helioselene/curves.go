package helioselene

import (
	"git.gammaspectra.live/P2Pool/helioselene-contest/curve"
	fasthex "github.com/tmthrgd/go-hex"
)

func mustDecode[F any, VF curve.Field[F]](s string) *F {
	buf, err := fasthex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	v, err := VF(new(F)).SetBytes(buf)
	if err != nil {
		panic(err)
	}
	return v
}

var (
	heliosB, heliosGX, heliosGY *Field25519
	seleneB, seleneGX, seleneGY *HelioseleneField

	heliosTables, seleneTables baseTables
)

func init() {
	heliosB = mustDecode[Field25519]("d43ad7ede19eb42235bf1341386f3f043b7bbb3e6ba794beb870eab039c7e822")
	heliosGX = mustDecode[Field25519]("0300000000000000000000000000000000000000000000000000000000000000")
	heliosGY = mustDecode[Field25519]("f43e18e339e643d2dca586c5dd3b0059075f2050836692bd1c72c07ad9747b53")

	seleneB = mustDecode[HelioseleneField]("58455acb8309de680e90ae06df4b94f379e2ff95a5bb517fc176586913771270")
	seleneGX = mustDecode[HelioseleneField]("0100000000000000000000000000000000000000000000000000000000000000")
	seleneGY = mustDecode[HelioseleneField]("d2fdd3a1a60a1e74379bf0c898b18b935f825c457731c95792ca5cb827d9197a")
}

type helios struct{}

func (helios) b() *Field25519 { return heliosB }

func (helios) generator() (x, y *Field25519) { return heliosGX, heliosGY }

func (helios) tables() *baseTables { return &heliosTables }

type selene struct{}

func (selene) b() *HelioseleneField { return seleneB }

func (selene) generator() (x, y *HelioseleneField) { return seleneGX, seleneGY }

func (selene) tables() *baseTables { return &seleneTables }

// HeliosPoint is a point on Helios: over Field25519, scalars in HelioseleneField.
type HeliosPoint = Point[Field25519, HelioseleneField, *Field25519, *HelioseleneField, helios]

// SelenePoint is a point on Selene: over HelioseleneField, scalars in Field25519.
type SelenePoint = Point[HelioseleneField, Field25519, *HelioseleneField, *Field25519, selene]

var (
	_ = curve.IsZero[Field25519, *Field25519]
	_ = curve.IsZero[HelioseleneField, *HelioseleneField]
	_ = checkCurvePoint[HeliosPoint, HelioseleneField, *HeliosPoint]
	_ = checkCurvePoint[SelenePoint, Field25519, *SelenePoint]
)

func checkCurvePoint[P, S any, VP curve.CurvePoint[P, S]]() {}
