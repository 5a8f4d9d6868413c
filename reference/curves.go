package reference

import "git.gammaspectra.live/P2Pool/helioselene-contest/curve"

func mustElement[M Modulus](decimal string) *Element[M] {
	return new(Element[M]).setBigInt(mustDecimal(decimal))
}

var (
	heliosB, heliosGX, heliosGY *Element[field25519]
	seleneB, seleneGX, seleneGY *Element[fieldHelioselene]
)

// moduli must be set before any element is reduced
func init() {
	heliosB = mustElement[field25519]("15789920373731020205926570676277057129217619222203920395806844808978996083412")
	heliosGX = mustElement[field25519]("3")
	heliosGY = mustElement[field25519]("37760095087190773158272406437720879471285821656958791565335581949097084993268")

	seleneB = mustElement[fieldHelioselene]("50691664119640283727448954162351551669994268339720539671652090628799494505816")
	seleneGX = mustElement[fieldHelioselene]("1")
	seleneGY = mustElement[fieldHelioselene]("55227837453588766352929163364143300868577356225733378474337919561890377498066")
}

type helios struct{}

func (helios) b() *Element[field25519] { return heliosB }

func (helios) generator() (x, y *Element[field25519]) { return heliosGX, heliosGY }

type selene struct{}

func (selene) b() *Element[fieldHelioselene] { return seleneB }

func (selene) generator() (x, y *Element[fieldHelioselene]) { return seleneGX, seleneGY }

// HeliosPoint is a point on Helios: over Field25519, scalars in HelioseleneField.
type HeliosPoint = Point[field25519, fieldHelioselene, helios]

// SelenePoint is a point on Selene: over HelioseleneField, scalars in Field25519.
type SelenePoint = Point[fieldHelioselene, field25519, selene]

var (
	_ = checkCurvePoint[HeliosPoint, HelioseleneField, *HeliosPoint]
	_ = checkCurvePoint[SelenePoint, Field25519, *SelenePoint]
)

func checkCurvePoint[P, S any, VP curve.CurvePoint[P, S]]() {}
