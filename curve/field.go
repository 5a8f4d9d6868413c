package curve

import (
	"errors"
	"io"
)

var (
	ErrZeroInverse   = errors.New("inverse of zero")
	ErrNonResidue    = errors.New("element is not a quadratic residue")
	ErrNonCanonical  = errors.New("non-canonical encoding")
	ErrInvalidLength = errors.New("invalid encoding length")
	ErrNotOnCurve    = errors.New("encoding is not a point on the curve")
)

// EncodingSize is the length of every canonical field and point encoding.
const EncodingSize = 32

// Field is the capability set of a prime field element implementation.
//
// All setters assign to the receiver and return it. Encodings are 32 bytes,
// little-endian and fully reduced; SetBytes rejects anything else.
type Field[F any] interface {
	*F

	// Operations

	Add(*F, *F) *F
	Subtract(*F, *F) *F
	Multiply(*F, *F) *F
	Square(*F) *F
	Double(*F) *F
	Negate(*F) *F
	// Invert returns ErrZeroInverse for zero, leaving the receiver untouched.
	Invert(*F) (*F, error)
	// Sqrt returns the even square root, or ErrNonResidue.
	Sqrt(*F) (*F, error)
	// Pow interprets the canonical encoding of the exponent as an integer.
	Pow(*F, *F) *F

	// Marshaling

	SetBytes([]byte) (*F, error)
	Bytes() []byte
	Random(io.Reader) (*F, error)

	// Setters

	Set(*F) *F
	Select(*F, *F, int) *F
	Zero() *F
	One() *F

	// Comparison

	IsOdd() int
	IsEven() int
	Equal(*F) int
}

// IsZero reports whether x is the additive identity.
func IsZero[F any, VF Field[F]](x *F) bool {
	var zero F
	return VF(x).Equal(VF(&zero).Zero()) == 1
}
