package curve

import "io"

type Point[P any] interface {
	*P

	// Operations

	Add(*P, *P) *P
	Subtract(*P, *P) *P
	Double(*P) *P
	Negate(*P) *P

	// Marshaling

	SetBytes([]byte) (*P, error)
	Bytes() []byte
	Random(io.Reader) (*P, error)

	// Setters

	Set(*P) *P
	Identity() *P

	// Comparison

	IsIdentity() int
	Equal(*P) int
}

type CurvePoint[P any, S any] interface {
	Point[P]

	Generator() *P

	// Multiplication operations

	ScalarBaseMult(*S) *P
	ScalarMult(*S, *P) *P
}

// IdentityEncoding is the compressed encoding of the point at infinity.
var IdentityEncoding [EncodingSize]byte
