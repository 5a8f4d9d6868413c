// Package helioselene implements the Helios/Selene curve cycle.
//
// Helios is y^2 = x^3 - 3x + b over GF(2^255 - 19) and has prime order q.
// Selene is y^2 = x^3 - 3x + b over GF(q) and has prime order 2^255 - 19.
// Each curve's scalar field is the other's base field.
//
// Field25519 uses the 51-bit limb arithmetic of edwards25519/field.
// HelioseleneField uses 4x64-bit limbs in Montgomery form. Points are kept in
// projective coordinates and use the complete a = -3 formulas of
// Renes, Costello and Batina (2016), so no operation branches on its input.
//
// Encodings are 32 bytes. Field elements are little-endian and fully reduced.
// Points store x little-endian with the parity of y in the top bit; the
// identity is 32 zero bytes.
package helioselene
