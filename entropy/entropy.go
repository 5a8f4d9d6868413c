// Package entropy provides the randomness every sample is drawn from: either the
// operating system source, or a deterministic SHAKE256 stream keyed by a logged seed
// so a failing run can be replayed.
package entropy

import (
	"crypto/rand"
	"io"

	"git.gammaspectra.live/P2Pool/helioselene-contest/types"
	"golang.org/x/crypto/sha3"
)

// Seed keys a deterministic stream.
type Seed = types.Hash

const domain = "helioselene-contest entropy v1"

// System returns the operating system randomness source.
func System() io.Reader {
	return rand.Reader
}

// NewSeed draws a fresh seed from the system source.
func NewSeed() (seed Seed, err error) {
	_, err = io.ReadFull(rand.Reader, seed[:])
	return seed, err
}

// ParseSeed decodes a hex seed as printed by Seed.String.
func ParseSeed(s string) (Seed, error) {
	return types.HashFromString(s)
}

// NewSeeded returns the SHAKE256(domain || seed) stream. Equal seeds produce equal streams.
func NewSeeded(seed Seed) io.Reader {
	h := sha3.NewShake256()
	_, _ = h.Write([]byte(domain))
	_, _ = h.Write(seed[:])
	return h
}
