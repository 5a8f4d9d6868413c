package helioselene

import "git.gammaspectra.live/P2Pool/helioselene-contest/curve"

// pow sets v = x^e, where e is a little-endian integer, using a fixed 4-bit window.
func pow[F any, VF curve.Field[F]](v, x *F, e []byte) *F {
	var table [16]F
	VF(&table[0]).One()
	VF(&table[1]).Set(x)
	for i := 2; i < len(table); i++ {
		VF(&table[i]).Multiply(&table[i-1], x)
	}

	var acc, entry F
	VF(&acc).One()
	for i := len(e) - 1; i >= 0; i-- {
		for _, nibble := range [2]byte{e[i] >> 4, e[i] & 0x0f} {
			for range 4 {
				VF(&acc).Square(&acc)
			}
			for j := range table {
				VF(&entry).Select(&table[j], &entry, eq(j, int(nibble)))
			}
			VF(&acc).Multiply(&acc, &entry)
		}
	}
	return VF(v).Set(&acc)
}

// eq returns 1 if a == b and 0 otherwise, without branching.
func eq(a, b int) int {
	x := uint64(a ^ b)
	return int(((x | -x) >> 63) ^ 1)
}
