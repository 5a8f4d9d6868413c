package curve

// BatchInvert Sets v to inv(product(inputs...)), sets each input element to its inverse
// If any input element is zero, it is unchanged
func BatchInvert[F any, VF Field[F]](v *F, inputs ...*F) *F {
	// Montgomery’s Trick and Fast Implementation of Masked AES
	// Genelle, Prouff and Quisquater
	// Section 3.2

	var acc, product, tmp, zero F
	VF(&zero).Zero()

	scratch := make([]F, 0, len(inputs))

	// Keep an accumulator of all of the previous products
	VF(&acc).One()

	// Pass through the input vector, recording the previous
	// products in the scratch space
	for _, p := range inputs {
		scratch = append(scratch, acc)
		// acc <- acc * input, but skipping zeros
		VF(&acc).Select(&acc, VF(&product).Multiply(&acc, p), VF(p).Equal(&zero))
	}

	// acc is nonzero because we skipped zeros in inputs
	if _, err := VF(&acc).Invert(&acc); err != nil {
		panic(err)
	}
	VF(v).Set(&acc)

	// Pass through the vector backwards to compute the inverses in place
	for i := len(inputs) - 1; i >= 0; i-- {
		p := inputs[i]

		// input <- acc * scratch, then acc <- acc * input
		VF(&tmp).Multiply(&scratch[i], &acc)

		skip := VF(p).Equal(&zero)

		VF(&acc).Select(&acc, VF(&product).Multiply(&acc, p), skip)
		VF(p).Select(p, &tmp, skip)
	}

	return v
}
