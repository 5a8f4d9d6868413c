package utils

import "fmt"

func SiUnits(number float64, decimals int) string {
	if number >= 1000000000000 {
		return fmt.Sprintf("%.*f T", decimals, number/1000000000000)
	} else if number >= 1000000000 {
		return fmt.Sprintf("%.*f G", decimals, number/1000000000)
	} else if number >= 1000000 {
		return fmt.Sprintf("%.*f M", decimals, number/1000000)
	} else if number >= 1000 {
		return fmt.Sprintf("%.*f K", decimals, number/1000)
	}

	return fmt.Sprintf("%.*f ", decimals, number)
}

// DurationUnits formats a nanosecond count with the closest time unit.
func DurationUnits(ns float64, decimals int) string {
	if ns >= 1000000000 {
		return fmt.Sprintf("%.*f s", decimals, ns/1000000000)
	} else if ns >= 1000000 {
		return fmt.Sprintf("%.*f ms", decimals, ns/1000000)
	} else if ns >= 1000 {
		return fmt.Sprintf("%.*f µs", decimals, ns/1000)
	}

	return fmt.Sprintf("%.*f ns", decimals, ns)
}
