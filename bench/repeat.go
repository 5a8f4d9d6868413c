package bench

// Repeat runs op n times, stopping at the first error.
func Repeat(n int, op func() error) error {
	for range n {
		if err := op(); err != nil {
			return err
		}
	}
	return nil
}
