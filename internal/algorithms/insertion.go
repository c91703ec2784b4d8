package algorithms

// Insertion shifts larger predecessors right one slot at a time and drops the
// key into the gap. Shifts are single-sided overwrites, not swaps.
func Insertion(in Instrument) error {
	n := in.Len()
	for i := 1; i < n; i++ {
		key := in.At(i)
		j := i - 1
		for j >= 0 {
			c, err := in.CompareHeld(j, j+1, in.At(j), key)
			if err != nil {
				return err
			}
			if c <= 0 {
				break
			}
			if err := in.Overwrite(j+1, in.At(j)); err != nil {
				return err
			}
			j--
		}
		if err := in.Overwrite(j+1, key); err != nil {
			return err
		}
	}
	return in.MarkAllSorted()
}
