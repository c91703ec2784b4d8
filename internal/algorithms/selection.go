package algorithms

// Selection scans the unsorted suffix for its minimum and swaps it into place.
func Selection(in Instrument) error {
	n := in.Len()
	for i := 0; i < n-1; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			c, err := in.Compare(minIdx, j)
			if err != nil {
				return err
			}
			if c > 0 {
				minIdx = j
			}
		}
		if minIdx != i {
			if err := in.Swap(i, minIdx); err != nil {
				return err
			}
		}
	}
	return in.MarkAllSorted()
}
