package algorithms

// Bubble compares adjacent pairs, shrinking each pass by one.
// A pass without swaps ends the sort early.
func Bubble(in Instrument) error {
	n := in.Len()
	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-1-i; j++ {
			c, err := in.Compare(j, j+1)
			if err != nil {
				return err
			}
			if c > 0 {
				if err := in.Swap(j, j+1); err != nil {
					return err
				}
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
	return in.MarkAllSorted()
}
