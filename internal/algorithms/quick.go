package algorithms

// Quick is quicksort with a Lomuto partition around the last element.
func Quick(in Instrument) error {
	if err := quickSort(in, 0, in.Len()-1); err != nil {
		return err
	}
	return in.MarkAllSorted()
}

func quickSort(in Instrument, low, high int) error {
	if low >= high {
		return nil
	}
	p, err := partition(in, low, high)
	if err != nil {
		return err
	}
	if err := quickSort(in, low, p-1); err != nil {
		return err
	}
	return quickSort(in, p+1, high)
}

// partition leaves a[high] untouched until the final pivot swap, so every
// Compare(j, high) is against the pivot. Swaps are emitted even when i == j.
func partition(in Instrument, low, high int) (int, error) {
	i := low - 1
	for j := low; j < high; j++ {
		c, err := in.Compare(j, high)
		if err != nil {
			return 0, err
		}
		if c < 0 {
			i++
			if err := in.Swap(i, j); err != nil {
				return 0, err
			}
		}
	}
	if err := in.Swap(i+1, high); err != nil {
		return 0, err
	}
	return i + 1, nil
}
