package algorithms

// Heap builds a max-heap, then repeatedly moves the root behind the shrinking
// heap boundary and marks that slot final. The last extraction swaps the
// root with itself and marks slot 0.
func Heap(in Instrument) error {
	n := in.Len()
	for i := n/2 - 1; i >= 0; i-- {
		if err := siftDown(in, n, i); err != nil {
			return err
		}
	}
	for end := n - 1; end >= 0; end-- {
		if err := in.Swap(0, end); err != nil {
			return err
		}
		if err := siftDown(in, end, 0); err != nil {
			return err
		}
		if err := in.MarkSorted(end); err != nil {
			return err
		}
	}
	return in.MarkAllSorted()
}

// siftDown restores the heap property below i within the first n slots.
func siftDown(in Instrument, n, i int) error {
	for {
		largest := i
		for _, child := range [2]int{2*i + 1, 2*i + 2} {
			if child >= n {
				continue
			}
			c, err := in.Compare(child, largest)
			if err != nil {
				return err
			}
			if c > 0 {
				largest = child
			}
		}
		if largest == i {
			return nil
		}
		if err := in.Swap(i, largest); err != nil {
			return err
		}
		i = largest
	}
}
