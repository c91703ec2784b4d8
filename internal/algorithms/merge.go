package algorithms

// Merge is a top-down merge sort followed by a MarkAllSorted sweep.
func Merge(in Instrument) error {
	if err := mergeSort(in, 0, in.Len()-1); err != nil {
		return err
	}
	return in.MarkAllSorted()
}

func mergeSort(in Instrument, left, right int) error {
	if left >= right {
		return nil
	}
	mid := left + (right-left)/2
	if err := mergeSort(in, left, mid); err != nil {
		return err
	}
	if err := mergeSort(in, mid+1, right); err != nil {
		return err
	}
	return merge(in, left, mid, right)
}

// merge combines [l, m] and [m+1, r]. Compare events name the slots the two
// candidates started in; ties take the left run so the sort stays stable.
func merge(in Instrument, l, m, r int) error {
	lhs := make([]int, m-l+1)
	rhs := make([]int, r-m)
	for i := range lhs {
		lhs[i] = in.At(l + i)
	}
	for j := range rhs {
		rhs[j] = in.At(m + 1 + j)
	}

	i, j, k := 0, 0, l
	for i < len(lhs) && j < len(rhs) {
		c, err := in.CompareHeld(l+i, m+1+j, lhs[i], rhs[j])
		if err != nil {
			return err
		}
		v := rhs[j]
		if c <= 0 {
			v = lhs[i]
			i++
		} else {
			j++
		}
		if err := in.Overwrite(k, v); err != nil {
			return err
		}
		k++
	}
	for ; i < len(lhs); i++ {
		if err := in.Overwrite(k, lhs[i]); err != nil {
			return err
		}
		k++
	}
	for ; j < len(rhs); j++ {
		if err := in.Overwrite(k, rhs[j]); err != nil {
			return err
		}
		k++
	}
	return nil
}
