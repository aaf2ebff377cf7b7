// SPDX-License-Identifier: MIT

package mp

// Select returns the k-th smallest element (0-based) of x, partially
// reordering x in place. It panics if k is out of range.
//
// Hoare quickselect with median-of-three pivots; expected O(len(x)).
func Select(x []float64, k int) float64 {
	if k < 0 || k >= len(x) {
		panic("mp: Select index out of range")
	}
	lo, hi := 0, len(x)-1
	for lo < hi {
		mid := lo + (hi-lo)/2
		// order x[lo] <= x[mid] <= x[hi]
		if x[mid] < x[lo] {
			x[mid], x[lo] = x[lo], x[mid]
		}
		if x[hi] < x[lo] {
			x[hi], x[lo] = x[lo], x[hi]
		}
		if x[hi] < x[mid] {
			x[hi], x[mid] = x[mid], x[hi]
		}
		pivot := x[mid]

		i, j := lo, hi
		for i <= j {
			for x[i] < pivot {
				i++
			}
			for x[j] > pivot {
				j--
			}
			if i <= j {
				x[i], x[j] = x[j], x[i]
				i++
				j--
			}
		}
		switch {
		case k <= j:
			hi = j
		case k >= i:
			lo = i
		default:
			return x[k]
		}
	}

	return x[k]
}
