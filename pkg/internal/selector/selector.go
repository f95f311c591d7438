// Package selector finds order statistics in place.
//
// Both entry points run the same shrinking-window partition: a median-of-three pivot is moved
// next to the window's left edge, the window is split around it, and only the side holding k is
// kept. Expected cost is linear; sorted and reverse-sorted inputs do not degrade because the
// pivot is always the median of the window's first, middle and last elements.
package selector

// Float is the set of element types the selector works on.
type Float interface {
	~float32 | ~float64
}

// ordering reports whether a strictly precedes b.
type ordering[F Float] interface {
	before(a, b F) bool
}

type ascending[F Float] struct{}

func (ascending[F]) before(a, b F) bool { return a < b }

type descending[F Float] struct{}

func (descending[F]) before(a, b F) bool { return a > b }

// SelectKthAscending reorders values so that values[k] holds the element a full ascending sort
// would put there, everything left of k is <= values[k] and everything right of k is >= it.
// It returns values[k]. The slice is reordered, not sorted. k must be in [0, len(values)).
func SelectKthAscending[F Float](values []F, k int) F {
	return selectKth[F, ascending[F]](values, k)
}

// SelectKthDescending is SelectKthAscending with the order reversed: values[0..k] end up holding
// the k+1 largest elements.
func SelectKthDescending[F Float](values []F, k int) F {
	return selectKth[F, descending[F]](values, k)
}

func selectKth[F Float, O ordering[F]](a []F, k int) F {
	var o O
	l, ir := 0, len(a)-1
	for {
		if ir <= l+1 {
			if ir == l+1 && o.before(a[ir], a[l]) {
				a[l], a[ir] = a[ir], a[l]
			}
			return a[k]
		}

		mid := int(uint(l+ir) >> 1)
		a[mid], a[l+1] = a[l+1], a[mid]
		if o.before(a[ir], a[l]) {
			a[l], a[ir] = a[ir], a[l]
		}
		if o.before(a[ir], a[l+1]) {
			a[l+1], a[ir] = a[ir], a[l+1]
		}
		if o.before(a[l+1], a[l]) {
			a[l], a[l+1] = a[l+1], a[l]
		}

		// a[l] <= pivot <= a[ir] now act as sentinels for both scans.
		i, j := l+1, ir
		pivot := a[l+1]
		for {
			for i++; o.before(a[i], pivot); i++ {
			}
			for j--; o.before(pivot, a[j]); j-- {
			}
			if j < i {
				break
			}
			a[i], a[j] = a[j], a[i]
		}
		a[l+1] = a[j]
		a[j] = pivot

		if j >= k {
			ir = j - 1
		}
		if j <= k {
			l = i
		}
	}
}
