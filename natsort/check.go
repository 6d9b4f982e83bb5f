package natsort

// IsSorted reports whether every adjacent pair of s satisfies le.
func IsSorted[E any](s []E, le func(a, b E) bool) bool {
	for i := 1; i < len(s); i++ {
		if !le(s[i-1], s[i]) {
			return false
		}
	}
	return true
}

// IsPermutation reports whether a and b hold the same multiset of values.
// NaN never equals itself, so float inputs containing NaN are never
// permutations of anything.
func IsPermutation[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[T]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		if counts[v] == 0 {
			return false
		}
		counts[v]--
	}
	return true
}
