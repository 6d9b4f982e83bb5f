package natsort

// BuildTrendCache records the trend of every adjacent pair of s.
// Entry i is le(s[i], s[i+1]); equal neighbours count as ascending.
// A sequence of length 0 or 1 yields an empty cache.
func BuildTrendCache[E any](s []E, le func(a, b E) bool) []bool {
	if len(s) <= 1 {
		return []bool{}
	}
	cache := make([]bool, len(s)-1)
	for i := range cache {
		cache[i] = le(s[i], s[i+1])
	}
	return cache
}
