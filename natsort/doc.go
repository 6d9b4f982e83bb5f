// Package natsort implements a natural merge sort.
//
// Instead of splitting the input down to single elements, the sort looks
// for the order already present in it. A single linear pass records the
// trend of every adjacent pair, the sequence is carved into maximal
// monotonic runs (descending runs are reversed), and neighbouring runs are
// merged pairwise, round after round, until one run remains. Fully sorted
// input costs O(n); random input degrades to O(n log n).
//
// The input slice is never modified. Every stage works on copies, so the
// caller can compare the original and the sorted sequence afterwards.
package natsort
