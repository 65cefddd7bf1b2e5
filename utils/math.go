package utils

import "golang.org/x/exp/constraints"

// Min returns the smallest of one or more values.
func Min[T constraints.Ordered](x T, rest ...T) T {
	min := x
	for _, v := range rest {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the largest of one or more values.
func Max[T constraints.Ordered](x T, rest ...T) T {
	max := x
	for _, v := range rest {
		if v > max {
			max = v
		}
	}
	return max
}

// Abs returns the absolut value of x.
func Abs[T constraints.Signed | constraints.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Contains reports whether v is present in s.
func Contains[T comparable](s []T, v T) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
