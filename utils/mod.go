package utils

// FindIndex returns the index of the first item in slice, or -1.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Remove returns a new slice without the first occurrence of item. The input is not modified.
func Remove[T comparable](slice []T, item T) []T {
	i := FindIndex(slice, item)
	if i < 0 {
		return append([]T(nil), slice...)
	}
	out := make([]T, 0, len(slice)-1)
	out = append(out, slice[:i]...)
	return append(out, slice[i+1:]...)
}

// Count returns how many times item occurs in slice.
func Count[T comparable](slice []T, item T) int {
	n := 0
	for _, v := range slice {
		if v == item {
			n++
		}
	}
	return n
}
