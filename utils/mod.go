package utils

// FindIndex scans slice from index from, moving by step (1 or -1), and
// returns the first index holding item, or -1.
func FindIndex[T comparable](slice []T, item T, from, step int) int {
	for i := from; i >= 0 && i < len(slice); i += step {
		if slice[i] == item {
			return i
		}
	}
	return -1
}

// SkipRun returns the first index at or past from, moving by step, whose
// element differs from item. The result may fall just outside slice.
func SkipRun[T comparable](slice []T, item T, from, step int) int {
	i := from
	for i >= 0 && i < len(slice) && slice[i] == item {
		i += step
	}
	return i
}

func Repeat[T any](item T, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = item
	}
	return out
}
