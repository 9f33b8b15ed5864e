package partition

// Flatten converts a multi-index over the given shape to a linear index,
// row-major: the last axis varies fastest.
func Flatten(shape, index []int) int {
	flat := 0
	for d := range shape {
		flat = flat*shape[d] + index[d]
	}
	return flat
}

// Unflatten converts a linear index over the given shape back to a
// multi-index, row-major. It is the inverse of Flatten for in-range indices.
func Unflatten(shape []int, flat int) []int {
	index := make([]int, len(shape))
	for d := len(shape) - 1; d >= 0; d-- {
		index[d] = flat % shape[d]
		flat /= shape[d]
	}
	return index
}
