package eval

// next advances idx as a mixed-radix counter over dims, position 0 fastest.
// A zero dimension marks an unused tag and only takes the value 0.
// It returns false, leaving idx all zero, once every combination was produced.
func next(idx, dims []int) bool {
	for i := range idx {
		idx[i]++
		if idx[i] < dims[i] {
			return true
		}
		idx[i] = 0
	}
	return false
}

// resize returns s with length n and all elements zero, reusing its storage.
func resize(s []int, n int) []int {
	if cap(s) < n {
		return make([]int, n)
	}
	s = s[:n]
	clear(s)
	return s
}
