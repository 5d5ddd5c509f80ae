package imaging

// Lerp interpolates linearly between s and e.
// t=0 yields s exactly, for any e.
func Lerp(s, e, t float64) float64 {
	return s + (e-s)*t
}

// Blerp interpolates bilinearly between four corner values:
//
//  c00  c10
//  c01  c11
//
// first along x on both rows, then along y.
func Blerp(c00, c10, c01, c11, tx, ty float64) float64 {
	return Lerp(Lerp(c00, c10, tx), Lerp(c01, c11, tx), ty)
}

// Clamp limits i to the range [0, n-1].
func Clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
