//go:build !precision32

package vecmath

// Real is the floating-point width the whole engine is built against.
// Double precision is the default; build with -tags precision32 to
// switch every package in this module to float32 instead.
type Real = float64

const realEpsilon = 1e-12
