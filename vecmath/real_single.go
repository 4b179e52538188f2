//go:build precision32

package vecmath

// Real is the floating-point width the whole engine is built against,
// selected here by the precision32 build tag.
type Real = float32

const realEpsilon = 1e-6
