package shade

import "math/rand/v2"

// Entropy is the host-provided source of uniform [0,1) samples used to
// jitter primary and secondary rays. The shader treats it as an opaque
// side effect and never caches draws from it.
type Entropy interface {
	Uniform01() float64
}

// ConstantEntropy always returns the same sample. Used for deterministic
// tests and for disabling jitter: a ConstantEntropy(0.5) drives the
// jitter's "(sample*2-1)" term to exactly zero.
type ConstantEntropy float64

func (c ConstantEntropy) Uniform01() float64 { return float64(c) }

// MathRandEntropy draws from the package-level math/rand/v2 source. It
// is the Entropy the command-line tools use outside of tests.
type MathRandEntropy struct{}

func (MathRandEntropy) Uniform01() float64 { return rand.Float64() }
