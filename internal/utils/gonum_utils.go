package utils

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

func SubVec(a, b *mat.VecDense) *mat.VecDense {
	if a.Len() != b.Len() {
		panic("Two vectors should have the same length.")
	}

	ret := mat.NewVecDense(a.Len(), nil)
	ret.SubVec(a, b)

	return ret
}

func AddVec(a, b *mat.VecDense) *mat.VecDense {
	if a.Len() != b.Len() {
		panic("Two vectors should have the same length.")
	}

	ret := mat.NewVecDense(a.Len(), nil)
	ret.AddVec(a, b)

	return ret
}

func Euclidean(a, b *mat.VecDense) float64 {
	return mat.Norm(SubVec(a, b), 2)
}

// SquaredDistance is the firefly attractiveness distance between two
// continuous positions.
func SquaredDistance(a, b *mat.VecDense) float64 {
	diff := SubVec(a, b)
	return mat.Dot(diff, diff)
}

func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// ClampVec bounds every component of v to [lo, hi] in place and
// returns how many components were out of range. NaN and infinite
// components are reset to the interval midpoint and counted as
// invalid separately.
func ClampVec(v *mat.VecDense, lo, hi float64) (clamped, invalid int) {
	mid := (lo + hi) / 2
	for i := 0; i < v.Len(); i++ {
		x := v.AtVec(i)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			v.SetVec(i, mid)
			invalid += 1
			continue
		}
		if x < lo || x > hi {
			v.SetVec(i, Clamp(x, lo, hi))
			clamped += 1
		}
	}

	return clamped, invalid
}

func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
