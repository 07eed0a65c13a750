package model

import "gonum.org/v1/gonum/mat"

// Location is a candidate cloudlet site. Capacity is the maximum
// number of devices one cloudlet placed there can serve.
type Location struct {
	Id       int
	Position *mat.VecDense
	Cost     float64
	Capacity int
}

// Device is a service consumer. Demand weights its latency
// contribution in the objective.
type Device struct {
	Id       int
	Position *mat.VecDense
	Demand   float64
}
