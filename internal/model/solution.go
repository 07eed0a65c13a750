package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Unassigned marks a device the solution leaves without a cloudlet.
const Unassigned = -1

// Solution is the discrete decision pair: which locations host a
// cloudlet and which active location serves each device. It is
// derived from the optimizer's continuous state and only guaranteed
// consistent after repair.
type Solution struct {
	Active []bool `yaml:"active"`
	Assign []int  `yaml:"assign"`
}

func NewSolution(locationCount, deviceCount int) *Solution {
	assign := make([]int, deviceCount)
	for e := range assign {
		assign[e] = Unassigned
	}

	return &Solution{
		Active: make([]bool, locationCount),
		Assign: assign,
	}
}

func (s *Solution) Clone() *Solution {
	ret := &Solution{
		Active: make([]bool, len(s.Active)),
		Assign: make([]int, len(s.Assign)),
	}
	copy(ret.Active, s.Active)
	copy(ret.Assign, s.Assign)

	return ret
}

func (s *Solution) ActiveCount() int {
	count := 0
	for _, active := range s.Active {
		if active {
			count += 1
		}
	}

	return count
}

// Usage counts assigned devices per location.
func (s *Solution) Usage() []int {
	used := make([]int, len(s.Active))
	for _, p := range s.Assign {
		if p >= 0 && p < len(used) {
			used[p] += 1
		}
	}

	return used
}

func (s *Solution) String() string {
	bytes, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Sprintf("unprintable solution: %v", err)
	}

	return string(bytes)
}
