// Package refresh is the fast periodic task that multiplexes the matrix.
package refresh

import "dotmatrix/kernel"

// Refresher drives the next matrix column.
type Refresher interface {
	Refresh()
}

// Service drives one matrix column per step.
type Service struct {
	disp Refresher
}

// New returns the refresh task for disp.
func New(disp Refresher) *Service {
	return &Service{disp: disp}
}

func (s *Service) Step(*kernel.Context) {
	s.disp.Refresh()
}
