// Package raster defines the contract the bed editor has with the raster
// loader: something resolves a plot's georeferenced image into a working
// projection and an extent, and reports when it is ready. Decoding the
// raster itself happens outside this module (in the mapping engine).
package raster

import "github.com/paulmach/orb"

// Binding reports the readiness and working projection of the currently
// loaded raster. ProjectionCode returns "" until the raster is ready.
type Binding interface {
	Ready() bool
	ProjectionCode() string
	Extent() orb.Bound
}

// Static is a Binding with fixed values. It stands in for a real raster
// loader when the projection is already known (tests, CLI tooling).
type Static struct {
	Code   string
	Bounds orb.Bound
}

// NewStatic returns a ready binding for the given projection code.
func NewStatic(code string, bounds orb.Bound) *Static {
	return &Static{Code: code, Bounds: bounds}
}

func (s *Static) Ready() bool {
	return s != nil && s.Code != ""
}

func (s *Static) ProjectionCode() string {
	if s == nil {
		return ""
	}
	return s.Code
}

func (s *Static) Extent() orb.Bound {
	if s == nil {
		return orb.Bound{}
	}
	return s.Bounds
}
