// SPDX-License-Identifier: GPL-2.0-or-later

package codec

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// Param names a quantized parameter.
type Param string

const (
	X      Param = "x"
	Y      Param = "y"
	Radius Param = "radius"
	Angle  Param = "angle"
	Theta  Param = "theta"
	Phi    Param = "phi"
	Gamma  Param = "gamma"
	PX     Param = "px"
	PY     Param = "py"
	PZ     Param = "pz"
	Scale  Param = "scale"
	Extent Param = "extent"
)

// Domains assigns a real interval to every parameter.
type Domains map[Param]Domain

// DefaultDomains returns the ranges the token producer quantizes with.
func DefaultDomains() Domains {
	return Domains{
		X:      {-1, 1},
		Y:      {-1, 1},
		Radius: {0, 1},
		Angle:  {0, 2 * math32.Pi},
		Theta:  {-math32.Pi, math32.Pi},
		Phi:    {-math32.Pi, math32.Pi},
		Gamma:  {-math32.Pi, math32.Pi},
		PX:     {-1, 1},
		PY:     {-1, 1},
		PZ:     {-1, 1},
		Scale:  {0, 2},
		Extent: {-1, 1},
	}
}

// Known reports whether p is one of the parameters above.
func Known(p Param) bool {
	_, ok := DefaultDomains()[p]
	return ok
}

// Get returns the domain of p, falling back to the default table for
// parameters ds does not override.
func (ds Domains) Get(p Param) Domain {
	if d, ok := ds[p]; ok {
		return d
	}
	return DefaultDomains()[p]
}

// Denormalize is Denormalize with the domain of p.
func (ds Domains) Denormalize(p Param, v uint8) float32 {
	return Denormalize(v, ds.Get(p))
}

// Merge returns a copy of the defaults overridden by ds.
func (ds Domains) Merge() Domains {
	r := DefaultDomains()
	for p, d := range ds {
		r[p] = d
	}
	return r
}

// Validate checks that every entry names a known parameter and is a
// non-empty interval.
func (ds Domains) Validate() error {
	names := make([]string, 0, len(ds))
	for p := range ds {
		names = append(names, string(p))
	}
	sort.Strings(names)
	for _, n := range names {
		p := Param(n)
		if !Known(p) {
			return errors.Errorf("unknown parameter %q", n)
		}
		if d := ds[p]; !(d.Min < d.Max) {
			return errors.Errorf("parameter %q: empty domain %v", n, d)
		}
	}
	return nil
}
