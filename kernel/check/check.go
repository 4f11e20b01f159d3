// SPDX-License-Identifier: GPL-2.0-or-later

// Package check is a kernel without a boundary representation. It accepts
// exactly the geometry a real kernel could build and returns bounding
// boxes, which makes it useful for validating programs and in tests.
package check

import (
	"seq2cad/codec"
	"seq2cad/kernel"
	"seq2cad/math/vec"
	"seq2cad/sketch"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

var (
	ErrDegenerate   = errors.New("degenerate edge")
	ErrDisconnected = errors.New("edges do not connect")
	ErrOpen         = errors.New("wire is not closed")
	ErrMixedCircle  = errors.New("circle shares its wire with other edges")
	ErrZeroSweep    = errors.New("extrusion has no length")
	ErrForeign      = errors.New("shape was not built by this kernel")
)

// DefaultTolerance is one quantization step of a coordinate, the largest
// gap two points that should coincide can have after denormalization.
var DefaultTolerance = codec.DefaultDomains().Get(codec.X).Step()

type Box struct {
	Min, Max vec.Vec3
}

func boxOf(ps ...vec.Vec3) Box {
	b := Box{ps[0], ps[0]}
	for _, p := range ps[1:] {
		b = b.Add(p)
	}
	return b
}

func (b Box) Add(p vec.Vec3) Box {
	b.Min, _ = vec.MinMax(b.Min, p)
	_, b.Max = vec.MinMax(b.Max, p)
	return b
}

func (b Box) Union(o Box) Box {
	return b.Add(o.Min).Add(o.Max)
}

func (b Box) Corners() []vec.Vec3 {
	r := make([]vec.Vec3, 0, 8)
	for _, x := range []float32{b.Min.X, b.Max.X} {
		for _, y := range []float32{b.Min.Y, b.Max.Y} {
			for _, z := range []float32{b.Min.Z, b.Max.Z} {
				r = append(r, vec.Vec3{X: x, Y: y, Z: z})
			}
		}
	}
	return r
}

type Wire struct {
	Edges int
	Box   Box
}

type Face struct {
	Outer *Wire
	Holes []*Wire
}

type Solid struct {
	Face  *Face
	Sweep vec.Vec3
	Box   Box
}

func (w *Wire) IsNull() bool  { return w == nil }
func (f *Face) IsNull() bool  { return f == nil || f.Outer == nil }
func (s *Solid) IsNull() bool { return s == nil || s.Face == nil }

type Kernel struct {
	Tolerance float32
}

func New(tolerance float32) *Kernel {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Kernel{Tolerance: tolerance}
}

func endpoints(e sketch.Edge) (start, end vec.Vec3, ok bool) {
	switch e := e.(type) {
	case sketch.Line:
		return e.Start, e.End, true
	case sketch.Arc:
		return e.Start, e.End, true
	}
	return vec.Vec3{}, vec.Vec3{}, false
}

func (k *Kernel) edge(e sketch.Edge) (Box, error) {
	switch e := e.(type) {
	case sketch.Line:
		if vec.Distance(e.Start, e.End) <= k.Tolerance {
			return Box{}, errors.Wrap(ErrDegenerate, "zero length line")
		}
		return boxOf(e.Start, e.End), nil
	case sketch.Arc:
		if vec.Distance(e.Start, e.End) <= k.Tolerance {
			return Box{}, errors.Wrap(ErrDegenerate, "arc ends where it starts")
		}
		if vec.Collinear(e.Start, e.Via, e.End, k.Tolerance*k.Tolerance) {
			return Box{}, errors.Wrap(ErrDegenerate, "arc points are collinear")
		}
		return boxOf(e.Start, e.Via, e.End), nil
	case sketch.Circle:
		if e.Radius <= k.Tolerance {
			return Box{}, errors.Wrap(ErrDegenerate, "circle has no radius")
		}
		r := vec.Vec3{X: e.Radius, Y: e.Radius}
		return boxOf(vec.Sub(e.Center, r), vec.Add(e.Center, r)), nil
	}
	return Box{}, errors.Errorf("unsupported edge %T", e)
}

func (k *Kernel) Wire(w sketch.Wire) (kernel.Shape, error) {
	if w.Empty() {
		return nil, errors.Wrap(ErrDegenerate, "wire without edges")
	}
	var box Box
	for i, e := range w.Edges {
		b, err := k.edge(e)
		if err != nil {
			return nil, &kernel.EdgeError{Cmd: e.Command(), Err: err}
		}
		if i == 0 {
			box = b
		} else {
			box = box.Union(b)
		}
		if _, ok := e.(sketch.Circle); ok && len(w.Edges) != 1 {
			return nil, &kernel.EdgeError{Cmd: e.Command(), Err: ErrMixedCircle}
		}
		if i == 0 {
			continue
		}
		_, prevEnd, _ := endpoints(w.Edges[i-1])
		start, _, _ := endpoints(e)
		if vec.Distance(prevEnd, start) > k.Tolerance {
			return nil, &kernel.EdgeError{Cmd: e.Command(), Err: ErrDisconnected}
		}
	}
	if first, _, ok := endpoints(w.Edges[0]); ok {
		last := w.Edges[len(w.Edges)-1]
		_, end, _ := endpoints(last)
		if gap := vec.Distance(first, end); gap > k.Tolerance {
			return nil, &kernel.EdgeError{
				Cmd: last.Command(),
				Err: errors.Wrapf(ErrOpen, "gap %g", gap),
			}
		}
	}
	return &Wire{Edges: len(w.Edges), Box: box}, nil
}

func (k *Kernel) Face(outer kernel.Shape, holes []kernel.Shape) (kernel.Shape, error) {
	o, ok := outer.(*Wire)
	if !ok {
		return nil, ErrForeign
	}
	f := &Face{Outer: o}
	for _, h := range holes {
		hw, ok := h.(*Wire)
		if !ok {
			return nil, ErrForeign
		}
		f.Holes = append(f.Holes, hw)
	}
	return f, nil
}

func (k *Kernel) Prism(face kernel.Shape, pl sketch.Placement) (kernel.Shape, error) {
	f, ok := face.(*Face)
	if !ok {
		return nil, ErrForeign
	}
	sweep := pl.Sweep()
	if math32.Abs(pl.Distance()) <= k.Tolerance {
		return nil, errors.Wrapf(ErrZeroSweep, "distance %g", pl.Distance())
	}
	var box Box
	for i, c := range f.Outer.Box.Corners() {
		p := pl.Apply(c)
		if i == 0 {
			box = boxOf(p)
		}
		box = box.Add(p).Add(vec.Add(p, sweep))
	}
	return &Solid{Face: f, Sweep: sweep, Box: box}, nil
}
