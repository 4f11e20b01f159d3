// SPDX-License-Identifier: GPL-2.0-or-later

package sketch

import (
	"seq2cad/math/vec"
)

// Placement moves sketch geometry into the frame of an extrusion.
//
// A point is scaled about the anchor, rotated about the anchor around x by
// theta, then around y by phi, then around z by gamma, and finally
// translated. The rotations are applied one after the other; reordering
// them changes the result.
type Placement struct {
	p ExtrudeParams
}

func (pl Placement) Anchor() vec.Vec3 {
	return pl.p.Anchor
}

func (pl Placement) rotate(v, pivot vec.Vec3) vec.Vec3 {
	v = vec.RotateX(v, pivot, pl.p.Theta)
	v = vec.RotateY(v, pivot, pl.p.Phi)
	v = vec.RotateZ(v, pivot, pl.p.Gamma)
	return v
}

// Apply maps a sketch point into model space.
func (pl Placement) Apply(v vec.Vec3) vec.Vec3 {
	a := pl.p.Anchor
	v = vec.Add(a, vec.Sub(v, a).Scale(pl.p.Scale))
	v = pl.rotate(v, a)
	return vec.Add(v, pl.p.Translation())
}

// Direction is the sketch normal (+z) after rotation.
func (pl Placement) Direction() vec.Vec3 {
	return pl.rotate(vec.UnitZ, vec.Origin)
}

// Distance is the signed sweep length e1 + e2.
func (pl Placement) Distance() float32 {
	return pl.p.E1 + pl.p.E2
}

// Sweep is the extrusion vector.
func (pl Placement) Sweep() vec.Vec3 {
	return pl.Direction().Scale(pl.Distance())
}
