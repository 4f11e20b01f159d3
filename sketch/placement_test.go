// SPDX-License-Identifier: GPL-2.0-or-later

package sketch

import (
	"testing"

	"seq2cad/math/vec"

	"github.com/chewxy/math32"
)

func TestPlacementApply(t *testing.T) {
	var q float32 = math32.Pi / 2
	tests := []struct {
		p    ExtrudeParams
		in   vec.Vec3
		want vec.Vec3
	}{
		{ExtrudeParams{Scale: 1}, vec.XY(1, 2), vec.XY(1, 2)},
		{ExtrudeParams{Scale: 1, PZ: 1}, vec.XY(1, 2), vec.Vec3{X: 1, Y: 2, Z: 1}},
		{ExtrudeParams{Scale: 2, Anchor: vec.XY(1, 1)}, vec.XY(2, 1), vec.XY(3, 1)},
		{ExtrudeParams{Scale: 1, Gamma: q, Anchor: vec.XY(1, 1)}, vec.XY(2, 1), vec.XY(1, 2)},
		{ExtrudeParams{Scale: 1, Theta: q}, vec.XY(0, 1), vec.Vec3{Z: 1}},
	}
	for i, tc := range tests {
		got := tc.p.Placement().Apply(tc.in)
		if !vec.Near(got, tc.want, e) {
			t.Errorf("Testcase %d. got: %v, want %v", i, got, tc.want)
		}
	}
}

func TestPlacementOrder(t *testing.T) {
	var q float32 = math32.Pi / 2
	p := ExtrudeParams{Theta: q, Phi: q, Scale: 1, E1: 0.5, E2: 0.25}
	pl := p.Placement()
	// x first: z -> -y, then y keeps -y
	if got, want := pl.Direction(), (vec.Vec3{Y: -1}); !vec.Near(got, want, e) {
		t.Errorf("Direction = %v, want %v", got, want)
	}
	yFirst := vec.RotateX(vec.RotateY(vec.UnitZ, vec.Origin, q), vec.Origin, q)
	if vec.Near(pl.Direction(), yFirst, e) {
		t.Errorf("rotation order is not observable")
	}
	if pl.Distance() != 0.75 {
		t.Errorf("Distance = %v, want 0.75", pl.Distance())
	}
	if got, want := pl.Sweep(), (vec.Vec3{Y: -0.75}); !vec.Near(got, want, e) {
		t.Errorf("Sweep = %v, want %v", got, want)
	}
	p.Gamma = q
	if got, want := p.Placement().Direction(), vec.UnitX; !vec.Near(got, want, e) {
		t.Errorf("Direction with gamma = %v, want %v", got, want)
	}
}
