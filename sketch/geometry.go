// SPDX-License-Identifier: GPL-2.0-or-later

package sketch

import (
	"fmt"

	"seq2cad/math/vec"
)

// Edge is one curve of a wire. Cmd is the index of the command that
// produced it.
type Edge interface {
	Command() int
	// Next returns the cursor after this edge, given the cursor before it.
	Next(cursor vec.Vec3) vec.Vec3
}

type Line struct {
	Start, End vec.Vec3
	Cmd        int
}

// Arc is a three-point arc from Start through Via to End. Via holds the
// token's center fields.
type Arc struct {
	Start, Via, End vec.Vec3
	Cmd             int
}

type Circle struct {
	Center vec.Vec3
	Radius float32
	Cmd    int
}

func (e Line) Command() int   { return e.Cmd }
func (e Arc) Command() int    { return e.Cmd }
func (e Circle) Command() int { return e.Cmd }

func (e Line) Next(vec.Vec3) vec.Vec3 { return e.End }
func (e Arc) Next(vec.Vec3) vec.Vec3  { return e.End }

// Circles are closed on their own and leave the cursor where it was.
func (e Circle) Next(c vec.Vec3) vec.Vec3 { return c }

func (e Line) String() string {
	return fmt.Sprintf("line %v -> %v", e.Start, e.End)
}

func (e Arc) String() string {
	return fmt.Sprintf("arc %v -> %v via %v", e.Start, e.End, e.Via)
}

func (e Circle) String() string {
	return fmt.Sprintf("circle %v r=%g", e.Center, e.Radius)
}

// Wire is the ordered list of edges between two loop starts.
type Wire struct {
	Edges []Edge
}

func (w Wire) Empty() bool {
	return len(w.Edges) == 0
}

// Profile is the set of wires one extrusion lifts. The first wire is the
// outer boundary, the others are holes.
type Profile struct {
	Wires []Wire
}

func (p Profile) Empty() bool {
	return len(p.Wires) == 0
}

func (p Profile) Outer() Wire {
	if p.Empty() {
		return Wire{}
	}
	return p.Wires[0]
}

func (p Profile) Holes() []Wire {
	if p.Empty() {
		return nil
	}
	return p.Wires[1:]
}

// EdgeCount returns the number of edges over all wires.
func (p Profile) EdgeCount() int {
	n := 0
	for _, w := range p.Wires {
		n += len(w.Edges)
	}
	return n
}

// ExtrudeParams are the denormalized fields of an extrude command together
// with the cursor at the moment it was decoded.
type ExtrudeParams struct {
	Theta, Phi, Gamma float32
	PX, PY, PZ        float32
	Scale             float32
	E1, E2            float32
	Op, Plane         uint8
	Anchor            vec.Vec3
}

func (e *ExtrudeParams) Translation() vec.Vec3 {
	return vec.Vec3{X: e.PX, Y: e.PY, Z: e.PZ}
}

func (e *ExtrudeParams) Placement() Placement {
	return Placement{p: *e}
}

// Entry pairs a profile with its extrusion. Extrude is nil for the residual
// profile of a program that ends without a final extrude; Cmd is then -1.
type Entry struct {
	Profile Profile
	Extrude *ExtrudeParams
	Cmd     int
}
