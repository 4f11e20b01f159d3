// SPDX-License-Identifier: GPL-2.0-or-later

// Package kernel hands decoded profiles to a geometry kernel.
//
// The kernel itself is external; Build only drives it. Every wire, face and
// prism is built on its own and a failure is recorded against the command
// that produced the offending geometry, so one bad profile never costs the
// rest of the program.
package kernel

import (
	"fmt"

	"seq2cad/conlog"
	"seq2cad/sketch"

	"github.com/pkg/errors"
)

// Shape is an opaque kernel object.
type Shape interface {
	IsNull() bool
}

type Kernel interface {
	Wire(w sketch.Wire) (Shape, error)
	// Face builds a planar face from an outer loop and optional holes.
	Face(outer Shape, holes []Shape) (Shape, error)
	Prism(face Shape, pl sketch.Placement) (Shape, error)
}

// EdgeError lets a kernel name the edge a wire failed on.
type EdgeError struct {
	Cmd int
	Err error
}

func (e *EdgeError) Error() string {
	return fmt.Sprintf("edge from command %d: %v", e.Cmd, e.Err)
}

func (e *EdgeError) Unwrap() error {
	return e.Err
}

// Op is the boolean operation an extrusion asks for.
type Op int

const (
	NewBody Op = iota
	Join
	Cut
	Intersect
	OpUnknown
)

var opStrings = []string{"new", "join", "cut", "intersect", "unknown"}

func (o Op) String() string {
	if o < NewBody || o > OpUnknown {
		return opStrings[OpUnknown]
	}
	return opStrings[o]
}

// OpFromSelector maps the b field of an extrude.
func OpFromSelector(b uint8) Op {
	if int(b) >= int(OpUnknown) {
		return OpUnknown
	}
	return Op(b)
}

type Stage int

const (
	StageWire Stage = iota
	StageFace
	StagePrism
)

func (s Stage) String() string {
	switch s {
	case StageWire:
		return "wire"
	case StageFace:
		return "face"
	case StagePrism:
		return "prism"
	}
	return "unknown"
}

// Failure is one piece of geometry the kernel could not build.
type Failure struct {
	Entry int
	Cmd   int
	Stage Stage
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("entry %d, command %d, %v: %v", f.Entry, f.Cmd, f.Stage, f.Err)
}

// Part is one built shape. Faces of residual profiles have Extruded false.
type Part struct {
	Entry    int
	Cmd      int
	Shape    Shape
	Extruded bool
	Op       Op
}

type Model struct {
	Parts    []Part
	Failures []Failure
	// Empty counts profiles without wires that were skipped.
	Empty int
}

// Solids returns the extruded parts.
func (m *Model) Solids() []Part {
	var r []Part
	for _, p := range m.Parts {
		if p.Extruded {
			r = append(r, p)
		}
	}
	return r
}

var ErrNullShape = errors.New("kernel returned a null shape")

func wireCmd(w sketch.Wire) int {
	if w.Empty() {
		return -1
	}
	return w.Edges[0].Command()
}

type builder struct {
	k Kernel
	m *Model
}

func (b *builder) fail(entry, cmd int, st Stage, err error) {
	var ee *EdgeError
	if errors.As(err, &ee) {
		cmd = ee.Cmd
	}
	f := Failure{Entry: entry, Cmd: cmd, Stage: st, Err: err}
	conlog.Printf("Error: %v\n", f)
	b.m.Failures = append(b.m.Failures, f)
}

func checkShape(s Shape, err error) (Shape, error) {
	if err != nil {
		return nil, err
	}
	if s == nil || s.IsNull() {
		return nil, ErrNullShape
	}
	return s, nil
}

func (b *builder) entry(i int, en sketch.Entry) {
	if en.Profile.Empty() {
		b.m.Empty++
		return
	}
	outer, err := checkShape(b.k.Wire(en.Profile.Outer()))
	if err != nil {
		b.fail(i, wireCmd(en.Profile.Outer()), StageWire, err)
		return
	}
	var holes []Shape
	for _, w := range en.Profile.Holes() {
		h, err := checkShape(b.k.Wire(w))
		if err != nil {
			b.fail(i, wireCmd(w), StageWire, err)
			continue
		}
		holes = append(holes, h)
	}
	cmd := en.Cmd
	if en.Extrude == nil {
		cmd = wireCmd(en.Profile.Outer())
	}
	face, err := checkShape(b.k.Face(outer, holes))
	if err != nil {
		b.fail(i, cmd, StageFace, err)
		return
	}
	if en.Extrude == nil {
		b.m.Parts = append(b.m.Parts, Part{Entry: i, Cmd: cmd, Shape: face})
		return
	}
	solid, err := checkShape(b.k.Prism(face, en.Extrude.Placement()))
	if err != nil {
		b.fail(i, cmd, StagePrism, err)
		return
	}
	op := OpFromSelector(en.Extrude.Op)
	if op == OpUnknown {
		conlog.Printf("Warning: entry %d: unknown boolean selector %d\n", i, en.Extrude.Op)
	}
	b.m.Parts = append(b.m.Parts, Part{
		Entry:    i,
		Cmd:      cmd,
		Shape:    solid,
		Extruded: true,
		Op:       op,
	})
}

// Build feeds every entry of res to k.
func Build(k Kernel, res *sketch.Result) *Model {
	b := &builder{k: k, m: &Model{}}
	for i, en := range res.Entries {
		b.entry(i, en)
	}
	return b.m
}
