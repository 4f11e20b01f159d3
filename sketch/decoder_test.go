// SPDX-License-Identifier: GPL-2.0-or-later

package sketch

import (
	"reflect"
	"testing"

	"seq2cad/codec"
	"seq2cad/command"
	"seq2cad/math/vec"
	"seq2cad/samples"

	"github.com/pkg/errors"
)

const (
	e = 1e-6
)

var (
	sol = command.StartOfLoopCmd{}
	eos = command.EndOfSequenceCmd{}
	ext = command.ExtrudeCmd{
		Theta: 128, Phi: 128, Gamma: 128,
		PX: 119, PY: 128, PZ: 128,
		Scale: 18, E1: 220, E2: 128,
	}
)

func pt(x, y uint8) vec.Vec3 {
	d := codec.Domain{Min: -1, Max: 1}
	return vec.XY(codec.Denormalize(x, d), codec.Denormalize(y, d))
}

func line(x, y uint8) command.LineCmd {
	return command.LineCmd{EndX: x, EndY: y}
}

func decode(t *testing.T, cmds []command.Command, opts ...Option) *Result {
	t.Helper()
	r, err := Decode(cmds, opts...)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return r
}

func sample(t *testing.T, rows [][]int32) []command.Command {
	t.Helper()
	ts, err := command.FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	return command.ParseAll(ts)
}

func TestSingleCircle(t *testing.T) {
	r := decode(t, []command.Command{
		sol,
		command.CircleCmd{CenterX: 176, CenterY: 128, Radius: 48},
		ext,
		eos,
	})
	if len(r.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(r.Entries))
	}
	en := r.Entries[0]
	if len(en.Profile.Wires) != 1 || len(en.Profile.Wires[0].Edges) != 1 {
		t.Fatalf("profile = %+v, want one wire with one edge", en.Profile)
	}
	c, ok := en.Profile.Wires[0].Edges[0].(Circle)
	if !ok {
		t.Fatalf("edge = %#v, want Circle", en.Profile.Wires[0].Edges[0])
	}
	if !vec.Near(c.Center, pt(176, 128), e) {
		t.Errorf("center = %v, want %v", c.Center, pt(176, 128))
	}
	if want := codec.Denormalize(48, codec.Domain{Min: 0, Max: 1}); c.Radius != want {
		t.Errorf("radius = %v, want %v", c.Radius, want)
	}
	if c.Cmd != 1 || en.Cmd != 2 {
		t.Errorf("command indices edge=%d entry=%d, want 1 and 2", c.Cmd, en.Cmd)
	}
	p := en.Extrude
	if p == nil {
		t.Fatalf("entry has no extrude parameters")
	}
	ds := codec.DefaultDomains()
	checks := []struct {
		name string
		got  float32
		want float32
	}{
		{"theta", p.Theta, ds.Denormalize(codec.Theta, 128)},
		{"phi", p.Phi, ds.Denormalize(codec.Phi, 128)},
		{"gamma", p.Gamma, ds.Denormalize(codec.Gamma, 128)},
		{"px", p.PX, ds.Denormalize(codec.PX, 119)},
		{"py", p.PY, ds.Denormalize(codec.PY, 128)},
		{"pz", p.PZ, ds.Denormalize(codec.PZ, 128)},
		{"s", p.Scale, ds.Denormalize(codec.Scale, 18)},
		{"e1", p.E1, ds.Denormalize(codec.Extent, 220)},
		{"e2", p.E2, ds.Denormalize(codec.Extent, 128)},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if !vec.Equal(p.Anchor, vec.Origin) {
		t.Errorf("anchor = %v, want origin", p.Anchor)
	}
}

func TestClosedQuad(t *testing.T) {
	r := decode(t, []command.Command{
		sol, line(64, 64), ext,
		sol, line(192, 64), line(192, 192), line(64, 192), line(64, 64), ext,
		eos,
	})
	if len(r.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(r.Entries))
	}
	p := r.Entries[1].Profile
	if len(p.Wires) != 1 || len(p.Wires[0].Edges) != 4 {
		t.Fatalf("profile = %+v, want one wire with four edges", p)
	}
	es := p.Wires[0].Edges
	for i, ed := range es {
		l, ok := ed.(Line)
		if !ok {
			t.Fatalf("edge %d = %#v, want Line", i, ed)
		}
		if i > 0 && !vec.Equal(l.Start, es[i-1].(Line).End) {
			t.Errorf("edge %d starts at %v, previous ends at %v", i, l.Start, es[i-1].(Line).End)
		}
	}
	first, last := es[0].(Line), es[3].(Line)
	if !vec.Equal(first.Start, last.End) {
		t.Errorf("quad not closed: %v != %v", first.Start, last.End)
	}
	if !vec.Equal(r.Entries[1].Extrude.Anchor, pt(64, 64)) {
		t.Errorf("anchor = %v, want %v", r.Entries[1].Extrude.Anchor, pt(64, 64))
	}
}

func TestMalformedLineSkipped(t *testing.T) {
	half := command.Empty(command.Line)
	half[command.FieldX] = 200
	cmds := []command.Command{sol, line(10, 20)}
	cmds = append(cmds, command.ParseAll([]command.Token{half})...)
	d := NewDecoder()
	for _, c := range cmds {
		if err := d.Step(c); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if !vec.Equal(d.Cursor(), pt(10, 20)) {
		t.Errorf("cursor = %v, want %v", d.Cursor(), pt(10, 20))
	}
	r := d.Finish()
	if len(r.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v, want one", r.Diagnostics)
	}
	dg := r.Diagnostics[0]
	if dg.Index != 2 || dg.Kind != command.Line || !errors.Is(dg.Err, codec.ErrAbsent) || dg.Unknown() {
		t.Errorf("diagnostic = %+v", dg)
	}
	if n := r.Entries[0].Profile.EdgeCount(); n != 1 {
		t.Errorf("edges = %d, want 1", n)
	}
	last := r.Trace[len(r.Trace)-1]
	if !vec.Equal(last.Before, last.After) {
		t.Errorf("skipped command moved the cursor: %+v", last)
	}
}

func TestDoubleExtrude(t *testing.T) {
	cmds := []command.Command{
		sol, command.CircleCmd{CenterX: 128, CenterY: 128, Radius: 40}, ext, ext, eos,
	}
	r := decode(t, cmds)
	if len(r.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(r.Entries))
	}
	if !r.Entries[1].Profile.Empty() || r.Entries[1].Extrude == nil {
		t.Errorf("second entry = %+v, want empty profile with extrude", r.Entries[1])
	}
	r = decode(t, cmds, WithDropEmpty())
	if len(r.Entries) != 1 || r.Entries[0].Profile.Empty() {
		t.Errorf("WithDropEmpty entries = %+v, want one non-empty", r.Entries)
	}
}

func TestEmptyWiresDropped(t *testing.T) {
	r := decode(t, []command.Command{sol, sol, line(1, 2), sol, sol, ext})
	if n := len(r.Entries[0].Profile.Wires); n != 1 {
		t.Errorf("got %d wires, want 1", n)
	}
}

func TestEndOfSequenceEquivalence(t *testing.T) {
	for _, rows := range [][][]int32{samples.Cylinders, samples.Plate} {
		with := decode(t, sample(t, rows))
		without := decode(t, sample(t, rows[:len(rows)-1]))
		if !reflect.DeepEqual(with.Entries, without.Entries) {
			t.Errorf("entries differ with and without end of sequence")
		}
	}
	open := []command.Command{sol, line(1, 2), line(3, 4)}
	a := decode(t, open)
	b := decode(t, append(open, eos))
	if !reflect.DeepEqual(a.Entries, b.Entries) {
		t.Errorf("residual entries differ: %+v vs %+v", a.Entries, b.Entries)
	}
}

func TestCommandsAfterEndIgnored(t *testing.T) {
	r := decode(t, []command.Command{sol, line(1, 2), eos, line(5, 5), ext, sol})
	if r.Ignored != 3 {
		t.Errorf("Ignored = %d, want 3", r.Ignored)
	}
	if len(r.Entries) != 1 || r.Entries[0].Extrude != nil || r.Entries[0].Cmd != -1 {
		t.Errorf("entries = %+v, want one residual entry", r.Entries)
	}
	if len(r.Trace) != 3 {
		t.Errorf("trace has %d steps, want 3", len(r.Trace))
	}
}

func TestExtrudeCount(t *testing.T) {
	tests := []struct {
		rows [][]int32
		want int
	}{
		{samples.Cylinders, 3},
		{samples.Plate, 2},
	}
	for i, tc := range tests {
		r := decode(t, sample(t, tc.rows))
		if got := r.Extrusions(); got != tc.want {
			t.Errorf("Testcase %d. extrusions %d, want %d", i, got, tc.want)
		}
		if len(r.Entries) != tc.want {
			t.Errorf("Testcase %d. entries %d, want %d", i, len(r.Entries), tc.want)
		}
		if len(r.Diagnostics) != 0 {
			t.Errorf("Testcase %d. diagnostics %v", i, r.Diagnostics)
		}
	}
	r := decode(t, sample(t, samples.Cylinders))
	if n := len(r.Entries[1].Profile.Wires); n != 2 {
		t.Errorf("second cylinder has %d wires, want outer and hole", n)
	}
}

func TestCursorChaining(t *testing.T) {
	cmds := sample(t, samples.Plate)
	r := decode(t, cmds)
	var prev vec.Vec3
	for _, s := range r.Trace {
		if !vec.Equal(s.Before, prev) {
			t.Errorf("step %d starts at %v, previous ended at %v", s.Index, s.Before, prev)
		}
		switch c := cmds[s.Index].(type) {
		case command.LineCmd:
			if !vec.Equal(s.After, pt(c.EndX, c.EndY)) {
				t.Errorf("step %d ends at %v, want %v", s.Index, s.After, pt(c.EndX, c.EndY))
			}
		case command.ArcCmd:
			if !vec.Equal(s.After, pt(c.EndX, c.EndY)) {
				t.Errorf("step %d ends at %v, want %v", s.Index, s.After, pt(c.EndX, c.EndY))
			}
		default:
			if !vec.Equal(s.After, s.Before) {
				t.Errorf("step %d (%v) moved the cursor", s.Index, s.Kind)
			}
		}
		prev = s.After
	}
	circle := Circle{Center: vec.XY(1, 1), Radius: 1}
	c := vec.XY(0.5, 0.25)
	if got := circle.Next(c); !vec.Equal(got, c) {
		t.Errorf("circle moved the cursor to %v", got)
	}
}

func TestArcEdge(t *testing.T) {
	r := decode(t, []command.Command{
		sol, line(128, 128), command.ArcCmd{EndX: 140, EndY: 116, CenterX: 64, CenterY: 1},
	})
	a, ok := r.Entries[0].Profile.Wires[0].Edges[1].(Arc)
	if !ok {
		t.Fatalf("edge 1 is not an arc")
	}
	if !vec.Equal(a.Start, pt(128, 128)) || !vec.Equal(a.Via, pt(64, 1)) || !vec.Equal(a.End, pt(140, 116)) {
		t.Errorf("arc = %v", a)
	}
}

func TestUnknownKind(t *testing.T) {
	bogus := command.Empty(command.Kind(7))
	cmds := []command.Command{sol, line(1, 2)}
	cmds = append(cmds, command.ParseAll([]command.Token{bogus})...)
	cmds = append(cmds, line(3, 4), ext)

	r := decode(t, cmds)
	if len(r.Diagnostics) != 1 || !r.Diagnostics[0].Unknown() || r.Diagnostics[0].Index != 2 {
		t.Errorf("diagnostics = %v", r.Diagnostics)
	}
	if n := r.Entries[0].Profile.EdgeCount(); n != 2 {
		t.Errorf("edges = %d, want 2", n)
	}

	if _, err := Decode(cmds, WithUnknownKind(FailUnknown)); !errors.Is(err, command.ErrUnknownKind) {
		t.Errorf("FailUnknown err = %v, want %v", err, command.ErrUnknownKind)
	}
}

func TestMalformedExtrudeKeepsWires(t *testing.T) {
	bad := command.Encode(ext)
	bad[command.FieldE2] = codec.Sentinel
	cmds := []command.Command{sol, line(1, 2)}
	cmds = append(cmds, command.ParseAll([]command.Token{bad})...)
	cmds = append(cmds, sol, line(9, 9), ext)
	r := decode(t, cmds)
	if len(r.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(r.Entries))
	}
	if n := len(r.Entries[0].Profile.Wires); n != 2 {
		t.Errorf("wires = %d, want 2", n)
	}
}

func TestStates(t *testing.T) {
	d := NewDecoder()
	steps := []struct {
		c       command.Command
		state   State
		pending int
	}{
		{sol, Idle, 0},
		{line(1, 1), BuildingWire, 0},
		{line(2, 1), BuildingWire, 0},
		{sol, Idle, 1},
		{command.CircleCmd{CenterX: 3, CenterY: 3, Radius: 3}, BuildingWire, 1},
		{ext, Idle, 0},
		{eos, Terminal, 0},
		{line(5, 5), Terminal, 0},
	}
	for i, s := range steps {
		if err := d.Step(s.c); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if d.State() != s.state || d.Pending() != s.pending {
			t.Errorf("step %d: state %v pending %d, want %v %d", i, d.State(), d.Pending(), s.state, s.pending)
		}
	}
}

func TestDecodeTokens(t *testing.T) {
	ts, err := samples.Tokens("plate")
	if err != nil {
		t.Fatal(err)
	}
	r, err := DecodeTokens(ts)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Entries[1].Profile.EdgeCount(); got != 8 {
		t.Errorf("rounded rectangle has %d edges, want 8", got)
	}
}

func TestWithDomains(t *testing.T) {
	r := decode(t, []command.Command{sol, line(255, 0)}, WithDomains(codec.Domains{codec.X: {Min: 0, Max: 10}}))
	l := r.Entries[0].Profile.Wires[0].Edges[0].(Line)
	if !vec.Equal(l.End, vec.XY(10, -1)) {
		t.Errorf("end = %v, want (10, -1, 0)", l.End)
	}
}
