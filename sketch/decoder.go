// SPDX-License-Identifier: GPL-2.0-or-later

// Package sketch decodes a command program into profiles and extrusions.
//
// The decoder is a single pass state machine. Edge commands chain from a
// shared cursor into the open wire, loop starts close the open wire, and
// every extrude flushes the closed wires as one profile anchored at the
// cursor. Malformed commands are skipped and reported with their index;
// they never stop the pass.
package sketch

import (
	"fmt"

	"seq2cad/codec"
	"seq2cad/command"
	"seq2cad/conlog"
	"seq2cad/math/vec"

	"github.com/pkg/errors"
)

type State int

const (
	Idle State = iota
	BuildingWire
	Terminal
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case BuildingWire:
		return "building"
	case Terminal:
		return "terminal"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Diagnostic is a command that was skipped.
type Diagnostic struct {
	Index int
	Kind  command.Kind
	Err   error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("command %d (%v): %v", d.Index, d.Kind, d.Err)
}

// Unknown reports whether the command was skipped for its kind rather than
// for its fields.
func (d Diagnostic) Unknown() bool {
	return errors.Is(d.Err, command.ErrUnknownKind)
}

// CursorStep records the cursor around one processed command.
type CursorStep struct {
	Index         int
	Kind          command.Kind
	Before, After vec.Vec3
}

type Result struct {
	Entries     []Entry
	Trace       []CursorStep
	Diagnostics []Diagnostic
	// Ignored counts commands after the end of sequence.
	Ignored int
}

// Extrusions returns the number of entries that carry extrude parameters.
func (r *Result) Extrusions() int {
	n := 0
	for _, e := range r.Entries {
		if e.Extrude != nil {
			n++
		}
	}
	return n
}

type Decoder struct {
	opts    options
	idx     int
	state   State
	cursor  vec.Vec3
	current Wire
	pending []Wire
	res     Result
}

func NewDecoder(opts ...Option) *Decoder {
	return &Decoder{opts: newOptions(opts)}
}

func (d *Decoder) State() State {
	return d.state
}

func (d *Decoder) Cursor() vec.Vec3 {
	return d.cursor
}

// Pending returns the number of closed wires waiting for an extrude.
func (d *Decoder) Pending() int {
	return len(d.pending)
}

func (d *Decoder) denorm(p codec.Param, v uint8) float32 {
	return d.opts.domains.Denormalize(p, v)
}

func (d *Decoder) point(x, y uint8) vec.Vec3 {
	return vec.XY(d.denorm(codec.X, x), d.denorm(codec.Y, y))
}

func (d *Decoder) closeWire() {
	if !d.current.Empty() {
		d.pending = append(d.pending, d.current)
	}
	d.current = Wire{}
	d.state = Idle
}

func (d *Decoder) addEdge(e Edge) {
	d.current.Edges = append(d.current.Edges, e)
	d.cursor = e.Next(d.cursor)
	d.state = BuildingWire
}

func (d *Decoder) skip(c command.Command, err error) {
	conlog.DPrintf("command %d (%v) skipped: %v\n", d.idx, c.Kind(), err)
	d.res.Diagnostics = append(d.res.Diagnostics, Diagnostic{
		Index: d.idx,
		Kind:  c.Kind(),
		Err:   err,
	})
}

func (d *Decoder) extrude(c command.ExtrudeCmd) {
	d.closeWire()
	p := &ExtrudeParams{
		Theta:  d.denorm(codec.Theta, c.Theta),
		Phi:    d.denorm(codec.Phi, c.Phi),
		Gamma:  d.denorm(codec.Gamma, c.Gamma),
		PX:     d.denorm(codec.PX, c.PX),
		PY:     d.denorm(codec.PY, c.PY),
		PZ:     d.denorm(codec.PZ, c.PZ),
		Scale:  d.denorm(codec.Scale, c.Scale),
		E1:     d.denorm(codec.Extent, c.E1),
		E2:     d.denorm(codec.Extent, c.E2),
		Op:     c.Op,
		Plane:  c.Plane,
		Anchor: d.cursor,
	}
	wires := d.pending
	d.pending = nil
	if len(wires) == 0 && d.opts.dropEmpty {
		conlog.DPrintf("command %d: extrude without wires dropped\n", d.idx)
		return
	}
	d.res.Entries = append(d.res.Entries, Entry{
		Profile: Profile{Wires: wires},
		Extrude: p,
		Cmd:     d.idx,
	})
}

// Step feeds the next command. It only returns an error for an unknown
// kind under FailUnknown; everything else is absorbed into the result.
func (d *Decoder) Step(c command.Command) error {
	if d.state == Terminal {
		d.res.Ignored++
		d.idx++
		return nil
	}
	before := d.cursor
	switch c := c.(type) {
	case command.StartOfLoopCmd:
		d.closeWire()
	case command.LineCmd:
		d.addEdge(Line{
			Start: d.cursor,
			End:   d.point(c.EndX, c.EndY),
			Cmd:   d.idx,
		})
	case command.ArcCmd:
		d.addEdge(Arc{
			Start: d.cursor,
			Via:   d.point(c.CenterX, c.CenterY),
			End:   d.point(c.EndX, c.EndY),
			Cmd:   d.idx,
		})
	case command.CircleCmd:
		d.addEdge(Circle{
			Center: d.point(c.CenterX, c.CenterY),
			Radius: d.denorm(codec.Radius, c.Radius),
			Cmd:    d.idx,
		})
	case command.ExtrudeCmd:
		d.extrude(c)
	case command.EndOfSequenceCmd:
		d.state = Terminal
	case command.Invalid:
		if errors.Is(c.Err, command.ErrUnknownKind) && d.opts.unknown == FailUnknown {
			return errors.Wrapf(c.Err, "command %d", d.idx)
		}
		d.skip(c, c.Err)
	default:
		d.skip(c, errors.Errorf("unsupported command %T", c))
	}
	d.res.Trace = append(d.res.Trace, CursorStep{
		Index:  d.idx,
		Kind:   c.Kind(),
		Before: before,
		After:  d.cursor,
	})
	d.idx++
	return nil
}

// Finish ends the program as if an end of sequence had been read and
// returns the result. The open wire and any closed wires without an
// extrude become a final entry without extrude parameters.
func (d *Decoder) Finish() *Result {
	d.closeWire()
	d.state = Terminal
	if len(d.pending) != 0 {
		d.res.Entries = append(d.res.Entries, Entry{
			Profile: Profile{Wires: d.pending},
			Cmd:     -1,
		})
		d.pending = nil
	}
	r := d.res
	return &r
}

// Decode runs a fresh decoder over cmds.
func Decode(cmds []command.Command, opts ...Option) (*Result, error) {
	d := NewDecoder(opts...)
	for _, c := range cmds {
		if err := d.Step(c); err != nil {
			return nil, err
		}
	}
	return d.Finish(), nil
}

// DecodeTokens types ts and decodes them.
func DecodeTokens(ts []command.Token, opts ...Option) (*Result, error) {
	return Decode(command.ParseAll(ts), opts...)
}
