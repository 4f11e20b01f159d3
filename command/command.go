// SPDX-License-Identifier: GPL-2.0-or-later

// Package command turns fixed-width tokens into typed commands.
//
// Every kind has its own struct holding exactly the fields it consumes, so
// a Line that exists always has both coordinates. Tokens that cannot be
// typed become an Invalid that carries the reason.
package command

import (
	"fmt"

	"seq2cad/codec"

	"github.com/pkg/errors"
)

var ErrUnknownKind = errors.New("unknown command kind")

// MalformedError reports a required field that is absent or off the grid.
type MalformedError struct {
	Kind  Kind
	Field int
	Err   error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%v: field %d: %v", e.Kind, e.Field, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

type Command interface {
	Kind() Kind
}

type LineCmd struct {
	EndX, EndY uint8
}

type ArcCmd struct {
	EndX, EndY       uint8
	CenterX, CenterY uint8
}

type CircleCmd struct {
	CenterX, CenterY uint8
	Radius           uint8
}

type EndOfSequenceCmd struct{}

type StartOfLoopCmd struct{}

type ExtrudeCmd struct {
	Theta, Phi, Gamma uint8
	PX, PY, PZ        uint8
	Scale             uint8
	E1, E2            uint8
	// boolean operation and plane reference selectors
	Op, Plane uint8
}

// Invalid stands in for a token that could not be typed.
type Invalid struct {
	Token Token
	Err   error
}

func (LineCmd) Kind() Kind          { return Line }
func (ArcCmd) Kind() Kind           { return Arc }
func (CircleCmd) Kind() Kind        { return Circle }
func (EndOfSequenceCmd) Kind() Kind { return EndOfSequence }
func (StartOfLoopCmd) Kind() Kind   { return StartOfLoop }
func (ExtrudeCmd) Kind() Kind       { return Extrude }
func (c Invalid) Kind() Kind        { return c.Token.Kind() }

// fields reads the listed slots of t into dst, stopping at the first
// slot that is not a grid value.
func fields(t Token, idx []int, dst ...*uint8) error {
	for i, f := range idx {
		v, err := codec.Field(t[f])
		if err != nil {
			return &MalformedError{Kind: t.Kind(), Field: f, Err: err}
		}
		*dst[i] = v
	}
	return nil
}

// Parse types a token.
func Parse(t Token) (Command, error) {
	switch k := t.Kind(); k {
	default:
		return nil, errors.Wrapf(ErrUnknownKind, "kind %d", int32(k))
	case Line:
		c := LineCmd{}
		err := fields(t, []int{FieldX, FieldY}, &c.EndX, &c.EndY)
		if err != nil {
			return nil, err
		}
		return c, nil
	case Arc:
		c := ArcCmd{}
		err := fields(t, []int{FieldX, FieldY, FieldArcCenterX, FieldArcCenterY},
			&c.EndX, &c.EndY, &c.CenterX, &c.CenterY)
		if err != nil {
			return nil, err
		}
		return c, nil
	case Circle:
		c := CircleCmd{}
		err := fields(t, []int{FieldX, FieldY, FieldRadius},
			&c.CenterX, &c.CenterY, &c.Radius)
		if err != nil {
			return nil, err
		}
		return c, nil
	case EndOfSequence:
		return EndOfSequenceCmd{}, nil
	case StartOfLoop:
		return StartOfLoopCmd{}, nil
	case Extrude:
		c := ExtrudeCmd{}
		err := fields(t, []int{
			FieldTheta, FieldPhi, FieldGamma,
			FieldPX, FieldPY, FieldPZ,
			FieldScale, FieldE1, FieldE2,
			FieldOp, FieldPlane,
		},
			&c.Theta, &c.Phi, &c.Gamma,
			&c.PX, &c.PY, &c.PZ,
			&c.Scale, &c.E1, &c.E2,
			&c.Op, &c.Plane)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// ParseAll types every token. It never fails: tokens Parse rejects are
// returned as Invalid at their position.
func ParseAll(ts []Token) []Command {
	r := make([]Command, 0, len(ts))
	for _, t := range ts {
		c, err := Parse(t)
		if err != nil {
			c = Invalid{Token: t, Err: err}
		}
		r = append(r, c)
	}
	return r
}

// Encode is the inverse of Parse. Slots a kind does not consume hold the
// sentinel.
func Encode(c Command) Token {
	t := Empty(c.Kind())
	set := func(f int, v uint8) {
		t[f] = int32(v)
	}
	switch c := c.(type) {
	case LineCmd:
		set(FieldX, c.EndX)
		set(FieldY, c.EndY)
	case ArcCmd:
		set(FieldX, c.EndX)
		set(FieldY, c.EndY)
		set(FieldArcCenterX, c.CenterX)
		set(FieldArcCenterY, c.CenterY)
	case CircleCmd:
		set(FieldX, c.CenterX)
		set(FieldY, c.CenterY)
		set(FieldRadius, c.Radius)
	case ExtrudeCmd:
		set(FieldTheta, c.Theta)
		set(FieldPhi, c.Phi)
		set(FieldGamma, c.Gamma)
		set(FieldPX, c.PX)
		set(FieldPY, c.PY)
		set(FieldPZ, c.PZ)
		set(FieldScale, c.Scale)
		set(FieldE1, c.E1)
		set(FieldE2, c.E2)
		set(FieldOp, c.Op)
		set(FieldPlane, c.Plane)
	case Invalid:
		return c.Token
	}
	return t
}
