// SPDX-License-Identifier: GPL-2.0-or-later

package command

import (
	"fmt"
	"strings"

	"seq2cad/codec"

	"github.com/pkg/errors"
)

// Width is the number of fields of a token.
const Width = 17

// Field positions inside a token.
const (
	FieldKind = iota
	FieldX
	FieldY
	FieldArcCenterX
	FieldArcCenterY
	FieldRadius
	FieldTheta
	FieldPhi
	FieldGamma
	FieldPX
	FieldPY
	FieldPZ
	FieldScale
	FieldE1
	FieldE2
	FieldOp
	FieldPlane
)

var ErrWidth = errors.New("token has wrong number of fields")

// Token is one fixed-width entry of a program.
type Token [Width]int32

// Empty returns a token of kind k with every slot set to the sentinel.
func Empty(k Kind) Token {
	var t Token
	for i := range t {
		t[i] = codec.Sentinel
	}
	t[FieldKind] = int32(k)
	return t
}

func (t Token) Kind() Kind {
	return Kind(t[FieldKind])
}

func (t Token) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range t {
		if i != 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d", v)
	}
	sb.WriteByte(']')
	return sb.String()
}

// FromRow converts one row of integers into a token.
func FromRow(row []int32) (Token, error) {
	var t Token
	if len(row) != Width {
		return t, errors.Wrapf(ErrWidth, "got %d, want %d", len(row), Width)
	}
	copy(t[:], row)
	return t, nil
}

// FromRows converts a whole program. Any row of the wrong width rejects the
// program before anything is decoded.
func FromRows(rows [][]int32) ([]Token, error) {
	r := make([]Token, 0, len(rows))
	for i, row := range rows {
		t, err := FromRow(row)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		r = append(r, t)
	}
	return r, nil
}
