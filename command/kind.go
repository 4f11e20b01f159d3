// SPDX-License-Identifier: GPL-2.0-or-later

package command

// Kind is field 0 of a token.
type Kind int32

const (
	Line          Kind = 0
	Arc           Kind = 1
	Circle        Kind = 2
	EndOfSequence Kind = 3
	// [SOL] closes the open wire and starts a new one
	StartOfLoop Kind = 4
	Extrude     Kind = 5
)

var (
	kindStrings = []string{
		"line",   // [x] [y] endpoint
		"arc",    // [x] [y] endpoint [cx] [cy] center
		"circle", // [x] [y] center [r] radius
		"eos",
		"sol",
		"extrude", // [theta] [phi] [gamma] [px] [py] [pz] [s] [e1] [e2] [b] [u]
	}
	kindArity = []int{2, 4, 3, 0, 0, 11}
)

func (k Kind) Valid() bool {
	return k >= Line && k <= Extrude
}

func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindStrings[k]
}

// Arity returns the number of parameter slots a kind consumes.
func (k Kind) Arity() int {
	if !k.Valid() {
		return 0
	}
	return kindArity[k]
}

// Edge reports whether the kind appends an edge to the open wire.
func (k Kind) Edge() bool {
	return k == Line || k == Arc || k == Circle
}
