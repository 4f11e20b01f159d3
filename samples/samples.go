// SPDX-License-Identifier: GPL-2.0-or-later

// Package samples holds example token programs.
package samples

import (
	"sort"

	"seq2cad/command"

	"github.com/pkg/errors"
)

var (
	// Cylinders stacks three extruded circles, the second with a hole.
	Cylinders = [][]int32{
		{4, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{2, 176, 128, -1, -1, 48, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{5, -1, -1, -1, -1, -1, 128, 128, 128, 119, 128, 128, 18, 220, 128, 0, 0},
		{4, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{2, 176, 128, -1, -1, 48, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{4, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{2, 176, 128, -1, -1, 35, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{5, -1, -1, -1, -1, -1, 128, 128, 255, 140, 128, 220, 24, 132, 128, 1, 0},
		{4, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{2, 176, 128, -1, -1, 48, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{5, -1, -1, -1, -1, -1, 128, 128, 255, 137, 128, 220, 18, 132, 128, 1, 0},
		{3, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
	}

	// Plate is a square plate followed by a rounded rectangle of lines and
	// arcs.
	Plate = [][]int32{
		{4, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{0, 214, 128, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{0, 214, 223, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{0, 128, 223, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{0, 128, 128, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{5, -1, -1, -1, -1, -1, 192, 192, 64, 41, 128, 224, 192, 163, 128, 0, 0},
		{4, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{1, 140, 116, 64, 1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{0, 211, 116, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{1, 223, 128, 64, 1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{0, 223, 211, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{1, 211, 223, 64, 1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{0, 140, 223, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{1, 128, 211, 64, 1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{0, 128, 128, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
		{5, -1, -1, -1, -1, -1, 192, 192, 192, 198, 163, 67, 140, 121, 128, 2, 0},
		{3, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1},
	}

	byName = map[string][][]int32{
		"cylinders": Cylinders,
		"plate":     Plate,
	}
)

func Names() []string {
	r := make([]string, 0, len(byName))
	for n := range byName {
		r = append(r, n)
	}
	sort.Strings(r)
	return r
}

// Tokens returns the named program.
func Tokens(name string) ([]command.Token, error) {
	rows, ok := byName[name]
	if !ok {
		return nil, errors.Errorf("no sample %q, have %v", name, Names())
	}
	return command.FromRows(rows)
}
