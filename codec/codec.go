// SPDX-License-Identifier: GPL-2.0-or-later

// Package codec maps 8-bit quantized parameter values back onto the real
// ranges the upstream model was trained on, and forward again.
package codec

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

const (
	// Sentinel marks a field that does not apply to a command kind.
	Sentinel = -1
	// Levels is the largest value of the quantization grid.
	Levels = 255
)

var (
	ErrAbsent     = errors.New("field absent")
	ErrOutOfRange = errors.New("field outside quantization grid")
)

// Domain is the closed real interval a quantized parameter is spread over.
type Domain struct {
	Min, Max float32
}

func (d Domain) String() string {
	return fmt.Sprintf("[%g, %g]", d.Min, d.Max)
}

// Step is the real distance between two neighbouring grid values.
func (d Domain) Step() float32 {
	return (d.Max - d.Min) / Levels
}

// Denormalize computes min + (max-min) * v/255.
// The interpolation form keeps both ends exact: 0 maps to Min and 255 to Max.
func Denormalize(v uint8, d Domain) float32 {
	t := float32(v) / Levels
	return d.Min*(1-t) + d.Max*t
}

// Quantize is the inverse of Denormalize. Values outside the domain are
// clamped onto the grid.
func Quantize(x float32, d Domain) uint8 {
	if d.Max == d.Min {
		return 0
	}
	t := (x - d.Min) / (d.Max - d.Min) * Levels
	return uint8(clamp(0, math32.Floor(t+0.5), Levels))
}

// IsPresent is false exactly for the sentinel.
func IsPresent(v int32) bool {
	return v != Sentinel
}

// Field checks a raw token slot and returns its grid value.
func Field(v int32) (uint8, error) {
	if !IsPresent(v) {
		return 0, ErrAbsent
	}
	if v < 0 || v > Levels {
		return 0, errors.Wrapf(ErrOutOfRange, "value %d", v)
	}
	return uint8(v), nil
}

type number interface {
	int64 | float64 | float32 | int
}

func clamp[K number](min, val, max K) K {
	if min > val {
		return min
	} else if max < val {
		return max
	}
	return val
}
