// SPDX-License-Identifier: GPL-2.0-or-later

package sketch

import (
	"seq2cad/codec"
)

// UnknownPolicy decides what happens to a command whose kind is outside
// the enum.
type UnknownPolicy int

const (
	// SkipUnknown records a diagnostic and carries on.
	SkipUnknown UnknownPolicy = iota
	// FailUnknown aborts the decode.
	FailUnknown
)

func (p UnknownPolicy) String() string {
	switch p {
	case SkipUnknown:
		return "skip"
	case FailUnknown:
		return "fail"
	}
	return "invalid"
}

type options struct {
	unknown   UnknownPolicy
	dropEmpty bool
	domains   codec.Domains
}

type Option func(*options)

func WithUnknownKind(p UnknownPolicy) Option {
	return func(o *options) {
		o.unknown = p
	}
}

// WithDropEmpty suppresses entries for extrudes that have no wires to
// lift. Without it every extrude yields an entry.
func WithDropEmpty() Option {
	return func(o *options) {
		o.dropEmpty = true
	}
}

// WithDomains replaces the parameter ranges. Parameters missing from ds
// keep their defaults.
func WithDomains(ds codec.Domains) Option {
	return func(o *options) {
		o.domains = ds.Merge()
	}
}

func newOptions(opts []Option) options {
	o := options{
		domains: codec.DefaultDomains(),
	}
	for _, f := range opts {
		f(&o)
	}
	return o
}
