// SPDX-License-Identifier: GPL-2.0-or-later

// Package config handles the decoder configuration file.
//
// The configuration is a YAML file with the following sections:
//   - domains: real ranges overriding the parameter defaults
//   - decoder: unknown command policy and empty profile handling
//   - kernel: tolerance of the checking kernel
//   - batch: number of programs decoded in parallel
//
// Example:
//
//	domains:
//	  scale: [0, 4]
//	decoder:
//	  unknown_kind: fail
//	  drop_empty: true
//	kernel:
//	  tolerance: 0.005
//	batch:
//	  workers: 8
package config

import (
	"os"
	"runtime"

	"seq2cad/codec"
	"seq2cad/sketch"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Domains map[string][]float32 `yaml:"domains"`
	Decoder DecoderConfig        `yaml:"decoder"`
	Kernel  KernelConfig         `yaml:"kernel"`
	Batch   BatchConfig          `yaml:"batch"`
}

type DecoderConfig struct {
	// UnknownKind is "skip" or "fail". Default: "skip".
	UnknownKind string `yaml:"unknown_kind"`

	// DropEmpty drops extrudes that have no wires instead of emitting
	// an empty profile.
	DropEmpty bool `yaml:"drop_empty"`
}

type KernelConfig struct {
	// Tolerance is the distance under which two points coincide.
	// Default: one coordinate quantization step.
	Tolerance float32 `yaml:"tolerance"`
}

type BatchConfig struct {
	// Workers bounds parallel decoding. Default: number of CPUs.
	Workers int `yaml:"workers"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: read file")
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}
	return c, nil
}

// Parse decodes and validates YAML configuration data.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "parse yaml")
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Decoder.UnknownKind == "" {
		c.Decoder.UnknownKind = sketch.SkipUnknown.String()
	}
	if c.Kernel.Tolerance == 0 {
		c.Kernel.Tolerance = codec.DefaultDomains().Get(codec.X).Step()
	}
	if c.Batch.Workers == 0 {
		c.Batch.Workers = runtime.NumCPU()
	}
}

func (c *Config) Validate() error {
	if _, err := c.ParamDomains(); err != nil {
		return err
	}
	if _, err := c.UnknownPolicy(); err != nil {
		return err
	}
	if c.Kernel.Tolerance < 0 {
		return errors.Errorf("kernel.tolerance must be positive, got %g", c.Kernel.Tolerance)
	}
	if c.Batch.Workers < 0 {
		return errors.Errorf("batch.workers must be positive, got %d", c.Batch.Workers)
	}
	return nil
}

// ParamDomains converts the domains section.
func (c *Config) ParamDomains() (codec.Domains, error) {
	ds := codec.Domains{}
	for name, r := range c.Domains {
		if len(r) != 2 {
			return nil, errors.Errorf("domains.%s: want [min, max], got %v", name, r)
		}
		ds[codec.Param(name)] = codec.Domain{Min: r[0], Max: r[1]}
	}
	if err := ds.Validate(); err != nil {
		return nil, errors.Wrap(err, "domains")
	}
	return ds, nil
}

func (c *Config) UnknownPolicy() (sketch.UnknownPolicy, error) {
	switch c.Decoder.UnknownKind {
	case sketch.SkipUnknown.String():
		return sketch.SkipUnknown, nil
	case sketch.FailUnknown.String():
		return sketch.FailUnknown, nil
	}
	return 0, errors.Errorf("decoder.unknown_kind: %q is neither skip nor fail", c.Decoder.UnknownKind)
}

// DecodeOptions turns the configuration into decoder options. The
// configuration must have been validated.
func (c *Config) DecodeOptions() []sketch.Option {
	ds, _ := c.ParamDomains()
	p, _ := c.UnknownPolicy()
	opts := []sketch.Option{
		sketch.WithDomains(ds),
		sketch.WithUnknownKind(p),
	}
	if c.Decoder.DropEmpty {
		opts = append(opts, sketch.WithDropEmpty())
	}
	return opts
}
