// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	jsonOut bool
	verbose bool

	check = boolFloat{false, 0}
	input = format("auto")

	configFile string
	outDir     string
	sampleList string
)

// boolFloat is a flag that may be given alone or with a value.
type boolFloat struct {
	set bool
	num float64
}

func (b *boolFloat) IsBoolFlag() bool {
	// We can not support both "-flag" and "-flag 0.1"
	// This allows "-flag", and "-flag=0.1"
	// and also "-flag=true" and "-flag=false"
	// but not "-flag 0.1"
	return true
}

func (b *boolFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		v, err := strconv.ParseBool(s)
		b.set = v
		return err
	}
	b.set = true
	b.num = v
	return nil
}

func (b *boolFloat) String() string {
	return fmt.Sprintf("Set: %v, Num: %v", b.set, b.num)
}

type format string

var formats = []string{"auto", "bin", "text"}

func (f *format) Set(s string) error {
	for _, k := range formats {
		if s == k {
			*f = format(s)
			return nil
		}
	}
	return errors.Errorf("format must be one of %s", strings.Join(formats, ", "))
}

func (f *format) String() string {
	return string(*f)
}

func init() {
	flag.BoolVar(&jsonOut, "json", false, "write payloads as protojson instead of binary protobuf")
	flag.BoolVar(&verbose, "v", false, "log every skipped command")

	flag.Var(&check, "check", "build the decoded profiles with the checking kernel, optional tolerance")
	flag.Var(&input, "format", "input format: auto, bin or text")

	flag.StringVar(&configFile, "config", "", "YAML configuration file")
	flag.StringVar(&outDir, "out", "", "directory for payload files, none are written if empty")
	flag.StringVar(&sampleList, "sample", "", "comma separated built-in programs to decode")
}

func JSON() bool {
	return jsonOut
}

func Verbose() bool {
	return verbose
}

func Check() bool {
	return check.set
}

// CheckTolerance returns the tolerance given to -check, 0 if none was.
func CheckTolerance() float32 {
	return float32(check.num)
}

func Format() string {
	return string(input)
}

func ConfigFile() string {
	return configFile
}

func OutDir() string {
	return outDir
}

func Samples() []string {
	if sampleList == "" {
		return nil
	}
	var r []string
	for _, s := range strings.Split(sampleList, ",") {
		if s = strings.TrimSpace(s); s != "" {
			r = append(r, s)
		}
	}
	return r
}
