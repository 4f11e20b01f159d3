// SPDX-License-Identifier: GPL-2.0-or-later

package tokenio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"seq2cad/command"

	"github.com/pkg/errors"
)

// DetectFormat picks "bin" for .bin and .tok files and "text" otherwise.
func DetectFormat(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".bin", ".tok":
		return "bin"
	}
	return "text"
}

// ReadFile loads a program. format is "bin", "text" or "auto".
func ReadFile(filename, format string) ([]command.Token, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if format == "auto" || format == "" {
		format = DetectFormat(filename)
	}
	var ts []command.Token
	switch format {
	case "bin":
		ts, err = ReadProgram(data)
	case "text":
		ts, err = ParseText(bytes.NewReader(data))
	default:
		return nil, errors.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s", filename)
	}
	return ts, nil
}
