// SPDX-License-Identifier: GPL-2.0-or-later

package tokenio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"seq2cad/command"

	"github.com/pkg/errors"
)

// ParseText reads one command per line. Numbers may be separated by
// whitespace or commas; brackets are ignored and '#' starts a comment, so
// array literals such as
//
//	[4, -1, -1, ...],  # <SOL>
//
// can be pasted as is. Blank lines are skipped.
func ParseText(r io.Reader) ([]command.Token, error) {
	var rows [][]int32
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		txt := s.Text()
		if i := strings.IndexByte(txt, '#'); i >= 0 {
			txt = txt[:i]
		}
		f := strings.FieldsFunc(txt, func(c rune) bool {
			switch c {
			case ' ', '\t', ',', '[', ']', '\r':
				return true
			}
			return false
		})
		if len(f) == 0 {
			continue
		}
		row := make([]int32, 0, len(f))
		for _, n := range f {
			v, err := strconv.ParseInt(n, 10, 32)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			row = append(row, int32(v))
		}
		rows = append(rows, row)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return command.FromRows(rows)
}

// WriteText writes ts in the layout ParseText reads.
func WriteText(w io.Writer, ts []command.Token) error {
	for _, t := range ts {
		if _, err := fmt.Fprintf(w, "%v  # %v\n", t, t.Kind()); err != nil {
			return err
		}
	}
	return nil
}
