// SPDX-License-Identifier: GPL-2.0-or-later

// Package tokenio reads and writes token programs.
//
// The binary layout is 17 little-endian int16 values per command, in token
// field order, with no header. The text layout is one command per line.
package tokenio

import (
	"bytes"
	"encoding/binary"

	"seq2cad/command"

	"github.com/pkg/errors"
)

// CommandSize is the size of one command in the binary layout.
const CommandSize = command.Width * 2

var ErrTruncated = errors.New("truncated command")

type Reader struct {
	r *bytes.Reader
}

func NewReader(data []byte) *Reader {
	return &Reader{bytes.NewReader(data)}
}

func (q *Reader) ReadInt16() (int16, error) {
	var r int16
	err := binary.Read(q.r, binary.LittleEndian, &r)
	return r, err
}

// ReadToken reads one command.
func (q *Reader) ReadToken() (command.Token, error) {
	var raw [command.Width]int16
	var t command.Token
	if q.Len() < CommandSize {
		return t, errors.Wrapf(ErrTruncated, "%d bytes left", q.Len())
	}
	if err := binary.Read(q.r, binary.LittleEndian, &raw); err != nil {
		return t, err
	}
	for i, v := range raw {
		t[i] = int32(v)
	}
	return t, nil
}

// Len returns the number of bytes of the unread portion of the slice.
func (q *Reader) Len() int {
	return q.r.Len()
}

// ReadProgram reads every command of data. A length that is not a whole
// number of commands is rejected before any token is returned.
func ReadProgram(data []byte) ([]command.Token, error) {
	if rest := len(data) % CommandSize; rest != 0 {
		return nil, errors.Wrapf(ErrTruncated, "%d trailing bytes", rest)
	}
	q := NewReader(data)
	r := make([]command.Token, 0, len(data)/CommandSize)
	for q.Len() != 0 {
		t, err := q.ReadToken()
		if err != nil {
			return nil, errors.Wrapf(err, "command %d", len(r))
		}
		r = append(r, t)
	}
	return r, nil
}
