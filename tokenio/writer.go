// SPDX-License-Identifier: GPL-2.0-or-later

package tokenio

import (
	"bytes"
	"encoding/binary"
	"math"

	"seq2cad/command"

	"github.com/pkg/errors"
)

type Writer struct {
	buf bytes.Buffer
}

func (m *Writer) Bytes() []byte {
	return m.buf.Bytes()
}

func (m *Writer) Len() int {
	return m.buf.Len()
}

func (m *Writer) WriteToken(t command.Token) error {
	var raw [command.Width]int16
	for i, v := range t {
		if v < math.MinInt16 || v > math.MaxInt16 {
			return errors.Errorf("field %d: %d does not fit 16 bits", i, v)
		}
		raw[i] = int16(v)
	}
	return binary.Write(&m.buf, binary.LittleEndian, raw)
}

// WriteProgram encodes ts in the binary layout.
func WriteProgram(ts []command.Token) ([]byte, error) {
	m := &Writer{}
	for i, t := range ts {
		if err := m.WriteToken(t); err != nil {
			return nil, errors.Wrapf(err, "command %d", i)
		}
	}
	return m.Bytes(), nil
}
