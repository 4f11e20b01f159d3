// SPDX-License-Identifier: GPL-2.0-or-later

// Package export serializes a decoded program into the payload handed to
// the geometry kernel process.
//
// The payload is a google.protobuf.Struct:
//
//	id:          run id (UUIDv7)
//	source:      where the program came from
//	entries:     [{cmd, wires: [[edge...]...], extrude: {...}}]
//	diagnostics: [{index, kind, error}]
//
// Points are [x, y, z] lists.
package export

import (
	"os"

	"seq2cad/math/vec"
	"seq2cad/sketch"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type Meta struct {
	ID     uuid.UUID
	Source string
}

func NewMeta(source string) Meta {
	return Meta{
		ID:     uuid.Must(uuid.NewV7()),
		Source: source,
	}
}

func point(v vec.Vec3) []interface{} {
	return []interface{}{float64(v.X), float64(v.Y), float64(v.Z)}
}

func edge(e sketch.Edge) map[string]interface{} {
	m := map[string]interface{}{"cmd": e.Command()}
	switch e := e.(type) {
	case sketch.Line:
		m["type"] = "line"
		m["start"] = point(e.Start)
		m["end"] = point(e.End)
	case sketch.Arc:
		m["type"] = "arc"
		m["start"] = point(e.Start)
		m["via"] = point(e.Via)
		m["end"] = point(e.End)
	case sketch.Circle:
		m["type"] = "circle"
		m["center"] = point(e.Center)
		m["radius"] = float64(e.Radius)
	}
	return m
}

func extrude(p *sketch.ExtrudeParams) map[string]interface{} {
	pl := p.Placement()
	return map[string]interface{}{
		"theta":     float64(p.Theta),
		"phi":       float64(p.Phi),
		"gamma":     float64(p.Gamma),
		"px":        float64(p.PX),
		"py":        float64(p.PY),
		"pz":        float64(p.PZ),
		"scale":     float64(p.Scale),
		"e1":        float64(p.E1),
		"e2":        float64(p.E2),
		"op":        int(p.Op),
		"plane":     int(p.Plane),
		"anchor":    point(p.Anchor),
		"direction": point(pl.Direction()),
		"distance":  float64(pl.Distance()),
	}
}

// Payload converts res into a Struct.
func Payload(res *sketch.Result, meta Meta) (*structpb.Struct, error) {
	entries := make([]interface{}, 0, len(res.Entries))
	for _, en := range res.Entries {
		wires := make([]interface{}, 0, len(en.Profile.Wires))
		for _, w := range en.Profile.Wires {
			edges := make([]interface{}, 0, len(w.Edges))
			for _, e := range w.Edges {
				edges = append(edges, edge(e))
			}
			wires = append(wires, edges)
		}
		m := map[string]interface{}{
			"cmd":   en.Cmd,
			"wires": wires,
		}
		if en.Extrude != nil {
			m["extrude"] = extrude(en.Extrude)
		}
		entries = append(entries, m)
	}
	diags := make([]interface{}, 0, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		diags = append(diags, map[string]interface{}{
			"index": d.Index,
			"kind":  d.Kind.String(),
			"error": d.Err.Error(),
		})
	}
	s, err := structpb.NewStruct(map[string]interface{}{
		"id":          meta.ID.String(),
		"source":      meta.Source,
		"entries":     entries,
		"diagnostics": diags,
		"ignored":     res.Ignored,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build payload")
	}
	return s, nil
}

func Marshal(res *sketch.Result, meta Meta) ([]byte, error) {
	s, err := Payload(res, meta)
	if err != nil {
		return nil, err
	}
	out, err := proto.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode payload")
	}
	return out, nil
}

func MarshalJSON(res *sketch.Result, meta Meta) ([]byte, error) {
	s, err := Payload(res, meta)
	if err != nil {
		return nil, err
	}
	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode payload")
	}
	return out, nil
}

// Unmarshal decodes a binary payload.
func Unmarshal(data []byte) (*structpb.Struct, error) {
	s := &structpb.Struct{}
	if err := proto.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "failed to decode payload")
	}
	return s, nil
}

// Save writes a payload file.
func Save(filename string, data []byte) error {
	if err := os.WriteFile(filename, data, 0660); err != nil {
		return errors.Wrapf(err, "failed to write %s", filename)
	}
	return nil
}
