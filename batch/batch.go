// SPDX-License-Identifier: GPL-2.0-or-later

// Package batch decodes many independent programs in parallel.
package batch

import (
	"context"

	"seq2cad/command"
	"seq2cad/sketch"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Item is the outcome of one program. Err is set when the decoder refused
// the program; the other programs are unaffected.
type Item struct {
	Index  int
	ID     uuid.UUID
	Result *sketch.Result
	Err    error
}

// Decode runs one decoder per program with at most workers running at once.
// Items come back in program order. The only error returned is the
// context's, once it is cancelled; programs not started by then are left
// with a nil Result and the context error.
func Decode(parent context.Context, programs [][]command.Token, workers int, opts ...sketch.Option) ([]Item, error) {
	items := make([]Item, len(programs))
	g, ctx := errgroup.WithContext(parent)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, p := range programs {
		items[i] = Item{Index: i, ID: uuid.Must(uuid.NewV7())}
		if err := ctx.Err(); err != nil {
			items[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				items[i].Err = err
				return err
			}
			items[i].Result, items[i].Err = sketch.DecodeTokens(p, opts...)
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = parent.Err()
	}
	return items, err
}
