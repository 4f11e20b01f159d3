// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"seq2cad/batch"
	"seq2cad/command"
	"seq2cad/commandline"
	"seq2cad/config"
	"seq2cad/conlog"
	"seq2cad/export"
	"seq2cad/kernel"
	"seq2cad/kernel/check"
	"seq2cad/samples"
	"seq2cad/tokenio"

	"github.com/pkg/errors"
)

type program struct {
	name   string
	tokens []command.Token
}

func loadPrograms() ([]program, error) {
	var ps []program
	for _, n := range commandline.Samples() {
		ts, err := samples.Tokens(n)
		if err != nil {
			return nil, err
		}
		ps = append(ps, program{name: n, tokens: ts})
	}
	for _, fn := range flag.Args() {
		ts, err := tokenio.ReadFile(fn, commandline.Format())
		if err != nil {
			return nil, err
		}
		ps = append(ps, program{name: fn, tokens: ts})
	}
	return ps, nil
}

func payloadName(dir, name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if commandline.JSON() {
		return filepath.Join(dir, base+".json")
	}
	return filepath.Join(dir, base+".pb")
}

func run(ctx context.Context) error {
	cfg := config.Default()
	if fn := commandline.ConfigFile(); fn != "" {
		c, err := config.Load(fn)
		if err != nil {
			return err
		}
		cfg = c
	}
	if commandline.Verbose() {
		conlog.SetDebugPrintf(log.Printf)
	}

	ps, err := loadPrograms()
	if err != nil {
		return err
	}
	if len(ps) == 0 {
		return errors.New("no programs given, use -sample or file arguments")
	}
	all := make([][]command.Token, 0, len(ps))
	for _, p := range ps {
		all = append(all, p.tokens)
	}
	items, err := batch.Decode(ctx, all, cfg.Batch.Workers, cfg.DecodeOptions()...)
	if err != nil {
		return err
	}

	tolerance := cfg.Kernel.Tolerance
	if t := commandline.CheckTolerance(); t > 0 {
		tolerance = t
	}
	failed := 0
	for _, it := range items {
		name := ps[it.Index].name
		if it.Err != nil {
			conlog.Printf("%s: %v\n", name, it.Err)
			failed++
			continue
		}
		res := it.Result
		fmt.Printf("%s: %d entries, %d extrusions, %d skipped commands\n",
			name, len(res.Entries), res.Extrusions(), len(res.Diagnostics))
		for _, d := range res.Diagnostics {
			fmt.Printf("  %v\n", d)
		}
		if commandline.Check() {
			m := kernel.Build(check.New(tolerance), res)
			fmt.Printf("  %d parts, %d failures, %d empty profiles\n",
				len(m.Parts), len(m.Failures), m.Empty)
			for _, f := range m.Failures {
				fmt.Printf("  %v\n", f)
			}
		}
		if dir := commandline.OutDir(); dir != "" {
			meta := export.Meta{ID: it.ID, Source: name}
			var out []byte
			if commandline.JSON() {
				out, err = export.MarshalJSON(res, meta)
			} else {
				out, err = export.Marshal(res, meta)
			}
			if err == nil {
				err = export.Save(payloadName(dir, name), out)
			}
			if err != nil {
				conlog.Printf("%s: %v\n", name, err)
				failed++
			}
		}
	}
	if failed != 0 {
		return errors.Errorf("%d of %d programs failed", failed, len(items))
	}
	return nil
}

func main() {
	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}
