// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/antgroup/zeta-am/pkg/am"
	"github.com/antgroup/zeta-am/pkg/command"
	"github.com/antgroup/zeta-am/pkg/tr"
	"github.com/antgroup/zeta-am/pkg/version"
)

// App is the zeta-am command tree: a single `am` command today, structured
// as a kong command tree so further plumbing verbs can be added beside it
// without touching main.
type App struct {
	command.Globals
	Am command.Am `cmd:"am" default:"1" help:"Apply a series of patches from a mailbox"`
}

func main() {
	_ = tr.Initialize()
	var app App
	parser, err := kong.New(&app,
		kong.Name("zeta-am"),
		kong.Description(tr.W("Apply mailbox patches to the working tree as commits, resumably")),
		kong.UsageOnError(),
		kong.Vars{
			"version": version.GetVersionString(),
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		parser.FatalIfErrorf(err)
	}
	runErr := kctx.Run(&app.Globals)
	if runErr == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "zeta-am: "+runErr.Error())
	var exitErr *am.ErrExitCode
	if errors.As(runErr, &exitErr) {
		os.Exit(int(exitErr.Code))
	}
	// git am has no notion of a usage-vs-apply distinction in its exit
	// status: every fatal condition, wrapped or not, exits 128.
	os.Exit(int(am.ExitFatal))
}
