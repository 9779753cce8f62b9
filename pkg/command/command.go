// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package command holds the kong-driven CLI command tree for zeta-am.
package command

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/antgroup/zeta-am/pkg/tr"
	"github.com/antgroup/zeta-am/pkg/version"
)

var (
	// W is a short alias for tr.W, matching the rest of the toolchain's
	// convention of wrapping every user-facing literal.
	W = tr.W
)

// Globals holds the flags shared by every subcommand.
type Globals struct {
	Verbose bool        `short:"V" name:"verbose" help:"Make the operation more talkative"`
	Version VersionFlag `short:"v" name:"version" help:"Show version number and quit"`
	Values  []string    `short:"X" name:":config" help:"Override default configuration, format: <key>=<value>"`
	CWD     string      `name:"cwd" help:"Set the path to the repository worktree"`
}

// DbgPrint prints a yellow diagnostic line to stderr when Verbose is set.
func (g *Globals) DbgPrint(format string, args ...any) {
	if !g.Verbose {
		return
	}
	message := strings.TrimSuffix(fmt.Sprintf(format, args...), "\n")
	var buffer bytes.Buffer
	for _, s := range strings.Split(message, "\n") {
		_, _ = buffer.WriteString("\x1b[33m* ")
		_, _ = buffer.WriteString(s)
		_, _ = buffer.WriteString("\x1b[0m\n")
	}
	_, _ = os.Stderr.Write(buffer.Bytes())
}

// VersionFlag implements a -v/--version flag that prints and exits
// immediately, before any subcommand runs.
type VersionFlag bool

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(version.GetVersionString())
	app.Exit(0)
	return nil
}

// ErrArgRequired is returned by commands that need a positional argument
// kong's own grammar can't make mandatory (e.g. "at least one of these").
var ErrArgRequired = errors.New("arg required")
