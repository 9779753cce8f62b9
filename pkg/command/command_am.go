// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	zetacommand "github.com/antgroup/zeta-am/modules/command"
	"github.com/antgroup/zeta-am/modules/gitshell"
	"github.com/antgroup/zeta-am/pkg/am"
	"github.com/antgroup/zeta-am/pkg/version"
)

// Am applies a series of patches from a mailbox, one commit per message,
// resuming an interrupted run automatically when one is found.
type Am struct {
	PatchFormat string   `name:"patch-format" help:"Specify the format patches are in (only 'mbox' is supported)" default:"mbox"`
	Paths       []string `arg:"" optional:"" name:"mbox" help:"mbox file, Maildir, or '-' for stdin; when omitted, resumes an interrupted run or, if there is none, reads stdin" type:"path"`
}

// Run implements the am subcommand.
func (c *Am) Run(g *Globals) error {
	if c.PatchFormat != "" && c.PatchFormat != "mbox" {
		return &am.ErrExitCode{
			Err:  fmt.Errorf("am: unsupported --patch-format %q, only \"mbox\" is recognized", c.PatchFormat),
			Code: am.ExitFatal,
		}
	}

	repoPath := g.CWD
	if repoPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		repoPath = wd
	}

	ctx := context.Background()
	gitDir, err := gitRevParseGitDir(ctx, repoPath)
	if err != nil {
		return fmt.Errorf("am: not a git repository (or any parent): %w", err)
	}
	sessionDir := filepath.Join(gitDir, "zeta-am")

	store, err := am.NewStore(sessionDir)
	if err != nil {
		return err
	}

	repo := &gitshell.Repository{RepoPath: repoPath}
	splitter := &gitshell.Splitter{RepoPath: repoPath}
	cfgReader := &gitshell.Config{RepoPath: repoPath}
	cfg := &am.Config{Reader: cfgReader}

	runner := am.NewRunner(repo, splitter, am.NewMailParser(), cfg, store, os.Stdout)
	if g.Verbose {
		log := logrus.New()
		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.DebugLevel)
		runner.Log = log
		g.DbgPrint("%s", version.GetDiagnosticLine())
	}

	if err := runner.Run(ctx, c.Paths); err != nil {
		return err
	}
	return nil
}

func gitRevParseGitDir(ctx context.Context, repoPath string) (string, error) {
	cmd := zetacommand.New(ctx, repoPath, "git", "rev-parse", "--git-dir")
	out, err := cmd.OneLine()
	if err != nil {
		return "", fmt.Errorf("%s", zetacommand.FromError(err))
	}
	out = strings.TrimSpace(out)
	if filepath.IsAbs(out) {
		return out, nil
	}
	return filepath.Join(repoPath, out), nil
}
