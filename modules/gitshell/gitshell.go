// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package gitshell adapts the real git plumbing commands (mailsplit, apply,
// write-tree, commit-tree, update-ref, rev-parse) to the collaborator
// interfaces pkg/am drives its run loop through.
package gitshell

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/antgroup/zeta-am/modules/command"
	"github.com/antgroup/zeta-am/pkg/am"
)

// Splitter shells out to `git mailsplit`.
type Splitter struct {
	RepoPath string
}

// Split implements am.Splitter.
func (s *Splitter) Split(ctx context.Context, paths []string, dir string) (int, error) {
	args := []string{"mailsplit", "-d" + strconv.Itoa(am.Prec), "-o" + dir, "-b", "--"}
	args = append(args, paths...)
	// stdin is passed through so that no paths (or "-") reads the mailbox
	// from zeta-am's own standard input.
	cmd := command.NewFromOptions(ctx, &command.RunOpts{RepoPath: s.RepoPath, Stdin: os.Stdin}, "git", args...)
	out, err := cmd.OneLine()
	if err != nil {
		return 0, fmt.Errorf("git mailsplit: %s", command.FromError(err))
	}
	last, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil || last <= 0 {
		return 0, fmt.Errorf("git mailsplit: unexpected output %q", out)
	}
	return last, nil
}

// Repository shells out to git's apply/write-tree/commit-tree/update-ref/
// rev-parse plumbing commands against one working tree.
type Repository struct {
	RepoPath string
	// ExtraEnv is appended to every invocation's environment, used to carry
	// GIT_AUTHOR_*/GIT_COMMITTER_*/GIT_REFLOG_ACTION through to git.
	ExtraEnv []string
}

func (r *Repository) run(ctx context.Context, stdin []byte, extraEnv []string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	opts := &command.RunOpts{
		RepoPath: r.RepoPath,
		ExtraEnv: append(append([]string{}, r.ExtraEnv...), extraEnv...),
		Stdout:   &stdout,
		Stderr:   &stderr,
	}
	if stdin != nil {
		opts.Stdin = bytes.NewReader(stdin)
	}
	cmd := command.NewFromOptions(ctx, opts, "git", args...)
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("git %s: %s", strings.Join(args, " "), msg)
	}
	return stdout.Bytes(), nil
}

// ApplyError wraps a failed `git apply` invocation, carrying git's own
// diagnostic so the caller can surface it without re-running anything.
type ApplyError struct {
	Stderr string
}

func (e *ApplyError) Error() string {
	return "git apply failed: " + e.Stderr
}

// ApplyStderr implements am.ApplyFailure.
func (e *ApplyError) ApplyStderr() string {
	return e.Stderr
}

// Refresh implements am.Repository by shelling `git update-index --refresh`,
// the same call am_run makes before its first message to settle the
// index's cached stat info against the working tree.
func (r *Repository) Refresh(ctx context.Context) error {
	_, err := r.run(ctx, nil, nil, "update-index", "-q", "--refresh")
	return err
}

// Apply implements am.Repository.
func (r *Repository) Apply(ctx context.Context, patchPath string) error {
	var stderr bytes.Buffer
	cmd := command.NewFromOptions(ctx, &command.RunOpts{
		RepoPath: r.RepoPath,
		ExtraEnv: r.ExtraEnv,
		Stderr:   &stderr,
	}, "git", "apply", "--index", "--whitespace=warn", patchPath)
	if err := cmd.Run(); err != nil {
		return &ApplyError{Stderr: strings.TrimSpace(stderr.String())}
	}
	return nil
}

// WriteTree implements am.Repository.
func (r *Repository) WriteTree(ctx context.Context) (string, error) {
	out, err := r.run(ctx, nil, nil, "write-tree")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Head implements am.Repository.
func (r *Repository) Head(ctx context.Context) (am.HeadState, error) {
	// symbolic-ref also resolves a branch that has no commits yet, where
	// rev-parse would fail; a detached HEAD keeps the plain "HEAD" name.
	ref := "HEAD"
	if out, err := r.run(ctx, nil, nil, "symbolic-ref", "-q", "HEAD"); err == nil {
		ref = strings.TrimSpace(string(out))
	}
	commit, err := r.run(ctx, nil, nil, "rev-parse", "--verify", "-q", "HEAD")
	if err != nil {
		return am.HeadState{Unborn: true, Ref: ref}, nil
	}
	return am.HeadState{
		Ref:    ref,
		Commit: strings.TrimSpace(string(commit)),
	}, nil
}

// CommitTree implements am.Repository.
func (r *Repository) CommitTree(ctx context.Context, tree string, parents []string, author, committer am.Identity, message string) (string, error) {
	args := []string{"commit-tree", tree}
	for _, p := range parents {
		args = append(args, "-p", p)
	}
	env := []string{
		"GIT_AUTHOR_NAME=" + author.Name,
		"GIT_AUTHOR_EMAIL=" + author.Email,
		"GIT_AUTHOR_DATE=" + author.Date,
		"GIT_COMMITTER_NAME=" + committer.Name,
		"GIT_COMMITTER_EMAIL=" + committer.Email,
		"GIT_COMMITTER_DATE=" + committer.Date,
	}
	out, err := r.run(ctx, []byte(message), env, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// UpdateRef implements am.Repository. It uses a one-shot `git update-ref`
// invocation rather than the `-z --stdin` transaction protocol: zeta-am
// only ever advances a single ref per commit, so the streaming protocol's
// multi-update batching buys nothing here.
func (r *Repository) UpdateRef(ctx context.Context, ref, newValue, oldValue, reflogMessage string) error {
	args := []string{"update-ref", "-m", reflogMessage, ref, newValue}
	if oldValue != "" {
		args = append(args, oldValue)
	}
	_, err := r.run(ctx, nil, nil, args...)
	return err
}

// Config shells out to `git config --get` for read-only lookups.
type Config struct {
	RepoPath string
}

// Get implements am.ConfigReader.
func (c *Config) Get(ctx context.Context, key string) (string, bool) {
	cmd := command.New(ctx, c.RepoPath, "git", "config", "--get", key)
	out, err := cmd.OneLine()
	if err != nil || out == "" {
		return "", false
	}
	return out, true
}

var _ am.Splitter = (*Splitter)(nil)
var _ am.Repository = (*Repository)(nil)
var _ am.ConfigReader = (*Config)(nil)
