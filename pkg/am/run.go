// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package am

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/antgroup/zeta-am/pkg/tr"
)

// Runner wires the collaborators together and drives the detect → split →
// parse → apply → commit → advance loop described by the session state
// machine.
type Runner struct {
	Repo     Repository
	Splitter Splitter
	Parser   MailParser
	Config   *Config
	Store    *Store
	Machine  *Machine

	// Stdout receives the "Applying: ..." progress line printed per patch.
	Stdout io.Writer
	// Log receives structured per-patch diagnostics; nil disables it.
	Log *logrus.Logger
}

// NewRunner builds a Runner from its collaborators and a session store.
func NewRunner(repo Repository, splitter Splitter, parser MailParser, cfg *Config, store *Store, stdout io.Writer) *Runner {
	return &Runner{
		Repo:     repo,
		Splitter: splitter,
		Parser:   parser,
		Config:   cfg,
		Store:    store,
		Machine:  NewMachine(store),
		Stdout:   stdout,
	}
}

// Run applies every message in paths (or resumes an interrupted session if
// one exists, in which case paths is ignored). It returns once every
// message through the session's last sequence number has been committed
// and the session directory has been destroyed, or the first error that
// cannot be resumed past.
func (r *Runner) Run(ctx context.Context, paths []string) error {
	var sess *Session
	if r.Machine.InProgress() {
		s, err := r.Machine.Load()
		if err != nil {
			return fmt.Errorf("am: resuming a previous session: %w", err)
		}
		sess = s
	} else {
		// An empty path list means "read stdin as mbox", matching git am's
		// own behavior: DetectFormat("") and the splitter both treat a
		// missing input path as stdin.
		var detectPath string
		if len(paths) > 0 {
			detectPath = paths[0]
		}
		format, err := DetectFormat(detectPath)
		if err != nil {
			return fmt.Errorf("am: %w", err)
		}
		if format == FormatUnrecognized {
			return newExitError(ExitFatal, "am: could not determine mail format for %s", detectPath)
		}
		last, err := r.Splitter.Split(ctx, paths, r.Store.Dir)
		if err != nil {
			return fmt.Errorf("am: splitting mail: %w", err)
		}
		s, err := r.Machine.Setup(last)
		if err != nil {
			return fmt.Errorf("am: setting up session: %w", err)
		}
		sess = s
	}

	// Refresh the index's cached stat info before touching anything, the
	// same way am_run opens every invocation (including a resume) by
	// calling refresh_and_write_index(): otherwise a file whose mtime
	// changed without its content changing can look dirty to git apply.
	if err := r.Repo.Refresh(ctx); err != nil {
		return fmt.Errorf("am: refreshing index: %w", err)
	}

	for !sess.Done() {
		if err := r.applyOne(ctx, sess); err != nil {
			return err
		}
	}
	return r.Machine.Destroy()
}

func (r *Runner) applyOne(ctx context.Context, sess *Session) error {
	mailPath := r.Store.Path(Msgnum(sess.Cur))
	if _, err := os.Stat(mailPath); err != nil {
		if os.IsNotExist(err) {
			r.debugf(logrus.Fields{"patch": sess.Cur}, "message file missing, skipping")
			return r.Machine.Advance(sess)
		}
		return err
	}
	parsed, err := r.Parser.Parse(ctx, mailPath)
	if err != nil {
		return fmt.Errorf("am: parsing message %s: %w", Msgnum(sess.Cur), err)
	}
	if parsed.Skip {
		r.debugf(logrus.Fields{"patch": sess.Cur}, "skipping non-patch message")
		return r.Machine.Advance(sess)
	}
	if err := ValidateIdentity(parsed.Author); err != nil {
		return fmt.Errorf("am: message %s: %w", Msgnum(sess.Cur), err)
	}

	if err := r.Store.Write(filePatch, parsed.Diff); err != nil {
		return err
	}
	if err := r.Store.WriteString(fileAuthorScript, WriteAuthorScript(parsed.Author)); err != nil {
		return err
	}
	if err := r.Store.WriteString(fileFinalCommit, parsed.Message); err != nil {
		return err
	}

	if r.Stdout != nil {
		_, _ = tr.Fprintf(r.Stdout, "Applying: %s\n", firstLine(parsed.Message))
	}

	if err := r.Repo.Apply(ctx, r.Store.Path(filePatch)); err != nil {
		var af ApplyFailure
		if errors.As(err, &af) {
			return newExitError(ExitApplyFailed, "%s", r.applyFailureMessage(ctx, sess, parsed, af))
		}
		return err
	}

	head, err := r.Repo.Head(ctx)
	if err != nil {
		return fmt.Errorf("am: resolving HEAD: %w", err)
	}
	var parents []string
	if head.Unborn {
		r.debugf(logrus.Fields{"patch": sess.Cur}, "applying to an empty history")
	} else {
		parents = []string{head.Commit}
	}

	tree, err := r.Repo.WriteTree(ctx)
	if err != nil {
		return fmt.Errorf("am: writing tree: %w", err)
	}

	committer := r.Config.Committer(ctx, parsed.Author)
	commit, err := r.Repo.CommitTree(ctx, tree, parents, parsed.Author, committer, parsed.Message)
	if err != nil {
		return fmt.Errorf("am: writing commit: %w", err)
	}

	reflog := fmt.Sprintf("%s: %s", r.Config.ReflogAction(), firstLine(parsed.Message))
	if err := r.Repo.UpdateRef(ctx, head.Ref, commit, head.Commit, reflog); err != nil {
		return fmt.Errorf("am: updating %s: %w", head.Ref, err)
	}

	r.debugf(logrus.Fields{
		"patch":   sess.Cur,
		"subject": parsed.Subject,
		"author":  parsed.Author.Email,
		"commit":  commit,
	}, "applied")

	return r.Machine.Advance(sess)
}

func (r *Runner) applyFailureMessage(ctx context.Context, sess *Session, parsed *ParsedMail, af ApplyFailure) string {
	msg := fmt.Sprintf("Patch failed at %s %s\n%s", Msgnum(sess.Cur), firstLine(parsed.Message), af.ApplyStderr())
	if r.Config.AdviceAmWorkdir(ctx) {
		msg += fmt.Sprintf("\nThe copy of the patch that failed is found in: %s\n", r.Store.Path(filePatch))
	}
	return msg
}

func (r *Runner) debugf(fields logrus.Fields, msg string) {
	if r.Log == nil {
		return
	}
	r.Log.WithFields(fields).Debug(msg)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
