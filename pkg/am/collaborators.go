// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package am

import "context"

// Splitter breaks one or more mbox/Maildir inputs into individually
// numbered message files under dir, named as Msgnum(1), Msgnum(2), ....
// It reports the sequence number of the last message written.
type Splitter interface {
	Split(ctx context.Context, paths []string, dir string) (last int, err error)
}

// ParsedMail is everything the run loop needs out of one split message:
// authorship, the commit message, and the unified diff to apply.
type ParsedMail struct {
	Author  Identity
	Subject string
	Message string
	Diff    []byte
	// Skip is set when the message is a mail folder's internal bookkeeping
	// message (author "Mail System Internal Data"); the run loop advances
	// past it without applying or committing anything.
	Skip bool
}

// MailParser extracts authorship, message and diff from one split message
// file. It is the in-process equivalent of git mailinfo.
type MailParser interface {
	Parse(ctx context.Context, mailPath string) (*ParsedMail, error)
}

// HeadState describes the repository's current branch tip.
type HeadState struct {
	// Unborn is true when HEAD points at a branch with no commits yet.
	Unborn bool
	// Commit is the current tip, empty when Unborn.
	Commit string
	// Ref is the full ref name HEAD resolves to, e.g. refs/heads/main.
	Ref string
}

// Repository is the apply/commit surface the run loop drives: refreshing
// and applying against the index, and writing trees, commits and refs.
// The concrete implementation shells out to the real git plumbing
// commands; tests substitute an in-memory fake.
type Repository interface {
	// Refresh updates the index's cached stat information against the
	// working tree, without changing its content. Called once before the
	// apply loop (including on resume) so a file whose mtime moved but
	// whose content didn't doesn't look dirty to Apply.
	Refresh(ctx context.Context) error
	// Apply applies the unified diff in patchPath to the working tree and
	// index. A non-zero git-apply exit is surfaced as an error implementing
	// ApplyFailure.
	Apply(ctx context.Context, patchPath string) error
	// WriteTree writes the current index out as a tree object and returns
	// its hash.
	WriteTree(ctx context.Context) (string, error)
	// Head resolves the repository's current branch tip.
	Head(ctx context.Context) (HeadState, error)
	// CommitTree creates a commit object with the given tree, parents and
	// identities and returns its hash. No ref is updated.
	CommitTree(ctx context.Context, tree string, parents []string, author, committer Identity, message string) (string, error)
	// UpdateRef performs a compare-and-swap update of ref from oldValue to
	// newValue, recording reflogMessage. oldValue is empty for an unborn
	// branch's first commit.
	UpdateRef(ctx context.Context, ref, newValue, oldValue, reflogMessage string) error
}

// ConfigReader exposes read-only access to repository/global git config,
// used to resolve the committer identity and the advice.amworkdir toggle.
type ConfigReader interface {
	Get(ctx context.Context, key string) (value string, ok bool)
}
