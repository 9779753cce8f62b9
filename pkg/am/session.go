// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package am implements a resumable, crash-safe mailbox-to-commit applier:
// it splits an mbox or Maildir into individually numbered messages, parses
// each into authorship, message and diff, applies the diff to the working
// tree, commits the result and advances the current branch, one message at
// a time, in a way that survives being killed between any two steps.
package am

import "fmt"

// Prec is the fixed width used to zero-pad patch sequence numbers when
// naming split-mail files. git mailsplit defaults to 4; zeta-am never
// negotiates a different width.
const Prec = 4

// Session is the in-memory view of a zeta-am run anchored on-disk under Dir.
// Every field except Dir is reconstructed from the session directory by
// Machine.Load and is never trusted to be correct without re-reading it.
type Session struct {
	// Dir is the session directory, conventionally <git-dir>/zeta-am.
	Dir string
	// Cur is the sequence number of the next patch to apply.
	Cur int
	// Last is the sequence number of the final patch in the split mailbox.
	Last int
}

// Msgnum renders n zero-padded to Prec digits, matching the filenames
// produced by the mail splitter.
func Msgnum(n int) string {
	return fmt.Sprintf("%0*d", Prec, n)
}

// Done reports whether every patch through Last has already been applied.
func (s *Session) Done() bool {
	return s.Cur > s.Last
}
