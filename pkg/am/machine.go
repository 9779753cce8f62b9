// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package am

import "strconv"

const (
	fileNext         = "next"
	fileLast         = "last"
	fileAuthorScript = "author-script"
	fileFinalCommit  = "final-commit"
	filePatch        = "patch"
	fileMsg          = "msg"
)

// Machine drives a Session through its on-disk state transitions. Every
// method that mutates state follows the same ordering rule: any scratch
// file tied to the patch just finished is deleted before "next" is
// rewritten, and "next" is always the last write of the step. A process
// killed at any point before that final write resumes as if the step had
// not started; killed after it, resumes as if the step had fully
// completed. There is no state in which a half-applied step survives.
type Machine struct {
	Store *Store
}

// NewMachine wraps store.
func NewMachine(store *Store) *Machine {
	return &Machine{Store: store}
}

// InProgress reports whether a session directory with a valid "next"
// marker exists, i.e. whether a previous run was interrupted.
func (m *Machine) InProgress() bool {
	if !m.Store.Exists() {
		return false
	}
	_, err := m.Store.Read(fileNext)
	return err == nil
}

// Setup initializes a fresh session for a mailbox split into `last`
// messages. It must only be called when InProgress is false.
func (m *Machine) Setup(last int) (*Session, error) {
	if err := m.Store.WriteString(fileLast, strconv.Itoa(last)+"\n"); err != nil {
		return nil, err
	}
	if err := m.Store.WriteString(fileNext, "1\n"); err != nil {
		return nil, err
	}
	return &Session{Dir: m.Store.Dir, Cur: 1, Last: last}, nil
}

// Load reconstructs a Session from an in-progress session directory.
func (m *Machine) Load() (*Session, error) {
	nextS, err := m.Store.Read(fileNext)
	if err != nil {
		return nil, err
	}
	lastS, err := m.Store.Read(fileLast)
	if err != nil {
		return nil, err
	}
	cur, err := strconv.Atoi(nextS)
	if err != nil {
		return nil, err
	}
	last, err := strconv.Atoi(lastS)
	if err != nil {
		return nil, err
	}
	return &Session{Dir: m.Store.Dir, Cur: cur, Last: last}, nil
}

// Advance clears the scratch files for the patch just committed and moves
// the session to the next message: sess.Cur is incremented by one and the
// new value is written to "next".
func (m *Machine) Advance(sess *Session) error {
	for _, name := range []string{fileAuthorScript, fileFinalCommit, filePatch, fileMsg} {
		if err := m.Store.Remove(name); err != nil {
			return err
		}
	}
	sess.Cur++
	return m.Store.WriteString(fileNext, strconv.Itoa(sess.Cur)+"\n")
}

// Destroy removes the entire session, used once every message through
// Last has been committed.
func (m *Machine) Destroy() error {
	return m.Store.Destroy()
}
