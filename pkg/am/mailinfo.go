// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package am

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/mail"
	"os"
	"regexp"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// subjectPatchPrefixRE strips the "[PATCH]", "[PATCH 3/7]", "[PATCH v2]"
// style bracketed prefixes format-patch adds to the Subject line, same as
// mailinfo's -k-less default behavior.
var subjectPatchPrefixRE = regexp.MustCompile(`(?i)^\s*\[[^\]]*patch[^\]]*\]\s*`)

// diffStartRE matches the first line of a unified diff body that carries
// git's extended header; splitMessageAndDiff detects a bare two-file diff
// separately.
var diffStartRE = regexp.MustCompile(`^diff --git `)

// gitdiffMailParser implements MailParser on top of go-gitdiff's header
// parser and net/mail, without shelling out to a second `git mailinfo`
// process per message.
type gitdiffMailParser struct{}

// NewMailParser returns the default in-process Mail Parser Driver.
func NewMailParser() MailParser {
	return gitdiffMailParser{}
}

func (gitdiffMailParser) Parse(_ context.Context, mailPath string) (*ParsedMail, error) {
	raw, err := os.ReadFile(mailPath)
	if err != nil {
		return nil, err
	}

	header, err := gitdiff.ParsePatchHeader(withMailEnvelope(raw))
	if err != nil {
		return nil, fmt.Errorf("am: could not parse patch headers in %s: %w", mailPath, err)
	}

	author := Identity{}
	if header.Author != nil {
		author.Name = header.Author.Name
		author.Email = header.Author.Email
	}
	if header.AuthorDate != nil {
		author.Date = header.AuthorDate.Raw
	}

	if author.Name == internalDataMessageAuthor {
		return &ParsedMail{Skip: true}, nil
	}

	subject := decodeMIMEWords(header.Title)
	subject = subjectPatchPrefixRE.ReplaceAllString(subject, "")
	subject = strings.TrimSpace(subject)

	body, err := readMailBody(raw)
	if err != nil {
		return nil, err
	}
	message, diff := splitMessageAndDiff(body)

	full := strings.TrimSpace(subject)
	if message != "" {
		full = full + "\n\n" + message
	}

	if len(bytes.TrimSpace(diff)) == 0 {
		return nil, newExitError(ExitFatal, "am: patch is empty, was it split wrong? (%s)", mailPath)
	}

	return &ParsedMail{
		Author:  author,
		Subject: subject,
		Message: full,
		Diff:    diff,
	}, nil
}

// withMailEnvelope ensures the content handed to gitdiff.ParsePatchHeader
// begins with a "From " mbox envelope line, which is present in
// format-patch-generated mail but absent from a bare Maildir message file
// (mailsplit copies each message through unchanged either way).
func withMailEnvelope(raw []byte) string {
	if bytes.HasPrefix(raw, []byte("From ")) {
		return string(raw)
	}
	return "From zeta-am Mon Sep 17 00:00:00 2001\n" + string(raw)
}

// internalDataMessageAuthor is the From display name pine (and compatible
// mailers) stamp on the folder-internal bookkeeping message every mbox
// folder carries; mailinfo matches on this name, not the Subject line,
// since the Subject varies ("DON'T DELETE THIS MESSAGE -- FOLDER INTERNAL
// DATA") while the author name is the stable marker.
const internalDataMessageAuthor = "Mail System Internal Data"

func decodeMIMEWords(s string) string {
	dec := new(mime.WordDecoder)
	if out, err := dec.DecodeHeader(s); err == nil {
		return out
	}
	return s
}

// readMailBody returns the body of the message, i.e. everything after the
// header/body blank-line separator, with the leading "From " envelope line
// (if present) skipped first.
func readMailBody(raw []byte) (string, error) {
	r := bufio.NewReader(bytes.NewReader(raw))
	first, err := r.Peek(5)
	if err == nil && string(first) == "From " {
		if _, err := r.ReadString('\n'); err != nil {
			return "", err
		}
	}
	msg, err := mail.ReadMessage(r)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if _, err := b.ReadFrom(msg.Body); err != nil {
		return "", err
	}
	return b.String(), nil
}

// splitMessageAndDiff separates the free-text commit message from the
// trailing unified diff, the way mailinfo writes "msg" and "patch" as two
// separate files from one message body. Everything from the first
// "diff --git " line, or the first "--- "/"+++ " pair for a headerless
// two-file diff, to the end of the body is the diff; everything before it
// is the message.
func splitMessageAndDiff(body string) (message string, diff []byte) {
	lines := strings.SplitAfter(body, "\n")
	diffAt := -1
	for i, line := range lines {
		if diffStartRE.MatchString(line) {
			diffAt = i
			break
		}
	}
	if diffAt < 0 {
		for i := 0; i < len(lines)-1; i++ {
			if strings.HasPrefix(lines[i], "--- ") && strings.HasPrefix(lines[i+1], "+++ ") {
				diffAt = i
				break
			}
		}
	}
	if diffAt < 0 {
		return strings.TrimSpace(body), nil
	}
	msg := strings.Join(lines[:diffAt], "")
	patch := strings.Join(lines[diffAt:], "")
	return strings.TrimSpace(msg), []byte(patch)
}
