// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package am

import (
	"fmt"
	"strings"
)

// Identity is an author or committer name/email pair, along with the raw
// date string as it should be fed back to the commit writer.
type Identity struct {
	Name  string
	Email string
	Date  string
}

// sqQuote single-quotes s the way a POSIX shell requires: the whole value is
// wrapped in '...', and every embedded single quote is replaced with the
// four-character escape '\''. Unlike a general-purpose shell-quoting library
// that only quotes when a value contains metacharacters, the author-script
// format always quotes every value, with no unquoted fast path, so the
// three lines it writes are mechanically identical in shape regardless of
// content.
func sqQuote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			b.WriteString(`'\''`)
			continue
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('\'')
	return b.String()
}

// sqDequote reverses sqQuote. It expects s to start and end with a single
// quote and rejects anything else: the author-script is written exclusively
// by WriteAuthorScript, so a value that isn't single-quoted means the file
// was hand-edited or corrupted, and guessing at its meaning would silently
// misattribute a commit.
func sqDequote(s string) (string, error) {
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return "", fmt.Errorf("author-script: value is not single-quoted: %q", s)
	}
	body := s[1 : len(s)-1]
	var b strings.Builder
	for i := 0; i < len(body); {
		if body[i] == '\'' {
			if i+3 < len(body) && body[i+1] == '\\' && body[i+2] == '\'' && body[i+3] == '\'' {
				b.WriteByte('\'')
				i += 4
				continue
			}
			return "", fmt.Errorf("author-script: unescaped quote in value: %q", s)
		}
		b.WriteByte(body[i])
		i++
	}
	return b.String(), nil
}

const (
	authorNameKey  = "GIT_AUTHOR_NAME"
	authorEmailKey = "GIT_AUTHOR_EMAIL"
	authorDateKey  = "GIT_AUTHOR_DATE"
)

// WriteAuthorScript renders id as the three-line KEY='value' shell fragment
// persisted as the session's author-script.
func WriteAuthorScript(id Identity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s=%s\n", authorNameKey, sqQuote(id.Name))
	fmt.Fprintf(&b, "%s=%s\n", authorEmailKey, sqQuote(id.Email))
	fmt.Fprintf(&b, "%s=%s\n", authorDateKey, sqQuote(id.Date))
	return b.String()
}

// ReadAuthorScript parses a previously written author-script back into an
// Identity. It requires the three keys to appear in exactly the order
// WriteAuthorScript writes them: any other shape is treated as corruption
// rather than an alternate valid encoding.
func ReadAuthorScript(contents string) (Identity, error) {
	lines := strings.Split(strings.TrimRight(contents, "\n"), "\n")
	if len(lines) != 3 {
		return Identity{}, fmt.Errorf("author-script: expected 3 lines, got %d", len(lines))
	}
	keys := [3]string{authorNameKey, authorEmailKey, authorDateKey}
	var values [3]string
	for i, line := range lines {
		prefix := keys[i] + "="
		if !strings.HasPrefix(line, prefix) {
			return Identity{}, fmt.Errorf("author-script: line %d: expected key %s", i+1, keys[i])
		}
		v, err := sqDequote(strings.TrimPrefix(line, prefix))
		if err != nil {
			return Identity{}, err
		}
		values[i] = v
	}
	return Identity{Name: values[0], Email: values[1], Date: values[2]}, nil
}
