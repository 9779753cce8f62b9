// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package am

import (
	"fmt"
	"strings"
)

// ValidateIdentity applies the same strict-mode checks git's fmt_ident
// applies before writing a commit: a name must be present, and an email
// must be present and must not itself contain angle brackets (which would
// make the "<...>" wrapper ambiguous once the ident line is serialized).
func ValidateIdentity(id Identity) error {
	if strings.TrimSpace(id.Name) == "" {
		return fmt.Errorf("am: empty author name, could not determine committer from mail header")
	}
	if strings.TrimSpace(id.Email) == "" {
		return fmt.Errorf("am: empty author email, could not determine committer from mail header")
	}
	if strings.ContainsAny(id.Email, "<>\n") {
		return fmt.Errorf("am: malformed author email %q", id.Email)
	}
	if strings.Contains(id.Name, "\n") {
		return fmt.Errorf("am: malformed author name %q", id.Name)
	}
	return nil
}
