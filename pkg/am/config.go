// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package am

import (
	"context"
	"os"
	"time"
)

// Config resolves the handful of settings the run loop needs, preferring
// environment variables (the same ones git itself honors) and falling back
// to repository/global git config, then a bundled default.
type Config struct {
	Reader ConfigReader
}

// ReflogAction returns the GIT_REFLOG_ACTION override, or "am" if unset,
// matching git am's do_commit.
func (c *Config) ReflogAction() string {
	if v := os.Getenv("GIT_REFLOG_ACTION"); v != "" {
		return v
	}
	return "am"
}

// AdviceAmWorkdir reports whether the apply-failure message should name the
// scratch patch file left behind in the session directory. Defaults to on.
func (c *Config) AdviceAmWorkdir(ctx context.Context) bool {
	if c.Reader == nil {
		return true
	}
	v, ok := c.Reader.Get(ctx, "advice.amworkdir")
	if !ok {
		return true
	}
	switch v {
	case "false", "0", "no", "off":
		return false
	default:
		return true
	}
}

// Committer resolves the identity to record as committer: GIT_COMMITTER_*
// environment variables take precedence, then user.name/user.email from
// git config, then author identity is reused as a last resort so a commit
// is never silently attributed to nobody.
func (c *Config) Committer(ctx context.Context, author Identity) Identity {
	id := Identity{
		Name:  firstNonEmpty(os.Getenv("GIT_COMMITTER_NAME"), c.configGet(ctx, "user.name"), author.Name),
		Email: firstNonEmpty(os.Getenv("GIT_COMMITTER_EMAIL"), c.configGet(ctx, "user.email"), author.Email),
		Date:  os.Getenv("GIT_COMMITTER_DATE"),
	}
	if id.Date == "" {
		id.Date = time.Now().Format(time.RFC1123Z)
	}
	return id
}

func (c *Config) configGet(ctx context.Context, key string) string {
	if c.Reader == nil {
		return ""
	}
	v, _ := c.Reader.Get(ctx, key)
	return v
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}
