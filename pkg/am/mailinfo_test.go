package am

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleMessage = `From 1111111111111111111111111111111111111111 Mon Sep 17 00:00:00 2001
From: Ada Lovelace <ada@example.com>
Date: Tue, 1 Jul 2025 10:00:00 +0000
Subject: [PATCH 1/1] Add greeting

Adds a friendly greeting to the README.

---
 README.md | 1 +
 1 file changed, 1 insertion(+)

diff --git a/README.md b/README.md
index e69de29..4b5fa63 100644
--- a/README.md
+++ b/README.md
@@ -0,0 +1 @@
+hello
`

func TestMailParserParse(t *testing.T) {
	p := filepath.Join(t.TempDir(), "0001")
	require.NoError(t, os.WriteFile(p, []byte(sampleMessage), 0o644))

	parsed, err := NewMailParser().Parse(context.Background(), p)
	require.NoError(t, err)
	require.False(t, parsed.Skip)
	require.Equal(t, "Ada Lovelace", parsed.Author.Name)
	require.Equal(t, "ada@example.com", parsed.Author.Email)
	require.Equal(t, "Add greeting", parsed.Subject)
	require.Contains(t, string(parsed.Diff), "diff --git a/README.md b/README.md")
	require.NotContains(t, string(parsed.Diff), "Adds a friendly greeting")
}

func TestMailParserSkipsFolderInternalMessageByAuthorName(t *testing.T) {
	const internalMessage = `From 1111111111111111111111111111111111111111 Mon Sep 17 00:00:00 2001
From: "Mail System Internal Data" <MAILER-DAEMON@example.com>
Date: Tue, 1 Jul 2025 10:00:00 +0000
Subject: DON'T DELETE THIS MESSAGE -- FOLDER INTERNAL DATA

This text is part of the internal format of your mail folder, and is not
a real message.
`
	p := filepath.Join(t.TempDir(), "0001")
	require.NoError(t, os.WriteFile(p, []byte(internalMessage), 0o644))

	parsed, err := NewMailParser().Parse(context.Background(), p)
	require.NoError(t, err)
	require.True(t, parsed.Skip)
}

func TestMailParserDoesNotSkipOnSubjectAlone(t *testing.T) {
	const notInternal := `From 1111111111111111111111111111111111111111 Mon Sep 17 00:00:00 2001
From: Ada Lovelace <ada@example.com>
Date: Tue, 1 Jul 2025 10:00:00 +0000
Subject: [PATCH] Mail System Internal Data cleanup

diff --git a/README.md b/README.md
index e69de29..4b5fa63 100644
--- a/README.md
+++ b/README.md
@@ -0,0 +1 @@
+hello
`
	p := filepath.Join(t.TempDir(), "0001")
	require.NoError(t, os.WriteFile(p, []byte(notInternal), 0o644))

	parsed, err := NewMailParser().Parse(context.Background(), p)
	require.NoError(t, err)
	require.False(t, parsed.Skip)
}

func TestMailParserRejectsEmptyPatch(t *testing.T) {
	const noPatch = `From 1111111111111111111111111111111111111111 Mon Sep 17 00:00:00 2001
From: Ada Lovelace <ada@example.com>
Date: Tue, 1 Jul 2025 10:00:00 +0000
Subject: [PATCH] No diff here

Just a message, no patch attached.
`
	p := filepath.Join(t.TempDir(), "0001")
	require.NoError(t, os.WriteFile(p, []byte(noPatch), 0o644))

	_, err := NewMailParser().Parse(context.Background(), p)
	require.Error(t, err)
	var exitErr *ErrExitCode
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, ExitFatal, exitErr.Code)
}
