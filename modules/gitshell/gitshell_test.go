package gitshell

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/antgroup/zeta-am/pkg/am"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available on PATH")
	}
}

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(), "GIT_CONFIG_NOSYSTEM=1")
		out, err := cmd.CombinedOutput()
		require.NoErrorf(t, err, "git %v: %s", args, out)
	}
	run("init", "-q")
	run("config", "user.name", "Test")
	run("config", "user.email", "test@example.com")
	return dir
}

func TestRepositoryApplyWriteTreeCommitUpdateRef(t *testing.T) {
	requireGit(t)
	dir := initRepo(t)

	patch := filepath.Join(dir, "p.patch")
	patchBody := "diff --git a/hello.txt b/hello.txt\nnew file mode 100644\nindex 0000000..ce01362\n--- /dev/null\n+++ b/hello.txt\n@@ -0,0 +1 @@\n+hello\n"
	require.NoError(t, os.WriteFile(patch, []byte(patchBody), 0o644))

	repo := &Repository{RepoPath: dir}
	ctx := context.Background()

	head, err := repo.Head(ctx)
	require.NoError(t, err)
	require.True(t, head.Unborn)

	require.NoError(t, repo.Refresh(ctx))
	require.NoError(t, repo.Apply(ctx, patch))

	tree, err := repo.WriteTree(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, tree)

	author := am.Identity{Name: "Ada", Email: "ada@example.com", Date: "Tue, 1 Jul 2025 10:00:00 +0000"}
	commit, err := repo.CommitTree(ctx, tree, nil, author, author, "Add hello\n")
	require.NoError(t, err)
	require.NotEmpty(t, commit)

	require.NoError(t, repo.UpdateRef(ctx, head.Ref, commit, "", "am: Add hello"))

	head2, err := repo.Head(ctx)
	require.NoError(t, err)
	require.False(t, head2.Unborn)
	require.Equal(t, commit, head2.Commit)
}

func TestSplitterSplit(t *testing.T) {
	requireGit(t)
	dir := initRepo(t)

	mbox := filepath.Join(dir, "in.mbox")
	msg := "From 0000000000000000000000000000000000000000 Mon Sep 17 00:00:00 2001\n" +
		"From: Ada <ada@example.com>\nSubject: [PATCH] one\n\nbody one\n"
	require.NoError(t, os.WriteFile(mbox, []byte(msg+msg), 0o644))

	outDir := filepath.Join(dir, "split")
	require.NoError(t, os.MkdirAll(outDir, 0o777))

	s := &Splitter{RepoPath: dir}
	last, err := s.Split(context.Background(), []string{mbox}, outDir)
	require.NoError(t, err)
	require.Equal(t, 2, last)
	require.FileExists(t, filepath.Join(outDir, "0001"))
	require.FileExists(t, filepath.Join(outDir, "0002"))
}
