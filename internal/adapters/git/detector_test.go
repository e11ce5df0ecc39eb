package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepoWithCommit(t *testing.T, dir string) string {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("focus"), 0644))
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add("notes.txt")
	require.NoError(t, err)

	commit, err := worktree.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com"},
	})
	require.NoError(t, err)
	return commit.String()
}

func TestDetector_Detect(t *testing.T) {
	dir := t.TempDir()
	commit := initRepoWithCommit(t, dir)

	info, err := NewDetector().Detect(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, commit, info.Commit)
	// go-git defaults to master
	assert.Contains(t, []string{"master", "main"}, info.Branch)
}

func TestDetector_DetectFromSubdirectory(t *testing.T) {
	dir := t.TempDir()
	commit := initRepoWithCommit(t, dir)
	sub := filepath.Join(dir, "level1", "level2")
	require.NoError(t, os.MkdirAll(sub, 0755))

	info, err := NewDetector().Detect(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, commit, info.Commit)
}

func TestDetector_DetectNoRepo(t *testing.T) {
	_, err := NewDetector().Detect(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrNoRepository)
}

func TestDetector_DetectCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDetector().Detect(ctx, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFindGitRepo_Worktree(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: /elsewhere/.git/worktrees/x\n"), 0644))

	found, err := findGitRepo(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, found)
}

func TestShortCommit(t *testing.T) {
	assert.Equal(t, "abcdef1", ShortCommit("abcdef1234567890abcdef1234567890abcdef12"))
	assert.Equal(t, "short", ShortCommit("short"))
	assert.Equal(t, "", ShortCommit(""))
}
