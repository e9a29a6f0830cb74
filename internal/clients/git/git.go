// Package git simplifies git operations
package git

import (
	"io"
	"path"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/pkg/errors"
)

func AbbreviateHash(h plumbing.Hash) string {
	const shortHashLength = 7
	return h.String()[:shortHashLength]
}

type Repo struct {
	repository *git.Repository
	root       string
}

// Open opens the git repo containing the local path, which may be a subdirectory of the repo's
// worktree.
func Open(local string) (*Repo, error) {
	repo, err := git.PlainOpenWithOptions(local, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't open git repo containing %s", local)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't open worktree of git repo containing %s", local)
	}
	return &Repo{
		repository: repo,
		root:       worktree.Filesystem.Root(),
	}, nil
}

// Root returns the path of the root of the repo's worktree.
func (r *Repo) Root() string {
	return r.root
}

func (r *Repo) GetHead() (plumbing.Hash, error) {
	ref, err := r.repository.Head()
	if err != nil {
		return plumbing.ZeroHash, errors.Wrap(err, "couldn't resolve HEAD")
	}
	return ref.Hash(), nil
}

// GetLastChangeTime returns the committer time of the most recent commit in the history of HEAD
// which changed the file at the specified slash-separated path relative to the repo root.
func (r *Repo) GetLastChangeTime(filePath string) (time.Time, error) {
	head, err := r.GetHead()
	if err != nil {
		return time.Time{}, err
	}
	commits, err := r.repository.Log(&git.LogOptions{
		From:     head,
		FileName: &filePath,
	})
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "couldn't list commits changing %s", filePath)
	}
	defer commits.Close()

	commit, err := commits.Next()
	if errors.Is(err, io.EOF) {
		return time.Time{}, errors.Errorf("no commit in the history of HEAD changes %s", filePath)
	}
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "couldn't find latest commit changing %s", filePath)
	}
	return commit.Committer.When, nil
}

// CommitModTimes reports the times when files in a project directory within a git repo were last
// changed, according to the repo's commit history.
type CommitModTimes struct {
	Repo *Repo
	// Prefix is the slash-separated path of the project directory relative to the repo root.
	Prefix string
}

// NewCommitModTimes opens the git repo containing the project directory.
func NewCommitModTimes(projectDir string) (*CommitModTimes, error) {
	absProjectDir, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't determine absolute path of %s", projectDir)
	}
	repo, err := Open(absProjectDir)
	if err != nil {
		return nil, err
	}
	prefix, err := filepath.Rel(repo.Root(), absProjectDir)
	if err != nil {
		return nil, errors.Wrapf(
			err, "couldn't determine path of %s within git repo %s", absProjectDir, repo.Root(),
		)
	}
	prefix = filepath.ToSlash(prefix)
	if prefix == "." {
		prefix = ""
	}
	return &CommitModTimes{
		Repo:   repo,
		Prefix: prefix,
	}, nil
}

// ModTime returns the time of the latest commit changing the file at the specified path relative
// to the project directory.
func (m *CommitModTimes) ModTime(filePath string) (time.Time, error) {
	return m.Repo.GetLastChangeTime(path.Join(m.Prefix, filePath))
}
