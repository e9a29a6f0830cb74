// Package feedgen has the application logic for the depfeed CLI
package feedgen

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/PlanktoScope/depfeed/internal/clients/git"
	"github.com/PlanktoScope/depfeed/pkg/feeds"
	ffs "github.com/PlanktoScope/depfeed/pkg/fs"
)

// Sources of the release dates of channels.
const (
	DatesModTime = "mtime"
	DatesGit     = "git"
)

var _ feeds.ModTimer = &git.CommitModTimes{}

// A Project is a directory with a feed manifest and a macros directory.
type Project struct {
	// Dir is the path of the project directory.
	Dir string
	// Output is the path of the generated feed. A relative path is relative to Dir.
	Output string
	// Dates is the source of release dates: either DatesModTime or DatesGit.
	Dates string
}

// FS returns the filesystem of the project directory.
func (p Project) FS() ffs.PathedFS {
	return ffs.DirFS(p.Dir)
}

// OutputPath returns the path of the generated feed.
func (p Project) OutputPath() string {
	output := p.Output
	if output == "" {
		output = feeds.OutputFile
	}
	if filepath.IsAbs(output) {
		return output
	}
	return filepath.Join(p.Dir, output)
}

func (p Project) resolver(log zerolog.Logger) (feeds.Resolver, error) {
	resolver := feeds.NewResolver(p.FS())
	switch p.Dates {
	case "", DatesModTime:
		return resolver, nil
	case DatesGit:
		modTimes, err := git.NewCommitModTimes(p.Dir)
		if err != nil {
			return feeds.Resolver{}, errors.Wrap(err, "couldn't date files by commit history")
		}
		if head, err := modTimes.Repo.GetHead(); err == nil {
			log.Debug().
				Str("repo", modTimes.Repo.Root()).
				Str("commit", git.AbbreviateHash(head)).
				Msg("dating files by commit history")
		}
		resolver.ModTimes = modTimes
		return resolver, nil
	default:
		return feeds.Resolver{}, errors.Errorf(
			"unknown release date source %s (must be %s or %s)", p.Dates, DatesModTime, DatesGit,
		)
	}
}

// ResolveFeed loads the project's feed manifest and resolves it into a complete feed.
func ResolveFeed(p Project, log zerolog.Logger) (feeds.Feed, error) {
	if !ffs.DirExists(p.Dir) {
		return feeds.Feed{}, errors.Errorf("project directory %s doesn't exist", p.Dir)
	}
	resolver, err := p.resolver(log)
	if err != nil {
		return feeds.Feed{}, err
	}

	log.Debug().Str("manifest", ffs.OSPath(resolver.FS, feeds.ManifestFile)).Msg("loading manifest")
	decl, err := feeds.LoadFeedDecl(resolver.FS, feeds.ManifestFile)
	if err != nil {
		return feeds.Feed{}, err
	}
	feed, err := resolver.ResolveFeed(decl)
	if err != nil {
		return feeds.Feed{}, err
	}

	for id, macro := range feed.Macros.All() {
		for name, channel := range macro.Channels.All() {
			log.Debug().
				Str("macro", id).
				Str("channel", name).
				Str("version", channel.Version).
				Str("released", channel.Released).
				Bool("default", channel.Default).
				Int("files", len(channel.Files)).
				Msg("resolved channel")
		}
	}
	log.Info().Str("feed", feed.Name).Int("macros", feed.Macros.Len()).Msg("resolved feed")
	return feed, nil
}

// Build resolves the project's feed and saves it to the project's output path.
func Build(p Project, log zerolog.Logger) error {
	feed, err := ResolveFeed(p, log)
	if err != nil {
		return err
	}
	outputPath := p.OutputPath()
	if err = feeds.SaveFeed(outputPath, feed); err != nil {
		return err
	}
	log.Info().Str("path", outputPath).Msg("saved feed")
	return nil
}
