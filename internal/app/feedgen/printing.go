package feedgen

import (
	"io"
	"io/fs"

	"github.com/docker/go-units"
	"github.com/rs/zerolog"

	"github.com/PlanktoScope/depfeed/internal/clients/cli"
	"github.com/PlanktoScope/depfeed/pkg/feeds"
	ffs "github.com/PlanktoScope/depfeed/pkg/fs"
)

// Show resolves the project's feed without saving it, and prints a summary of the feed.
func Show(indent int, out io.Writer, p Project, log zerolog.Logger) error {
	feed, err := ResolveFeed(p, log)
	if err != nil {
		return err
	}
	PrintFeed(indent, out, p.FS(), feed)
	return nil
}

// PrintFeed prints a summary of the feed, including the sizes of the files of the project in fsys.
func PrintFeed(indent int, out io.Writer, fsys ffs.PathedFS, feed feeds.Feed) {
	cli.IndentedFprintf(indent, out, "Feed: %s\n", feed.Name)
	indent++
	if feed.Description != feed.Name {
		cli.IndentedFprintf(indent, out, "Description: %s\n", feed.Description)
	}
	cli.IndentedFprintf(indent, out, "Maintainer: %s\n", feed.Maintainer)
	cli.IndentedFprintf(indent, out, "Base URL: %s\n", feed.BaseURL)
	cli.IndentedFprintf(indent, out, "File base URL: %s\n", feed.FileBaseURL)

	if feed.Macros.Len() == 0 {
		cli.IndentedFprintln(indent, out, "Macros: (none)")
	} else {
		cli.IndentedFprintln(indent, out, "Macros:")
	}
	for id, macro := range feed.Macros.All() {
		printMacro(indent+1, out, fsys, id, macro)
	}
	if feed.Modules != nil {
		cli.IndentedFprintln(indent, out, "Modules: (passed through unchanged)")
	}
}

func printMacro(indent int, out io.Writer, fsys ffs.PathedFS, id string, macro feeds.Macro) {
	cli.BulletedFprintf(indent, out, "%s (%s)\n", id, macro.Name)
	indent++
	cli.IndentedFprintf(indent, out, "Author: %s\n", macro.Author)
	cli.IndentedFprintln(indent, out, "Channels:")
	for name, channel := range macro.Channels.All() {
		defaultMarker := ""
		if channel.Default {
			defaultMarker = " (default)"
		}
		cli.BulletedFprintf(
			indent+1, out, "%s%s: %s, released %s\n",
			name, defaultMarker, channel.Version, channel.Released,
		)
		for _, file := range channel.Files {
			printFile(indent+2, out, fsys, id, file)
		}
	}
}

func printFile(indent int, out io.Writer, fsys ffs.PathedFS, macroID string, file feeds.FileRef) {
	const shortHashLength = 7
	filePath := feeds.FilePath(macroID, file.Name)
	size := "not in project"
	if info, err := fs.Stat(fsys, filePath); err == nil {
		size = units.HumanSize(float64(info.Size()))
	}
	cli.BulletedFprintf(
		indent, out, "%s [%s] %s\n", filePath, file.SHA1[:min(len(file.SHA1), shortHashLength)], size,
	)
}
