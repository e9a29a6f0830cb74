package main

import (
	"log"
	"os"
	"runtime/debug"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"

	"github.com/PlanktoScope/depfeed/internal/app/feedgen"
	"github.com/PlanktoScope/depfeed/pkg/feeds"
)

func main() {
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

var app = &cli.App{
	Name:    "depfeed",
	Version: toolVersion,
	Usage: "Generates the DependencyControl feed of a project's macros from its " +
		feeds.ManifestFile,
	Action: buildAction,
	Commands: []*cli.Command{
		{
			Name:   "build",
			Usage:  "Resolves the feed and saves it to the output file",
			Action: buildAction,
		},
		{
			Name:   "check",
			Usage:  "Resolves the feed and reports problems with it, without saving it",
			Action: checkAction,
		},
		{
			Name:   "show",
			Usage:  "Resolves the feed and prints a summary of it, without saving it",
			Action: showAction,
		},
	},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "root",
			Value:   ".",
			Usage:   "Path of the project directory containing " + feeds.ManifestFile,
			EnvVars: []string{"DEPFEED_ROOT"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   feeds.OutputFile,
			Usage:   "Path of the generated feed, relative to the project directory",
			EnvVars: []string{"DEPFEED_OUTPUT"},
		},
		&cli.StringFlag{
			Name:  "dates",
			Value: feedgen.DatesModTime,
			Usage: "Source of the release dates of channels (" + feedgen.DatesModTime +
				": file modification times; " + feedgen.DatesGit + ": commit history)",
			EnvVars: []string{"DEPFEED_DATES"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Minimum level of log messages (debug, info, warn, or error)",
			EnvVars: []string{"DEPFEED_LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   feedgen.LogFormatPretty,
			Usage:   "Format of log messages (" + feedgen.LogFormatPretty + " or " + feedgen.LogFormatJSON + ")",
			EnvVars: []string{"DEPFEED_LOG_FORMAT"},
		},
	},
	Suggest: true,
}

func project(c *cli.Context) feedgen.Project {
	return feedgen.Project{
		Dir:    c.String("root"),
		Output: c.String("output"),
		Dates:  c.String("dates"),
	}
}

func logger(c *cli.Context) feedgen.LoggerOptions {
	return feedgen.LoggerOptions{
		Level:  c.String("log-level"),
		Format: c.String("log-format"),
	}
}

func buildAction(c *cli.Context) error {
	return feedgen.Build(project(c), feedgen.NewLogger(logger(c)))
}

func checkAction(c *cli.Context) error {
	return feedgen.Check(0, os.Stdout, project(c), feedgen.NewLogger(logger(c)))
}

func showAction(c *cli.Context) error {
	return feedgen.Show(0, os.Stdout, project(c), feedgen.NewLogger(logger(c)))
}

// Versioning

// fallbackVersion is the version which the tool reports itself as if its actual version is
// unknown.
const fallbackVersion = "v0.1.0-dev"

var (
	toolVersion = determineVersion(buildSummary, fallbackVersion)
	// buildSummary should be overridden by ldflags, such as with GoReleaser's "Summary".
	buildSummary = ""
)

// determineVersion returns either a semver, a pseudoversion, or a Git hash based on information
// available from Go's `debug.ReadBuildInfo()`.
func determineVersion(override, fallback string) string {
	if override != "" {
		return override
	}

	const dirtySuffix = "-dirty"
	if info, ok := debug.ReadBuildInfo(); ok &&
		info.Main.Version != "" && info.Main.Version != "(devel)" {
		v := info.Main.Version
		if versioninfo.DirtyBuild {
			v += dirtySuffix
		}
		return v
	}
	if v := versioninfo.Version; v != "unknown" && v != "(devel)" {
		if versioninfo.DirtyBuild {
			v += dirtySuffix
		}
		return v
	}

	if r := versioninfo.Revision; r != "unknown" && r != "" {
		if versioninfo.DirtyBuild {
			r += dirtySuffix
		}
		return r
	}
	return fallback
}
