package feedgen

import (
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/PlanktoScope/depfeed/internal/clients/cli"
	"github.com/PlanktoScope/depfeed/pkg/feeds"
)

// Check resolves the project's feed without saving it, and prints any problems with the feed.
// Files in the macros directory which the feed doesn't reference are reported as warnings.
func Check(indent int, out io.Writer, p Project, log zerolog.Logger) error {
	feed, err := ResolveFeed(p, log)
	if err != nil {
		return err
	}

	unreferenced, err := feeds.UnreferencedFiles(p.FS(), feed)
	if err != nil {
		return err
	}
	for _, filePath := range unreferenced {
		log.Warn().Str("path", filePath).Msg("file isn't referenced by any macro")
	}

	errs := feed.Check()
	if len(errs) == 0 {
		cli.IndentedFprintln(indent, out, "The feed is valid!")
		return nil
	}
	cli.IndentedFprintln(indent, out, "Found problems in the feed:")
	for _, err := range errs {
		cli.BulletedFprintln(indent+1, out, err)
	}
	return errors.Errorf("feed checks failed (%d problems)", len(errs))
}
