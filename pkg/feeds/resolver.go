package feeds

import (
	"io/fs"
	"time"

	"github.com/pkg/errors"

	ffs "github.com/PlanktoScope/depfeed/pkg/fs"
)

// ReleaseDateLayout is the layout of the release dates of channels.
const ReleaseDateLayout = "2006-01-02"

// A Resolver resolves feed declarations against the files of a project.
type Resolver struct {
	// FS is the root of the project, which contains the macros directory.
	FS ffs.PathedFS
	// ModTimes reports when files in FS were last changed. If it's nil, the modification times
	// recorded by FS are used.
	ModTimes ModTimer
}

// NewResolver makes a Resolver for the project in fsys which dates files by their modification
// times.
func NewResolver(fsys ffs.PathedFS) Resolver {
	return Resolver{FS: fsys}
}

func (r Resolver) modTimes() ModTimer {
	if r.ModTimes == nil {
		return FSModTimes{FS: r.FS}
	}
	return r.ModTimes
}

// A ModTimer reports when a file was last changed.
type ModTimer interface {
	// ModTime returns the time when the file at the specified path (relative to the project root)
	// was last changed.
	ModTime(filePath string) (time.Time, error)
}

// FSModTimes is a [ModTimer] which reports the modification times recorded in a filesystem.
type FSModTimes struct {
	FS fs.FS
}

func (m FSModTimes) ModTime(filePath string) (time.Time, error) {
	info, err := fs.Stat(m.FS, filePath)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "couldn't stat %s", filePath)
	}
	return info.ModTime(), nil
}

// FormatReleaseDate formats the time as a release date in the local time zone.
func FormatReleaseDate(t time.Time) string {
	return t.Local().Format(ReleaseDateLayout)
}
