package feeds

import (
	"path"
	"regexp"
	"time"

	"github.com/blang/semver/v4"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"

	ffs "github.com/PlanktoScope/depfeed/pkg/fs"
	"github.com/PlanktoScope/depfeed/pkg/structures"
)

var sha1Pattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

// Check looks for problems in the resolved feed which a client of the feed may not tolerate.
func (f Feed) Check() (errs []error) {
	if f.Name == "" {
		errs = append(errs, errors.New("feed has no name"))
	}
	for id, macro := range f.Macros.All() {
		errs = append(errs, ErrsWrapf(macro.Check(id), "invalid macro %s", id)...)
	}
	return errs
}

// Check looks for problems in the resolved macro with the specified identifier.
func (m Macro) Check(id string) (errs []error) {
	defaults := 0
	for name, channel := range m.Channels.All() {
		if channel.Default {
			defaults++
		}
		errs = append(errs, ErrsWrapf(channel.Check(id), "invalid channel %s", name)...)
	}
	if defaults != 1 {
		errs = append(errs, errors.Errorf("macro has %d default channels instead of 1", defaults))
	}
	return errs
}

// Check looks for problems in the resolved channel of the macro with the specified identifier.
func (c Channel) Check(macroID string) (errs []error) {
	if _, err := semver.Parse(c.Version); err != nil {
		errs = append(errs, errors.Wrapf(err, "version %s isn't a semantic version", c.Version))
	}
	if _, err := time.Parse(ReleaseDateLayout, c.Released); err != nil {
		errs = append(errs, errors.Wrapf(err, "release date %s isn't of form YYYY-MM-DD", c.Released))
	}
	if len(c.Files) == 0 {
		errs = append(errs, errors.New("channel has no files"))
	}
	names := make(structures.Set[string])
	for _, file := range c.Files {
		resolved := ResolveFileName(macroID, file.Name)
		if names.Has(resolved) {
			errs = append(errs, errors.Errorf("file %s is listed more than once", resolved))
		}
		names.Add(resolved)
		if !sha1Pattern.MatchString(file.SHA1) {
			errs = append(errs, errors.Errorf(
				"sha1 %s of file %s isn't a lowercase hex SHA-1 digest", file.SHA1, resolved,
			))
		}
	}
	return errs
}

// ReferencedFiles lists the paths (relative to the project root) of all files of the feed's
// macros.
func (f Feed) ReferencedFiles() structures.Set[string] {
	files := make(structures.Set[string])
	for id, macro := range f.Macros.All() {
		for _, channel := range macro.Channels.All() {
			for _, file := range channel.Files {
				files.Add(FilePath(id, file.Name))
			}
		}
	}
	return files
}

// UnreferencedFiles lists the files in the macros directory of the project in fsys which aren't
// files of any of the feed's macros, in lexicographic order.
func UnreferencedFiles(fsys ffs.PathedFS, feed Feed) ([]string, error) {
	macrosFS, err := fsys.Sub(MacrosDir)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't open %s/%s", fsys.Path(), MacrosDir)
	}
	const pattern = "**"
	fileNames, err := doublestar.Glob(macrosFS, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Wrapf(
			err, "couldn't search for files matching %s/%s", macrosFS.Path(), pattern,
		)
	}
	present := make(structures.Set[string])
	for _, fileName := range fileNames {
		present.Add(path.Join(MacrosDir, fileName))
	}
	return structures.Sorted(present.Difference(feed.ReferencedFiles())), nil
}
