package feeds

import (
	"testing/fstest"
	"time"

	ffs "github.com/PlanktoScope/depfeed/pkg/fs"
)

var (
	day1 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	day2 = time.Date(2024, 3, 5, 12, 0, 0, 0, time.Local)
	day3 = time.Date(2024, 3, 9, 12, 0, 0, 0, time.Local)
)

func newProject(files fstest.MapFS) ffs.PathedFS {
	return ffs.AttachPath(files, "/project")
}

func textFile(content string, modified time.Time) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(content), ModTime: modified}
}

func ptr[T any](v T) *T {
	return &v
}
