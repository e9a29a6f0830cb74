// Package fs provides filesystem abstractions which remember where they are located.
package fs

import (
	"io/fs"
	"path"
)

// Pather is something with a path.
type Pather interface {
	// Path returns the path of the instance.
	Path() string
}

// A PathedFS provides access to a hierarchical file system locatable at some path.
type PathedFS interface {
	fs.FS
	Pather
	// Sub returns a PathedFS corresponding to the subtree rooted at dir.
	Sub(dir string) (PathedFS, error)
}

// AttachPath makes a [PathedFS] for fsys with the specified path.
func AttachPath(fsys fs.FS, path string) PathedFS {
	return pathedFS{
		FS:   fsys,
		path: path,
	}
}

// pathedFS

// pathedFS is a basic implementation of the [PathedFS] interface.
type pathedFS struct {
	fs.FS
	path string
}

// Path returns the path where the file system is located.
func (f pathedFS) Path() string {
	return f.path
}

// Sub returns a PathedFS corresponding to the subtree rooted at fsys's dir.
func (f pathedFS) Sub(dir string) (PathedFS, error) {
	subFS, err := fs.Sub(f.FS, dir)
	return pathedFS{
		FS:   subFS,
		path: path.Join(f.path, dir),
	}, err
}
