package feeds

import (
	"crypto/sha1" //nolint:gosec // the feed format identifies files by SHA-1 digests
	"encoding/hex"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// MacrosDir is the directory of a project which contains the files of its macros.
const MacrosDir = "macros"

// hashChunkSize is the size of the chunks in which files are read for hashing.
const hashChunkSize = 64 * 1024

// ResolveFileName determines the name of a file of a macro within the macros directory. A file
// name starting with `.` is a suffix appended to the macro's identifier.
func ResolveFileName(macroID, name string) string {
	if strings.HasPrefix(name, ".") {
		return macroID + name
	}
	return name
}

// FilePath determines the path of a file of a macro relative to the project root.
func FilePath(macroID, name string) string {
	return path.Join(MacrosDir, ResolveFileName(macroID, name))
}

// HashFile computes the lowercase hex SHA-1 digest of the contents of the file at the specified
// path. The file is read in fixed-size chunks.
func HashFile(fsys fs.FS, filePath string) (string, error) {
	file, err := fsys.Open(filePath)
	if err != nil {
		return "", errors.Wrapf(err, "couldn't open %s", filePath)
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha1.New() //nolint:gosec // see import
	buf := make([]byte, hashChunkSize)
	for {
		n, err := file.Read(buf)
		hash.Write(buf[:n])
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", errors.Wrapf(err, "couldn't read %s", filePath)
		}
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
