package feeds

import (
	"bufio"
	"io"
	"io/fs"
	"strings"

	"github.com/h2non/filetype"
	"github.com/pkg/errors"
)

const (
	// versionKey is the variable which macros assign their version to.
	versionKey = "script_version"
	// exportPrefix is the optional MoonScript keyword before a version assignment.
	exportPrefix = "export "
	// fileTypeHeaderSize is the number of leading bytes needed to detect binary file types.
	fileTypeHeaderSize = 262
)

// ParseVersionLine extracts the version from a line of the form
// `[export ]script_version = <value>`. The value is trimmed of surrounding whitespace and then of
// one pair of matching quotes. The result is false if the line isn't a version assignment or the
// value is empty.
func ParseVersionLine(line string) (version string, ok bool) {
	rest := strings.TrimPrefix(line, exportPrefix)
	if rest, ok = strings.CutPrefix(rest, versionKey); !ok {
		return "", false
	}
	rest = strings.TrimLeft(rest, " \t\r\n\f\v")
	if rest, ok = strings.CutPrefix(rest, "="); !ok {
		return "", false
	}
	version = unquote(strings.TrimSpace(rest))
	return version, version != ""
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}

// ScanVersion returns the version from the first line of r which assigns a version, or an empty
// string if no line does.
func ScanVersion(r io.Reader) (string, error) {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if version, ok := ParseVersionLine(strings.TrimRight(line, "\r\n")); ok {
			return version, nil
		}
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
	}
}

// ScanFileVersion returns the version declared by the file at the specified path, or an empty
// string if the file doesn't declare a version. Files recognized as a binary format (e.g. images
// or archives) never declare a version.
func ScanFileVersion(fsys fs.FS, filePath string) (string, error) {
	file, err := fsys.Open(filePath)
	if err != nil {
		return "", errors.Wrapf(err, "couldn't open %s", filePath)
	}
	defer func() {
		_ = file.Close()
	}()

	reader := bufio.NewReader(file)
	header, err := reader.Peek(fileTypeHeaderSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", errors.Wrapf(err, "couldn't read %s", filePath)
	}
	if kind, _ := filetype.Match(header); kind != filetype.Unknown {
		return "", nil
	}

	version, err := ScanVersion(reader)
	if err != nil {
		return "", errors.Wrapf(err, "couldn't read %s", filePath)
	}
	return version, nil
}
