package feeds

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

// jsonIndent is the indentation of each nesting level of a serialized feed.
const jsonIndent = "    "

// WriteFeed writes the feed to w as indented JSON, with keys in the order in which they were
// declared.
func WriteFeed(w io.Writer, feed Feed) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", jsonIndent)
	return errors.Wrap(encoder.Encode(feed), "couldn't encode feed as JSON")
}

// SaveFeed writes the feed as indented JSON to the specified file, replacing any existing file.
// Nothing is written if the feed can't be encoded.
func SaveFeed(filePath string, feed Feed) error {
	var buf bytes.Buffer
	if err := WriteFeed(&buf, feed); err != nil {
		return err
	}
	const perm = 0o644 // owner rw, group r, public r
	if err := os.WriteFile(filePath, buf.Bytes(), perm); err != nil {
		return errors.Wrapf(err, "couldn't save feed to %s", filePath)
	}
	return nil
}
