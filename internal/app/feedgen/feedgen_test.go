package feedgen

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/PlanktoScope/depfeed/pkg/feeds"
)

const testManifest = `general:
  name: Test Feed
  maintainer: someone
  repository: org/repo
macros:
  ns.fooBar: {}
`

func writeProject(t *testing.T, manifest string, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	modified := time.Date(2024, 3, 5, 12, 0, 0, 0, time.Local)
	files[feeds.ManifestFile] = manifest
	for name, content := range files {
		filePath := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filePath, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(filePath, modified, modified); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestBuild(t *testing.T) {
	t.Parallel()
	dir := writeProject(t, testManifest, map[string]string{
		"macros/ns.fooBar.moon": "export script_version = \"1.2.3\"\n",
	})
	logs := &bytes.Buffer{}
	log := NewLogger(LoggerOptions{Format: LogFormatJSON, Output: logs})

	if err := Build(Project{Dir: dir}, log); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	saved, err := os.ReadFile(filepath.Join(dir, feeds.OutputFile))
	if err != nil {
		t.Fatalf("couldn't read feed: %v", err)
	}
	for _, want := range []string{
		`    "baseUrl": "https://github.com/org/repo",`,
		`            "name": "foo Bar"`,
		`                    "version": "1.2.3",`,
		`                    "released": "2024-03-05",`,
		`                    "default": true`,
	} {
		if !strings.Contains(string(saved), want+"\n") {
			t.Errorf("feed is missing line %q:\n%s", want, saved)
		}
	}
	if !strings.Contains(logs.String(), `"message":"saved feed"`) {
		t.Errorf("missing log entry for saved feed:\n%s", logs.String())
	}
}

func TestBuildConfigErrorWritesNothing(t *testing.T) {
	t.Parallel()
	dir := writeProject(t, testManifest, map[string]string{
		"macros/ns.fooBar.moon": "-- no version\n",
	})

	err := Build(Project{Dir: dir, Output: "out/feed.json"}, zerolog.Nop())
	if !feeds.IsConfigError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, err = os.Stat(filepath.Join(dir, "out")); !os.IsNotExist(err) {
		t.Errorf("expected no output, got %v", err)
	}
}

func TestBuildUnknownDates(t *testing.T) {
	t.Parallel()
	dir := writeProject(t, testManifest, map[string]string{})
	if err := Build(Project{Dir: dir, Dates: "ctime"}, zerolog.Nop()); err == nil {
		t.Error("expected error for unknown release date source")
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()
	dir := writeProject(t, testManifest, map[string]string{
		"macros/ns.fooBar.moon": "export script_version = \"1.2\"\n",
		"macros/stray.lua":      "-- stray\n",
	})
	logs := &bytes.Buffer{}
	out := &bytes.Buffer{}

	err := Check(0, out, Project{Dir: dir}, NewLogger(LoggerOptions{Format: LogFormatJSON, Output: logs}))
	if err == nil {
		t.Fatal("expected check failure for non-semantic version")
	}
	if !strings.HasPrefix(out.String(), "Found problems in the feed:\n  - ") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
	if !strings.Contains(logs.String(), `"path":"macros/stray.lua"`) {
		t.Errorf("missing warning about unreferenced file:\n%s", logs.String())
	}
	if _, err = os.Stat(filepath.Join(dir, feeds.OutputFile)); !os.IsNotExist(err) {
		t.Errorf("check shouldn't save the feed, got %v", err)
	}
}

func TestShow(t *testing.T) {
	t.Parallel()
	dir := writeProject(t, testManifest, map[string]string{
		"macros/ns.fooBar.moon": "export script_version = \"1.2.3\"\n",
	})
	out := &bytes.Buffer{}

	if err := Show(0, out, Project{Dir: dir}, zerolog.Nop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Feed: Test Feed\n" +
		"  Maintainer: someone\n" +
		"  Base URL: https://github.com/org/repo\n" +
		"  File base URL: https://raw.githubusercontent.com/org/repo/@{channel}\n" +
		"  Macros:\n" +
		"    - ns.fooBar (foo Bar)\n" +
		"      Author: someone\n" +
		"      Channels:\n" +
		"        - main (default): 1.2.3, released 2024-03-05\n" +
		"          - macros/ns.fooBar.moon [dfe6d9e] 32B\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
}
