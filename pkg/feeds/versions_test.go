package feeds

import (
	"strings"
	"testing"
	"testing/fstest"
)

var parseVersionLineTests = map[string]struct {
	version string
	ok      bool
}{
	`script_version = "1.2.3"`:         {"1.2.3", true},
	`export script_version = "1.2.3"`:  {"1.2.3", true},
	`script_version="1.2.3"`:           {"1.2.3", true},
	"script_version\t=\t'0.4.0'  ":     {"0.4.0", true},
	`script_version = 1.2.3`:           {"1.2.3", true},
	`script_version = "1.2.3'`:         {`"1.2.3'`, true},
	`script_version = ""1.2.3""`:       {`"1.2.3"`, true},
	`script_version = "1.0" -- note`:   {`"1.0" -- note`, true},
	`script_version = `:                {"", false},
	`script_version = ""`:              {"", false},
	`script_version: "1.2.3"`:          {"", false},
	`script_versions = "1.2.3"`:        {"", false},
	`  script_version = "1.2.3"`:       {"", false},
	`local script_version = "1.2.3"`:   {"", false},
	`export  script_version = "1.2.3"`: {"", false},
	`script_author = "someone"`:        {"", false},
	``:                                 {"", false},
}

func TestParseVersionLine(t *testing.T) {
	t.Parallel()
	for line, want := range parseVersionLineTests {
		t.Run(line, func(t *testing.T) {
			t.Parallel()

			version, ok := ParseVersionLine(line)
			if version != want.version || ok != want.ok {
				t.Errorf(
					"ParseVersionLine(%q) = (%q, %t), want (%q, %t)",
					line, version, ok, want.version, want.ok,
				)
			}
		})
	}
}

var scanVersionTests = map[string]struct {
	in   string
	want string
}{
	"empty":        {"", ""},
	"no marker":    {"script_name = \"Foo\"\nscript_author = \"me\"\n", ""},
	"first line":   {"script_version = \"1.0.0\"\nscript_version = \"2.0.0\"\n", "1.0.0"},
	"crlf":         {"script_name = \"Foo\"\r\nexport script_version = \"1.0.1\"\r\n", "1.0.1"},
	"no final eol": {"script_name = \"Foo\"\nscript_version = \"3.1.4\"", "3.1.4"},
	"skips empty":  {"script_version = \"\"\nscript_version = \"0.1.0\"\n", "0.1.0"},
	"long line": {
		strings.Repeat("-", 100000) + "\nscript_version = \"5.0.0\"\n", "5.0.0",
	},
}

func TestScanVersion(t *testing.T) {
	t.Parallel()
	for name, test := range scanVersionTests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := ScanVersion(strings.NewReader(test.in))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != test.want {
				t.Errorf("ScanVersion() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestScanFileVersion(t *testing.T) {
	t.Parallel()
	png := "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\nscript_version = \"9.9.9\"\n"
	fsys := fstest.MapFS{
		"macros/text.moon": {Data: []byte("export script_version = \"1.2.3\"\n")},
		"macros/icon.png":  {Data: []byte(png)},
	}

	got, err := ScanFileVersion(fsys, "macros/text.moon")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1.2.3" {
		t.Errorf("text file: got version %q, want %q", got, "1.2.3")
	}

	got, err = ScanFileVersion(fsys, "macros/icon.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("binary file: got version %q, want none", got)
	}

	if _, err = ScanFileVersion(fsys, "macros/missing.moon"); err == nil {
		t.Error("expected error for missing file")
	}
}
