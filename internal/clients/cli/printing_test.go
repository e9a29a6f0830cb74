package cli

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var indentedWriterTests = map[string]struct {
	indent int
	writes []string
	out    string
}{
	"empty": {indent: 1},
	"one line": {
		indent: 1,
		writes: []string{"hello\n"},
		out:    "  hello\n",
	},
	"split writes": {
		indent: 2,
		writes: []string{"hel", "lo\nwor", "ld\n"},
		out:    "    hello\n    world\n",
	},
	"carriage return": {
		indent: 1,
		writes: []string{"50%\r100%\n"},
		out:    "  50%\r  100%\n",
	},
	"no indent": {
		writes: []string{"a\nb\n"},
		out:    "a\nb\n",
	},
}

func TestIndentedWriter(t *testing.T) {
	t.Parallel()
	for name, test := range indentedWriterTests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			t.Log(name)
			buf := &bytes.Buffer{}
			w := NewIndentedWriter(test.indent, buf)
			for _, s := range test.writes {
				if _, err := w.Write([]byte(s)); err != nil {
					t.Fatal(err)
				}
			}
			if diff := cmp.Diff(test.out, buf.String()); diff != "" {
				t.Errorf("diff (-want +got):\n%+v", diff)
			}
		})
	}
}

func TestBulletedFprintf(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	IndentedFprintln(0, buf, "Macros:")
	BulletedFprintf(1, buf, "%s: %s\n", "ns.foo", "1.0.0")
	BulletedFprintln(2, buf, "main")
	IndentedFprintf(3, buf, "%d files\n", 2)
	want := "Macros:\n  - ns.foo: 1.0.0\n    - main\n      2 files\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("diff (-want +got):\n%+v", diff)
	}
}
