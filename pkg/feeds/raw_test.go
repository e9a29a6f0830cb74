package feeds

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

var rawJSONTests = map[string]struct {
	in   string
	want string
}{
	"scalars": {
		in:   "[1, 2.5, true, null, text, '007', 2024-01-01]",
		want: `[1,2.5,true,null,"text","007","2024-01-01"]`,
	},
	"timestamps and tagged scalars": {
		in:   "{released: 2024-02-03, at: 2024-02-03T10:00:00Z, tagged: !custom value}",
		want: `{"released":"2024-02-03","at":"2024-02-03T10:00:00Z","tagged":"value"}`,
	},
	"mapping order": {
		in:   "{zeta: 1, alpha: 2, mid: {b: 1, a: 2}}",
		want: `{"zeta":1,"alpha":2,"mid":{"b":1,"a":2}}`,
	},
	"anchors and merges": {
		in:   "{base: &base {x: 1, y: 2}, derived: {<<: *base, y: 3, z: 4}, copy: *base}",
		want: `{"base":{"x":1,"y":2},"derived":{"x":1,"y":3,"z":4},"copy":{"x":1,"y":2}}`,
	},
	"html characters": {
		in:   "{url: 'https://example.com/?a=1&b=<2>'}",
		want: `{"url":"https://example.com/?a=1&b=<2>"}`,
	},
	"empty": {
		in:   "{}",
		want: `{}`,
	},
}

func TestRawMarshalJSON(t *testing.T) {
	t.Parallel()
	for name, test := range rawJSONTests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var raw Raw
			if err := yaml.Unmarshal([]byte(test.in), &raw); err != nil {
				t.Fatalf("couldn't parse YAML: %v", err)
			}
			got, err := raw.MarshalJSON()
			if err != nil {
				t.Fatalf("couldn't encode JSON: %v", err)
			}
			if diff := cmp.Diff(test.want, string(got)); diff != "" {
				t.Errorf("diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeExtra(t *testing.T) {
	t.Parallel()
	var decl MacroDecl
	in := "{name: Foo, description: Bar, channels: {}, changelog: {'1.0.0': [Initial]}}"
	if err := yaml.Unmarshal([]byte(in), &decl); err != nil {
		t.Fatalf("couldn't parse YAML: %v", err)
	}
	if decl.Name != "Foo" {
		t.Errorf("name %q, want Foo", decl.Name)
	}
	if got, want := decl.Extra.Keys(), []string{"description", "changelog"}; !cmp.Equal(got, want) {
		t.Errorf("extra keys diff (-want +got):\n%s", cmp.Diff(want, got))
	}
}
