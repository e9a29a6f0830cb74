package feeds

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var channelCheckTests = map[string]struct {
	in   Channel
	errs int
}{
	"valid": {
		in: Channel{
			Version:  "1.2.3",
			Released: "2024-03-05",
			Files:    []FileRef{{Name: ".moon", SHA1: moonV123SHA1}},
		},
	},
	"invalid version": {
		in: Channel{
			Version:  "v1.2",
			Released: "2024-03-05",
			Files:    []FileRef{{Name: ".moon", SHA1: moonV123SHA1}},
		},
		errs: 1,
	},
	"invalid release date": {
		in: Channel{
			Version:  "1.2.3",
			Released: "03/05/2024",
			Files:    []FileRef{{Name: ".moon", SHA1: moonV123SHA1}},
		},
		errs: 1,
	},
	"duplicate files": {
		in: Channel{
			Version:  "1.2.3",
			Released: "2024-03-05",
			Files: []FileRef{
				{Name: ".moon", SHA1: moonV123SHA1},
				{Name: "ns.foo.moon", SHA1: moonV123SHA1},
			},
		},
		errs: 1,
	},
	"uppercase digest": {
		in: Channel{
			Version:  "1.2.3",
			Released: "2024-03-05",
			Files:    []FileRef{{Name: ".moon", SHA1: "DFE6D9ED9B896557EC32B5E63B09F11AB8410CA3"}},
		},
		errs: 1,
	},
}

func TestChannelCheck(t *testing.T) {
	t.Parallel()
	for name, test := range channelCheckTests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			errs := test.in.Check("ns.foo")
			if len(errs) != test.errs {
				t.Errorf("got %d errors, want %d: %v", len(errs), test.errs, errs)
			}
		})
	}
}

func TestFeedCheck(t *testing.T) {
	t.Parallel()
	feed := loadTestFeed(t)
	if errs := feed.Check(); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestUnreferencedFiles(t *testing.T) {
	t.Parallel()
	feed := loadTestFeed(t)
	fsys := newProject(testProjectFiles())

	got, err := UnreferencedFiles(fsys, feed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"macros/unreferenced.md"}, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
}

func TestUnreferencedFilesWithoutMacrosDir(t *testing.T) {
	t.Parallel()
	fsys := newProject(fstest.MapFS{ManifestFile: {Data: []byte("general: {}\n")}})

	got, err := UnreferencedFiles(fsys, Feed{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{}, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
}
