// Package feeds implements the generation of DependencyControl feeds for macros from feed
// manifests.
package feeds

import (
	"io/fs"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	ffs "github.com/PlanktoScope/depfeed/pkg/fs"
	"github.com/PlanktoScope/depfeed/pkg/structures"
)

// ManifestFile is the name of the feed manifest at the root of a project.
const ManifestFile = "FeedInfo.yaml"

// A FeedDecl is a feed manifest, which declares the macros of a feed.
type FeedDecl struct {
	// General describes the feed as a whole.
	General GeneralDecl
	// Macros declares the macros of the feed, in manifest order.
	Macros structures.OrderedMap[string, MacroDecl]
	// Modules is the `modules` section of the manifest, if it exists.
	Modules *Raw
	// Sections holds all other top-level sections of the manifest, in manifest order.
	Sections structures.OrderedMap[string, Raw]
	// Order lists the names of the top-level sections in manifest order.
	Order []string
}

// LoadFeedDecl loads a FeedDecl from the specified file path in the provided base filesystem.
func LoadFeedDecl(fsys ffs.PathedFS, filePath string) (FeedDecl, error) {
	bytes, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return FeedDecl{}, errors.Wrapf(
			err, "couldn't read feed manifest %s/%s", fsys.Path(), filePath,
		)
	}
	declaration := FeedDecl{}
	if err = yaml.Unmarshal(bytes, &declaration); err != nil {
		return FeedDecl{}, errors.Wrap(err, "couldn't parse feed manifest")
	}
	return declaration, nil
}

// FeedDecl: yaml.Unmarshaler

func (d *FeedDecl) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode {
		return errors.Errorf("line %d: feed manifest must be a mapping", node.Line)
	}
	decl := FeedDecl{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var section string
		if err := node.Content[i].Decode(&section); err != nil {
			return errors.Wrapf(err, "couldn't decode section name on line %d", node.Content[i].Line)
		}
		value := node.Content[i+1]
		decl.Order = append(decl.Order, section)
		switch section {
		case "general":
			if err := value.Decode(&decl.General); err != nil {
				return errors.Wrap(err, "couldn't decode general section")
			}
		case "macros":
			if err := value.Decode(&decl.Macros); err != nil {
				return errors.Wrap(err, "couldn't decode macros section")
			}
		case "modules":
			decl.Modules = &Raw{node: value}
		default:
			decl.Sections.Set(section, Raw{node: value})
		}
	}
	*d = decl
	return nil
}
