package feeds

import (
	"github.com/pkg/errors"

	"github.com/PlanktoScope/depfeed/pkg/structures"
)

// OutputFile is the name of the generated feed at the root of a project.
const OutputFile = "DependencyControl.json"

// A Feed is a fully-resolved DependencyControl feed.
type Feed struct {
	// General describes the feed as a whole; its fields are at the top level of the feed.
	General
	// Macros are the macros of the feed, in manifest order.
	Macros structures.OrderedMap[string, Macro]
	// Modules is the `modules` section of the manifest, if it exists.
	Modules *Raw
	// Sections holds all other top-level sections of the manifest, in manifest order.
	Sections structures.OrderedMap[string, Raw]
	// Order lists the names of the top-level sections in manifest order.
	Order []string
}

// ResolveFeed resolves every section of the feed manifest. It stops at the first error.
func (r Resolver) ResolveFeed(decl FeedDecl) (feed Feed, err error) {
	if feed.General, err = decl.General.Resolve(); err != nil {
		return Feed{}, errors.Wrap(err, "couldn't resolve general section")
	}
	for id, macroDecl := range decl.Macros.All() {
		macro, err := r.ResolveMacro(id, macroDecl, feed.General)
		if err != nil {
			return Feed{}, errors.Wrapf(err, "couldn't resolve macro %s", id)
		}
		feed.Macros.Set(id, macro)
	}
	feed.Modules = ResolveModules(decl.Modules)
	feed.Sections = decl.Sections
	feed.Order = decl.Order
	return feed, nil
}

// ResolveModules resolves the `modules` section of a feed manifest. Modules aren't interpreted, so
// the section is returned unchanged.
func ResolveModules(modules *Raw) *Raw {
	return modules
}

// Feed: json.Marshaler

// MarshalJSON encodes the feed with its sections in manifest order. The fields of the general
// section take the place of the section itself.
func (f Feed) MarshalJSON() ([]byte, error) {
	fields := &structures.OrderedMap[string, any]{}
	for _, section := range f.Order {
		f.addSection(fields, section)
	}
	f.addSection(fields, "general")
	f.addSection(fields, "macros")
	f.addSection(fields, "modules")
	for section := range f.Sections.All() {
		f.addSection(fields, section)
	}
	return fields.MarshalJSON()
}

func (f Feed) addSection(fields *structures.OrderedMap[string, any], section string) {
	switch section {
	case "general":
		for key, value := range f.General.fields().All() {
			if !fields.Has(key) {
				fields.Set(key, value)
			}
		}
	case "macros":
		if !fields.Has(section) {
			fields.Set(section, f.Macros)
		}
	case "modules":
		if f.Modules != nil && !fields.Has(section) {
			fields.Set(section, *f.Modules)
		}
	default:
		if value, ok := f.Sections.Get(section); ok && !fields.Has(section) {
			fields.Set(section, value)
		}
	}
}
