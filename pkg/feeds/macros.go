package feeds

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/PlanktoScope/depfeed/pkg/structures"
)

// DefaultChannel is the name of the channel of a macro which doesn't declare any channels.
const DefaultChannel = "main"

// A MacroDecl declares a macro of a feed.
type MacroDecl struct {
	// Name is the human-readable name of the macro. It defaults to a name derived from the macro's
	// identifier.
	Name string `yaml:"name"`
	// Author is the author of the macro. It defaults to the maintainer of the feed.
	Author string `yaml:"author"`
	// URL is the URL template of the macro's home page.
	URL string `yaml:"url"`
	// FileBaseURL is the URL template under which the macro's files are downloadable.
	FileBaseURL string `yaml:"fileBaseUrl"`
	// Channels declares the release channels of the macro, in manifest order.
	Channels structures.OrderedMap[string, ChannelDecl] `yaml:"channels"`
	// Extra holds all other keys of the macro, such as its description and changelog.
	Extra Extra `yaml:"-"`
	// Order lists the keys of the manifest object in manifest order.
	Order []string `yaml:"-"`
}

var macroDeclKeys = []string{"name", "author", "url", "fileBaseUrl", "channels"}

// A Macro is a fully-resolved macro of a feed.
type Macro struct {
	Name        string
	Author      string
	URL         string
	FileBaseURL string
	Channels    structures.OrderedMap[string, Channel]
	Extra       Extra
	Order       []string
}

// MacroDecl

func (d *MacroDecl) UnmarshalYAML(node *yaml.Node) (err error) {
	type plain MacroDecl
	p := plain{}
	if err = node.Decode(&p); err != nil {
		return err
	}
	if p.Extra, err = decodeExtra(node, macroDeclKeys...); err != nil {
		return err
	}
	if p.Order, err = decodeOrder(node); err != nil {
		return err
	}
	*d = MacroDecl(p)
	return nil
}

// AddDefaults makes a copy with empty values replaced by default values, for the macro with the
// specified identifier in a feed described by general.
func (d MacroDecl) AddDefaults(id string, general General) MacroDecl {
	if d.Name == "" {
		d.Name = DeriveName(id)
	}
	if d.Author == "" {
		d.Author = general.Maintainer
	}
	if d.URL == "" {
		d.URL = DefaultMacroURL
	}
	if d.FileBaseURL == "" {
		d.FileBaseURL = DefaultMacroFileBase
	}
	updatedChannels := structures.OrderedMap[string, ChannelDecl]{}
	for name, channel := range d.Channels.All() {
		updatedChannels.Set(name, channel.AddDefaults())
	}
	if updatedChannels.Len() == 0 {
		updatedChannels.Set(DefaultChannel, ChannelDecl{}.AddDefaults())
	}
	d.Channels = updatedChannels
	return d
}

// DeriveName makes a human-readable name from a macro identifier: the namespace (everything up to
// the first `.`) is removed, hyphens become spaces, and camel-case words are split apart. For
// example, `ns.fooBar-baz` becomes `foo Bar baz`.
func DeriveName(id string) string {
	if _, name, ok := strings.Cut(id, "."); ok {
		id = name
	}
	id = strings.ReplaceAll(id, "-", " ")

	var b strings.Builder
	b.Grow(len(id) + len(id)/4)
	var prev byte
	for i := 0; i < len(id); i++ {
		c := id[i]
		if isASCIILower(prev) && isASCIIUpper(c) {
			b.WriteByte(' ')
		}
		b.WriteByte(c)
		prev = c
	}
	return b.String()
}

func isASCIILower(c byte) bool {
	return 'a' <= c && c <= 'z'
}

func isASCIIUpper(c byte) bool {
	return 'A' <= c && c <= 'Z'
}

// ResolveMacro applies defaults to the macro declaration and resolves all of its channels.
func (r Resolver) ResolveMacro(id string, decl MacroDecl, general General) (Macro, error) {
	decl = decl.AddDefaults(id, general)
	channels, err := r.ResolveChannels(id, decl.Channels)
	if err != nil {
		return Macro{}, errors.Wrap(err, "couldn't resolve channels")
	}
	return Macro{
		Name:        decl.Name,
		Author:      decl.Author,
		URL:         decl.URL,
		FileBaseURL: decl.FileBaseURL,
		Channels:    channels,
		Extra:       decl.Extra,
		Order:       decl.Order,
	}, nil
}

// Macro: json.Marshaler

func (m Macro) MarshalJSON() ([]byte, error) {
	fields := &structures.OrderedMap[string, any]{}
	if m.Author != "" {
		fields.Set("author", m.Author)
	}
	fields.Set("url", m.URL)
	fields.Set("fileBaseUrl", m.FileBaseURL)
	fields.Set("channels", m.Channels)
	fields.Set("name", m.Name)
	return objectJSON(m.Order, fields, m.Extra)
}
