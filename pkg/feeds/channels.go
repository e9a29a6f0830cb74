package feeds

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/PlanktoScope/depfeed/pkg/structures"
)

// DefaultFileName is the name of the file of a channel which doesn't declare any files. It names
// the file `<macro identifier>.moon`.
const DefaultFileName = ".moon"

// A ChannelDecl declares a release channel of a macro.
type ChannelDecl struct {
	// Version is the version of the macro in the channel. It defaults to the version declared by
	// the first of the channel's files which declares a version.
	Version string `yaml:"version"`
	// Released is the release date (YYYY-MM-DD) of the channel. It defaults to the date when the
	// channel's files were last modified.
	Released string `yaml:"released"`
	// Default marks the channel as the macro's default channel.
	Default *bool `yaml:"default"`
	// Files declares the files of the channel, in order.
	Files []FileDecl `yaml:"files"`
	// Extra holds all other keys of the channel, such as its required modules.
	Extra Extra `yaml:"-"`
	// Order lists the keys of the manifest object in manifest order.
	Order []string `yaml:"-"`
}

var channelDeclKeys = []string{"version", "released", "default", "files"}

// A FileDecl declares a file of a channel.
type FileDecl struct {
	// Name is the name of the file in the macros directory. A name starting with `.` is a suffix
	// of the macro's identifier.
	Name string `yaml:"name"`
	// URL is the URL template from which the file is downloadable.
	URL string `yaml:"url"`
	// SHA1 is the lowercase hex SHA-1 digest of the file. If it's empty, it's computed from the
	// file's contents.
	SHA1 string `yaml:"sha1"`
	// Extra holds all other keys of the file.
	Extra Extra `yaml:"-"`
	// Order lists the keys of the manifest object in manifest order.
	Order []string `yaml:"-"`
}

var fileDeclKeys = []string{"name", "url", "sha1"}

// A Channel is a fully-resolved release channel of a macro.
type Channel struct {
	Version  string
	Released string
	Default  bool
	Files    []FileRef
	Extra    Extra
	Order    []string
}

// A FileRef is a fully-resolved file of a channel.
type FileRef struct {
	Name  string
	URL   string
	SHA1  string
	Extra Extra
	Order []string
}

// ChannelDecl

func (d *ChannelDecl) UnmarshalYAML(node *yaml.Node) (err error) {
	type plain ChannelDecl
	p := plain{}
	if err = node.Decode(&p); err != nil {
		return err
	}
	if p.Extra, err = decodeExtra(node, channelDeclKeys...); err != nil {
		return err
	}
	if p.Order, err = decodeOrder(node); err != nil {
		return err
	}
	*d = ChannelDecl(p)
	return nil
}

// AddDefaults makes a copy with empty values replaced by default values.
func (d ChannelDecl) AddDefaults() ChannelDecl {
	files := make([]FileDecl, 0, max(len(d.Files), 1))
	for _, file := range d.Files {
		files = append(files, file.AddDefaults())
	}
	if len(files) == 0 {
		files = append(files, FileDecl{Name: DefaultFileName}.AddDefaults())
	}
	d.Files = files
	return d
}

// IsDefault checks whether the channel is explicitly marked as the default channel.
func (d ChannelDecl) IsDefault() bool {
	return d.Default != nil && *d.Default
}

// FileDecl

func (d *FileDecl) UnmarshalYAML(node *yaml.Node) (err error) {
	type plain FileDecl
	p := plain{}
	if err = node.Decode(&p); err != nil {
		return err
	}
	if p.Extra, err = decodeExtra(node, fileDeclKeys...); err != nil {
		return err
	}
	if p.Order, err = decodeOrder(node); err != nil {
		return err
	}
	*d = FileDecl(p)
	return nil
}

// AddDefaults makes a copy with empty values replaced by default values.
func (d FileDecl) AddDefaults() FileDecl {
	if d.URL == "" {
		d.URL = DefaultFileURL
	}
	return d
}

// Resolution

// ResolveChannels resolves every channel of the specified macro, in order. Exactly one of the
// resolved channels is the default channel: if no channel is explicitly marked as the default, the
// first channel becomes the default.
func (r Resolver) ResolveChannels(
	macroID string, decls structures.OrderedMap[string, ChannelDecl],
) (channels structures.OrderedMap[string, Channel], err error) {
	var defaults []string
	for name, decl := range decls.All() {
		channel, err := r.ResolveChannel(macroID, name, decl)
		if err != nil {
			return structures.OrderedMap[string, Channel]{}, err
		}
		if channel.Default {
			defaults = append(defaults, name)
		}
		channels.Set(name, channel)
	}

	switch {
	case len(defaults) > 1:
		return structures.OrderedMap[string, Channel]{}, &ConfigError{
			Macro:  macroID,
			Reason: "more than one channel is marked as the default: " + strings.Join(defaults, ", "),
		}
	case len(defaults) == 0 && channels.Len() > 0:
		first := channels.Keys()[0]
		channel, _ := channels.Get(first)
		channel.Default = true
		channels.Set(first, channel)
	}
	return channels, nil
}

// ResolveChannel applies defaults to the channel declaration and resolves each of its files. Files
// without a declared SHA-1 digest are hashed, and those files determine the channel's version and
// release date if the declaration doesn't set them.
func (r Resolver) ResolveChannel(macroID, name string, decl ChannelDecl) (Channel, error) {
	decl = decl.AddDefaults()
	channel := Channel{
		Version:  decl.Version,
		Released: decl.Released,
		Default:  decl.IsDefault(),
		Files:    make([]FileRef, 0, len(decl.Files)),
		Extra:    decl.Extra,
		Order:    decl.Order,
	}

	var (
		version    string
		lastChange time.Time
		hashed     bool
	)
	for _, fileDecl := range decl.Files {
		file := FileRef{
			Name:  fileDecl.Name,
			URL:   fileDecl.URL,
			SHA1:  fileDecl.SHA1,
			Extra: fileDecl.Extra,
			Order: fileDecl.Order,
		}
		if file.SHA1 != "" {
			channel.Files = append(channel.Files, file)
			continue
		}

		filePath := FilePath(macroID, file.Name)
		var err error
		if file.SHA1, err = HashFile(r.FS, filePath); err != nil {
			return Channel{}, errors.Wrapf(err, "couldn't hash file of channel %s", name)
		}
		if channel.Version == "" && version == "" {
			if version, err = ScanFileVersion(r.FS, filePath); err != nil {
				return Channel{}, errors.Wrapf(err, "couldn't scan file of channel %s for a version", name)
			}
		}
		if channel.Released == "" {
			modified, err := r.modTimes().ModTime(filePath)
			if err != nil {
				return Channel{}, errors.Wrapf(
					err, "couldn't determine modification time of file %s of channel %s", filePath, name,
				)
			}
			if !hashed || modified.After(lastChange) {
				lastChange = modified
			}
		}
		hashed = true
		channel.Files = append(channel.Files, file)
	}

	if channel.Version == "" {
		if version == "" {
			return Channel{}, &ConfigError{
				Macro:   macroID,
				Channel: name,
				Reason:  "no version is set, and no file of the channel declares " + versionKey,
			}
		}
		channel.Version = version
	}
	if channel.Released == "" {
		if !hashed {
			return Channel{}, &ConfigError{
				Macro:   macroID,
				Channel: name,
				Reason:  "no release date is set, and every file of the channel has a declared sha1",
			}
		}
		channel.Released = FormatReleaseDate(lastChange)
	}
	return channel, nil
}

// Channel: json.Marshaler

func (c Channel) MarshalJSON() ([]byte, error) {
	fields := &structures.OrderedMap[string, any]{}
	files := c.Files
	if files == nil {
		files = []FileRef{}
	}
	fields.Set("files", files)
	fields.Set("version", c.Version)
	fields.Set("released", c.Released)
	fields.Set("default", c.Default)
	return objectJSON(c.Order, fields, c.Extra)
}

// FileRef: json.Marshaler

func (f FileRef) MarshalJSON() ([]byte, error) {
	fields := &structures.OrderedMap[string, any]{}
	fields.Set("name", f.Name)
	fields.Set("url", f.URL)
	fields.Set("sha1", f.SHA1)
	return objectJSON(f.Order, fields, f.Extra)
}
