package feeds

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/PlanktoScope/depfeed/pkg/structures"
)

// Templates which the feed's consumer expands. They are copied into the feed verbatim.
const (
	DefaultFeedURL        = "@{baseUrl}"
	DefaultMacroURL       = "@{baseUrl}#@{scriptName}"
	DefaultMacroFileBase  = "@{fileBaseUrl}/macros/@{namespace}"
	DefaultFileURL        = "@{fileBaseUrl}/@{fileName}"
	repositoryBaseURL     = "https://github.com/%s"
	repositoryFileBaseURL = "https://raw.githubusercontent.com/%s/@{channel}"
)

// A GeneralDecl is the `general` section of a feed manifest, which describes the feed as a whole.
type GeneralDecl struct {
	// Name is the name of the feed.
	Name string `yaml:"name"`
	// Description is a short description of the feed. It defaults to the name.
	Description string `yaml:"description"`
	// Maintainer is the default author of the feed's macros.
	Maintainer string `yaml:"maintainer"`
	// URL is the URL template of the feed's home page.
	URL string `yaml:"url"`
	// BaseURL is the URL of the feed's project. It can be derived from Repository.
	BaseURL string `yaml:"baseUrl"`
	// FileBaseURL is the URL template under which the feed's files are downloadable. It can be
	// derived from Repository.
	FileBaseURL string `yaml:"fileBaseUrl"`
	// Repository is the GitHub repository path (e.g. `org/repo`) of the feed's project. It isn't
	// part of the resolved feed.
	Repository string `yaml:"repository"`
	// Extra holds all other keys of the section.
	Extra Extra `yaml:"-"`
	// Order lists the keys of the manifest object in manifest order.
	Order []string `yaml:"-"`
}

var generalDeclKeys = []string{
	"name", "description", "maintainer", "url", "baseUrl", "fileBaseUrl", "repository",
}

// A General is the fully-resolved description of a feed as a whole.
type General struct {
	Name        string
	Description string
	Maintainer  string
	BaseURL     string
	FileBaseURL string
	URL         string
	Extra       Extra
	Order       []string
}

// GeneralDecl

func (d *GeneralDecl) UnmarshalYAML(node *yaml.Node) (err error) {
	type plain GeneralDecl
	p := plain{}
	if err = node.Decode(&p); err != nil {
		return err
	}
	if p.Extra, err = decodeExtra(node, generalDeclKeys...); err != nil {
		return err
	}
	if p.Order, err = decodeOrder(node); err != nil {
		return err
	}
	*d = GeneralDecl(p)
	return nil
}

// Resolve fills in the URLs of the feed, deriving them from the repository path where they aren't
// set explicitly.
func (d GeneralDecl) Resolve() (General, error) {
	g := General{
		Name:        d.Name,
		Description: d.Description,
		Maintainer:  d.Maintainer,
		BaseURL:     d.BaseURL,
		FileBaseURL: d.FileBaseURL,
		URL:         d.URL,
		Extra:       d.Extra,
		Order:       d.Order,
	}
	if g.BaseURL == "" {
		if d.Repository == "" {
			return General{}, &ConfigError{Reason: "neither baseUrl nor repository is set"}
		}
		g.BaseURL = fmt.Sprintf(repositoryBaseURL, d.Repository)
	}
	if g.FileBaseURL == "" {
		if d.Repository == "" {
			return General{}, &ConfigError{Reason: "neither fileBaseUrl nor repository is set"}
		}
		g.FileBaseURL = fmt.Sprintf(repositoryFileBaseURL, d.Repository)
	}
	if g.URL == "" {
		g.URL = DefaultFeedURL
	}
	if g.Description == "" {
		g.Description = g.Name
	}
	return g, nil
}

// General

func (g General) fields() *structures.OrderedMap[string, any] {
	fields := &structures.OrderedMap[string, any]{}
	if g.Name != "" {
		fields.Set("name", g.Name)
	}
	if g.Maintainer != "" {
		fields.Set("maintainer", g.Maintainer)
	}
	fields.Set("baseUrl", g.BaseURL)
	fields.Set("fileBaseUrl", g.FileBaseURL)
	fields.Set("url", g.URL)
	fields.Set("description", g.Description)
	return orderFields(g.Order, fields, g.Extra)
}
