// Package gpodder holds the protocol pieces of the gpodder sync API that do
// not depend on storage: request routing, output formats and error values.
package gpodder

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoRoute is returned by ParseRoute when the target is not a gpodder API path.
var ErrNoRoute = errors.New("not a gpodder route")

// Section is the resource addressed by a request.
type Section int

const (
	SectionSuggestions Section = iota + 1
	SectionSubscriptions
	SectionToplist
	SectionAuth
	SectionDevices
	SectionUpdates
	SectionEpisodes
	SectionFavorites
	SectionSettings
	SectionLists
	SectionSyncDevices
	SectionTag
	SectionTags
	SectionData
)

var sectionStrings = [...]string{
	SectionSuggestions:   "suggestions",
	SectionSubscriptions: "subscriptions",
	SectionToplist:       "toplist",
	SectionAuth:          "auth",
	SectionDevices:       "devices",
	SectionUpdates:       "updates",
	SectionEpisodes:      "episodes",
	SectionFavorites:     "favorites",
	SectionSettings:      "settings",
	SectionLists:         "lists",
	SectionSyncDevices:   "sync-devices",
	SectionTag:           "tag",
	SectionTags:          "tags",
	SectionData:          "data",
}

var sectionNames = func() map[string]Section {
	m := make(map[string]Section, len(sectionStrings))
	for s, name := range sectionStrings {
		if name != "" {
			m[name] = Section(s)
		}
	}
	return m
}()

func (s Section) String() string {
	if s <= 0 || int(s) >= len(sectionStrings) {
		return "unknown"
	}
	return sectionStrings[s]
}

// Format is the output format requested through the path extension.
type Format string

const (
	FormatNone  Format = ""
	FormatJSON  Format = "json"
	FormatOPML  Format = "opml"
	FormatTXT   Format = "txt"
	FormatJSONP Format = "jsonp"
	FormatXML   Format = "xml"
)

// Implemented reports whether responses can be produced in this format.
func (f Format) Implemented() bool {
	switch f {
	case FormatJSON, FormatOPML, FormatTXT:
		return true
	}
	return false
}

// Route is the parsed form of a request target.
type Route struct {
	Method  string
	Section Section
	V2      bool // api/2/... rather than a legacy top-level path
	Path    string
	Format  Format
}

// Segments splits the path remainder, e.g. "alice/phone" -> ["alice", "phone"].
func (r Route) Segments() []string {
	if r.Path == "" {
		return nil
	}
	return strings.Split(r.Path, "/")
}

var (
	routePattern  = regexp.MustCompile(`^(suggestions|subscriptions|toplist|api/2/(auth|subscriptions|devices|updates|episodes|favorites|settings|lists|sync-devices|tags?|data))/`)
	formatPattern = regexp.MustCompile(`\.(json|opml|txt|jsonp|xml)$`)
)

// ParseRoute turns a method and raw request target into a Route. It returns
// ErrNoRoute when the target is outside the API, and a 501 error when the
// requested format is missing or not implemented.
func ParseRoute(method, target string) (Route, error) {
	target = strings.TrimLeft(target, "/")
	if i := strings.IndexByte(target, '?'); i >= 0 {
		target = target[:i]
	}

	m := routePattern.FindStringSubmatch(target)
	if m == nil {
		return Route{}, ErrNoRoute
	}

	name := m[1]
	if m[2] != "" {
		name = m[2]
	}

	r := Route{
		Method:  method,
		Section: sectionNames[name],
		V2:      m[2] != "",
		Path:    target[len(m[0]):],
	}

	if f := formatPattern.FindStringSubmatch(r.Path); f != nil {
		r.Format = Format(f[1])
		r.Path = strings.TrimSuffix(r.Path, f[0])
	}

	if !r.Format.Implemented() {
		return r, NotImplemented("output format is not implemented")
	}

	return r, nil
}
