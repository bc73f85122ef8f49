package utils

import (
	"net/url"
	"strings"

	"gposync/internal/gpodder"
)

// NormalizeURL percent-encodes each path segment, the query and the fragment
// of raw. Already encoded input is decoded first, so the result is stable:
// NormalizeURL(NormalizeURL(u)) == NormalizeURL(u).
// Strings that do not parse as URLs are returned unchanged.
func NormalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Opaque != "" {
		return raw
	}

	segments := strings.Split(u.EscapedPath(), "/")
	for i, seg := range segments {
		if dec, err := url.PathUnescape(seg); err == nil {
			seg = dec
		}
		segments[i] = url.PathEscape(seg)
	}
	escapedPath := strings.Join(segments, "/")

	out := *u
	out.RawPath = escapedPath
	out.Path, _ = url.PathUnescape(escapedPath)
	out.RawQuery = normalizeQuery(u.RawQuery)
	out.RawFragment = ""
	out.ForceQuery = false

	return out.String()
}

// normalizeQuery encodes keys and values but keeps the &, ; and = delimiters.
// A + stays a +; an encoded %2B stays encoded.
func normalizeQuery(q string) string {
	if q == "" {
		return ""
	}
	var b strings.Builder
	for q != "" {
		end := strings.IndexAny(q, "&;")
		part, delim := q, ""
		if end >= 0 {
			part, delim, q = q[:end], q[end:end+1], q[end+1:]
		} else {
			q = ""
		}
		pieces := strings.Split(part, "=")
		for i, piece := range pieces {
			pieces[i] = escapeQueryComponent(piece)
		}
		b.WriteString(strings.Join(pieces, "="))
		b.WriteString(delim)
	}
	return b.String()
}

func escapeQueryComponent(s string) string {
	if dec, err := url.QueryUnescape(s); err == nil {
		s = dec
	}
	return url.QueryEscape(s)
}

// ValidateURL normalizes raw and checks that the result is an absolute URL
// with a scheme and a host.
func ValidateURL(raw string) (string, error) {
	normalized := NormalizeURL(strings.TrimSpace(raw))

	u, err := url.Parse(normalized)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", gpodder.BadRequest("Invalid URL: %s", raw)
	}
	if err := GetValidator().Var(normalized, "required,url"); err != nil {
		return "", gpodder.BadRequest("Invalid URL: %s", raw)
	}

	return normalized, nil
}
