package services

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOPML(t *testing.T) {
	out, err := RenderOPML("alice's subscriptions", []string{
		"http://a/feed",
		"http://b/feed?x=1&y=2",
	})
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, xml.Header))
	assert.Contains(t, s, `<opml version="1.0">`)
	assert.Contains(t, s, `<outline type="rss" text="http://a/feed" xmlUrl="http://a/feed"></outline>`)
	assert.Contains(t, s, `xmlUrl="http://b/feed?x=1&amp;y=2"`)

	var doc opmlDocument
	require.NoError(t, xml.Unmarshal(out, &doc))
	assert.Equal(t, "alice's subscriptions", doc.Title)
	require.Len(t, doc.Body, 2)
	assert.Equal(t, "http://b/feed?x=1&y=2", doc.Body[1].XMLURL)
}

func TestRenderOPML_Empty(t *testing.T) {
	out, err := RenderOPML("empty", nil)
	require.NoError(t, err)

	var doc opmlDocument
	require.NoError(t, xml.Unmarshal(out, &doc))
	assert.Empty(t, doc.Body)
}
