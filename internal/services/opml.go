package services

import (
	"encoding/xml"
)

type opmlDocument struct {
	XMLName xml.Name      `xml:"opml"`
	Version string        `xml:"version,attr"`
	Title   string        `xml:"head>title"`
	Body    []opmlOutline `xml:"body>outline"`
}

type opmlOutline struct {
	Type   string `xml:"type,attr"`
	Text   string `xml:"text,attr"`
	XMLURL string `xml:"xmlUrl,attr"`
}

// RenderOPML writes urls as an OPML 1.0 subscription list, in order.
func RenderOPML(title string, urls []string) ([]byte, error) {
	doc := opmlDocument{Version: "1.0", Title: title, Body: make([]opmlOutline, 0, len(urls))}
	for _, u := range urls {
		doc.Body = append(doc.Body, opmlOutline{Type: "rss", Text: u, XMLURL: u})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
