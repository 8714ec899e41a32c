// Package extract turns rendered profile markup into a fixed set of text
// fields using ordered selector fallbacks.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Unknown is the sentinel value for a field that could not be extracted.
// It is part of the output contract: fields are either genuine text or
// exactly this value, never empty and never absent.
const Unknown = "unknown"

// Fields holds the extracted profile data.
type Fields struct {
	DisplayName string
	Headline    string
	Location    string
	Summary     string
}

// Extract applies the selector table to the given markup and returns the
// extracted fields. It is pure and deterministic, performs no I/O, and never
// fails: malformed or partial markup degrades to more Unknown fields.
func Extract(markup string, table SelectorTable) Fields {
	unknown := Fields{
		DisplayName: Unknown,
		Headline:    Unknown,
		Location:    Unknown,
		Summary:     Unknown,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return unknown
	}

	return Fields{
		DisplayName: firstMatch(doc, table.DisplayName),
		Headline:    firstMatch(doc, table.Headline),
		Location:    firstMatch(doc, table.Location),
		Summary:     firstMatch(doc, table.Summary),
	}
}

// firstMatch evaluates selector candidates in order and returns the trimmed
// text of the first one that matches a node with non-empty text.
func firstMatch(doc *goquery.Document, candidates []string) string {
	for _, sel := range candidates {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if text := strings.TrimSpace(node.Text()); text != "" {
			return text
		}
	}
	return Unknown
}
