// Package outline turns the AI-formatted summary text into a typed line
// sequence and derives the display title from it. Both functions are pure:
// formatted_content is the single source of truth and nodes are recomputed
// on every consumption.
package outline

import (
	"regexp"
	"strings"
)

// NodeKind classifies a single line of formatted content.
type NodeKind string

const (
	MainHeading NodeKind = "main_heading" // "1. Introduzione"
	SubHeading  NodeKind = "sub_heading"  // "A. Dettagli"
	Paragraph   NodeKind = "paragraph"
	Blank       NodeKind = "blank"
)

// Node is one classified line. Slice position is the document order.
type Node struct {
	Kind NodeKind `json:"kind"`
	Text string   `json:"text"`
}

// FallbackTitle is used when the content has no numbered heading at all.
const FallbackTitle = "Riassunto senza titolo"

var (
	mainHeadingRe = regexp.MustCompile(`^[0-9]+\.\s+`)
	// Single ASCII uppercase letter only: "Re. Subject" stays a paragraph.
	subHeadingRe = regexp.MustCompile(`^[A-Z]\.\s+`)
)

// Parse classifies every line of content, one node per line, preserving the
// original line order. It never fails: anything that is not a heading or a
// blank line is a paragraph.
func Parse(content string) []Node {
	lines := strings.Split(content, "\n")
	nodes := make([]Node, 0, len(lines))
	for _, line := range lines {
		nodes = append(nodes, classify(line))
	}
	return nodes
}

func classify(line string) Node {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return Node{Kind: Blank}
	case mainHeadingRe.MatchString(trimmed):
		return Node{Kind: MainHeading, Text: trimmed}
	case subHeadingRe.MatchString(trimmed):
		return Node{Kind: SubHeading, Text: trimmed}
	default:
		return Node{Kind: Paragraph, Text: trimmed}
	}
}

// ExtractTitle returns the first numbered heading with its "N. " prefix
// stripped, or FallbackTitle when no such line exists. Always non-empty.
func ExtractTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if mainHeadingRe.MatchString(trimmed) {
			return strings.TrimSpace(mainHeadingRe.ReplaceAllString(trimmed, ""))
		}
	}
	return FallbackTitle
}
