// Package richtext converts the note editor's serialized document tree to and
// from markdown and HTML.
package richtext

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Text format bits as stored on text nodes.
const (
	FormatBold          = 1
	FormatItalic        = 1 << 1
	FormatStrikethrough = 1 << 2
	FormatUnderline     = 1 << 3
	FormatCode          = 1 << 4
)

// Node types understood by the converters. Unknown types are rendered by
// walking their children.
const (
	TypeRoot           = "root"
	TypeParagraph      = "paragraph"
	TypeHeading        = "heading"
	TypeQuote          = "quote"
	TypeList           = "list"
	TypeListItem       = "listitem"
	TypeCode           = "code"
	TypeCodeHighlight  = "code-highlight"
	TypeText           = "text"
	TypeLineBreak      = "linebreak"
	TypeLink           = "link"
	TypeImage          = "image"
	TypeHorizontalRule = "horizontalrule"
)

// Document is the editor state persisted in notes.content.
type Document struct {
	Root *Node `json:"root"`
}

// Node is one element of the document tree. Format is a number on text
// nodes and an alignment string on element nodes, so it stays raw.
type Node struct {
	Type      string          `json:"type"`
	Version   int             `json:"version"`
	Children  []*Node         `json:"children,omitempty"`
	Text      string          `json:"text,omitempty"`
	Format    json.RawMessage `json:"format,omitempty"`
	Tag       string          `json:"tag,omitempty"`
	ListType  string          `json:"listType,omitempty"`
	Start     int             `json:"start,omitempty"`
	URL       string          `json:"url,omitempty"`
	Src       string          `json:"src,omitempty"`
	AltText   string          `json:"altText,omitempty"`
	Width     any             `json:"width,omitempty"`
	Height    any             `json:"height,omitempty"`
	MaxWidth  int             `json:"maxWidth,omitempty"`
	Language  string          `json:"language,omitempty"`
	Direction *string         `json:"direction,omitempty"`
	Indent    int             `json:"indent,omitempty"`
}

// TextFormat returns the format bitmask of a text node.
func (n *Node) TextFormat() int {
	if len(n.Format) == 0 {
		return 0
	}
	v, err := strconv.Atoi(string(n.Format))
	if err != nil {
		return 0
	}
	return v
}

// HeadingLevel returns 1-6 for h1-h6 and 1 for anything unparsable.
func (n *Node) HeadingLevel() int {
	level, err := strconv.Atoi(strings.TrimPrefix(n.Tag, "h"))
	if err != nil || level < 1 || level > 6 {
		return 1
	}
	return level
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{Root: element(TypeRoot)}
}

// Parse decodes stored note content. Empty content is an empty document and
// content that is not a serialized document is treated as plain text, one
// paragraph per line.
func Parse(content string) *Document {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return NewDocument()
	}
	var doc Document
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal([]byte(trimmed), &doc); err == nil && doc.Root != nil {
			prune(doc.Root)
			return &doc
		}
	}
	doc = *NewDocument()
	for _, line := range strings.Split(content, "\n") {
		p := element(TypeParagraph)
		if line = strings.TrimRight(line, "\r"); line != "" {
			p.Children = append(p.Children, textNode(line, 0))
		}
		doc.Root.Children = append(doc.Root.Children, p)
	}
	return &doc
}

// prune drops null entries from every children list.
func prune(n *Node) {
	kept := n.Children[:0]
	for _, child := range n.Children {
		if child != nil {
			prune(child)
			kept = append(kept, child)
		}
	}
	n.Children = kept
}

// String serializes the document for storage.
func (d *Document) String() string {
	b, err := json.Marshal(d)
	if err != nil {
		return ""
	}
	return string(b)
}

func element(typ string) *Node {
	return &Node{Type: typ, Version: 1, Children: []*Node{}, Format: json.RawMessage(`""`)}
}

func textNode(text string, format int) *Node {
	return &Node{Type: TypeText, Version: 1, Text: text, Format: json.RawMessage(strconv.Itoa(format))}
}
