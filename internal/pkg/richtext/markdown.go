package richtext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var htmlRenderer = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))

// Markdown renders the document as CommonMark.
func (d *Document) Markdown() string {
	if d == nil || d.Root == nil {
		return ""
	}
	blocks := make([]string, 0, len(d.Root.Children))
	for _, child := range d.Root.Children {
		if block := renderBlock(child, 0); block != "" {
			blocks = append(blocks, block)
		}
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// HTML renders the document through its markdown form.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := htmlRenderer.Convert([]byte(d.Markdown()), &buf); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

func renderBlock(n *Node, depth int) string {
	if n == nil {
		return ""
	}
	switch n.Type {
	case TypeParagraph:
		return renderInline(n.Children)
	case TypeHeading:
		return strings.Repeat("#", n.HeadingLevel()) + " " + renderInline(n.Children)
	case TypeQuote:
		lines := strings.Split(renderInline(n.Children), "\n")
		for i, line := range lines {
			lines[i] = "> " + line
		}
		return strings.Join(lines, "\n")
	case TypeList:
		return renderList(n, depth)
	case TypeCode:
		return "```" + n.Language + "\n" + renderCode(n.Children) + "\n```"
	case TypeHorizontalRule:
		return "---"
	case TypeImage, TypeText, TypeLink, TypeLineBreak:
		return renderInline([]*Node{n})
	default:
		parts := make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if block := renderBlock(child, depth); block != "" {
				parts = append(parts, block)
			}
		}
		return strings.Join(parts, "\n\n")
	}
}

func renderList(n *Node, depth int) string {
	indent := strings.Repeat("  ", depth)
	number := n.Start
	if number < 1 {
		number = 1
	}
	lines := make([]string, 0, len(n.Children))
	for _, item := range n.Children {
		if item == nil {
			continue
		}
		var inline []*Node
		var nested []string
		for _, child := range item.Children {
			if child == nil {
				continue
			}
			if child.Type == TypeList {
				nested = append(nested, renderList(child, depth+1))
				continue
			}
			inline = append(inline, child)
		}
		if len(inline) > 0 || len(nested) == 0 {
			marker := "- "
			if n.ListType == "number" {
				marker = fmt.Sprintf("%d. ", number)
				number++
			}
			lines = append(lines, indent+marker+renderInline(inline))
		}
		lines = append(lines, nested...)
	}
	return strings.Join(lines, "\n")
}

func renderCode(children []*Node) string {
	var sb strings.Builder
	for _, child := range children {
		if child == nil {
			continue
		}
		switch child.Type {
		case TypeLineBreak:
			sb.WriteString("\n")
		default:
			sb.WriteString(child.Text)
		}
	}
	return sb.String()
}

func renderInline(children []*Node) string {
	var sb strings.Builder
	for _, child := range children {
		if child == nil {
			continue
		}
		switch child.Type {
		case TypeText, TypeCodeHighlight:
			sb.WriteString(formatText(child.Text, child.TextFormat()))
		case TypeLineBreak:
			sb.WriteString("\n")
		case TypeLink:
			sb.WriteString("[" + renderInline(child.Children) + "](" + child.URL + ")")
		case TypeImage:
			sb.WriteString("![" + child.AltText + "](" + child.Src + ")")
		default:
			sb.WriteString(renderInline(child.Children))
		}
	}
	return sb.String()
}

func formatText(text string, format int) string {
	if text == "" {
		return ""
	}
	if format&FormatCode != 0 {
		return "`" + text + "`"
	}
	// Markdown markers must hug the text, so surrounding spaces stay outside.
	core := strings.TrimSpace(text)
	if core == "" {
		return text
	}
	lead := text[:strings.Index(text, core)]
	trail := text[len(lead)+len(core):]
	if format&FormatStrikethrough != 0 {
		core = "~~" + core + "~~"
	}
	if format&FormatItalic != 0 {
		core = "*" + core + "*"
	}
	if format&FormatBold != 0 {
		core = "**" + core + "**"
	}
	return lead + core + trail
}
