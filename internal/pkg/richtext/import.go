package richtext

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

const defaultImageMaxWidth = 500

// FromMarkdown parses markdown into a document. The second result is the
// plain text of the first heading, or "" when there is none.
func FromMarkdown(src string) (*Document, string) {
	source := []byte(src)
	root := htmlRenderer.Parser().Parse(text.NewReader(source))

	c := &converter{source: source}
	doc := NewDocument()
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if block := c.block(n); block != nil {
			doc.Root.Children = append(doc.Root.Children, block)
		}
	}
	return doc, c.title
}

type converter struct {
	source []byte
	title  string
}

func (c *converter) block(n ast.Node) *Node {
	switch n := n.(type) {
	case *ast.Heading:
		h := element(TypeHeading)
		h.Tag = fmt.Sprintf("h%d", n.Level)
		h.Children = c.inlines(n, 0)
		if c.title == "" {
			c.title = strings.TrimSpace(PlainText(h.Children))
		}
		return h
	case *ast.Paragraph, *ast.TextBlock:
		p := element(TypeParagraph)
		p.Children = c.inlines(n, 0)
		return p
	case *ast.Blockquote:
		q := element(TypeQuote)
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			if len(q.Children) > 0 {
				q.Children = append(q.Children, &Node{Type: TypeLineBreak, Version: 1})
			}
			q.Children = appendNodes(q.Children, c.inlines(child, 0))
		}
		return q
	case *ast.List:
		l := element(TypeList)
		l.ListType = "bullet"
		if n.IsOrdered() {
			l.ListType = "number"
			l.Start = n.Start
		}
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			li := element(TypeListItem)
			for child := item.FirstChild(); child != nil; child = child.NextSibling() {
				if nested, ok := child.(*ast.List); ok {
					li.Children = append(li.Children, c.block(nested))
					continue
				}
				li.Children = appendNodes(li.Children, c.inlines(child, 0))
			}
			l.Children = append(l.Children, li)
		}
		return l
	case *ast.FencedCodeBlock:
		code := element(TypeCode)
		code.Language = string(n.Language(c.source))
		code.Children = c.codeLines(n)
		return code
	case *ast.CodeBlock:
		code := element(TypeCode)
		code.Children = c.codeLines(n)
		return code
	case *ast.ThematicBreak:
		return &Node{Type: TypeHorizontalRule, Version: 1}
	default:
		return nil
	}
}

func (c *converter) codeLines(n ast.Node) []*Node {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(c.source))
	}
	out := []*Node{}
	for i, line := range strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n") {
		if i > 0 {
			out = append(out, &Node{Type: TypeLineBreak, Version: 1})
		}
		if line != "" {
			out = append(out, textNode(line, 0))
		}
	}
	return out
}

func (c *converter) inlines(parent ast.Node, format int) []*Node {
	out := []*Node{}
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ast.Text:
			out = appendNodes(out, []*Node{textNode(string(n.Segment.Value(c.source)), format)})
			if n.HardLineBreak() {
				out = append(out, &Node{Type: TypeLineBreak, Version: 1})
			} else if n.SoftLineBreak() {
				out = appendNodes(out, []*Node{textNode(" ", format)})
			}
		case *ast.String:
			out = appendNodes(out, []*Node{textNode(string(n.Value), format)})
		case *ast.Emphasis:
			f := FormatItalic
			if n.Level >= 2 {
				f = FormatBold
			}
			out = appendNodes(out, c.inlines(n, format|f))
		case *extast.Strikethrough:
			out = appendNodes(out, c.inlines(n, format|FormatStrikethrough))
		case *ast.CodeSpan:
			out = appendNodes(out, []*Node{textNode(c.plain(n), format|FormatCode)})
		case *ast.Link:
			link := element(TypeLink)
			link.URL = string(n.Destination)
			link.Children = c.inlines(n, format)
			out = append(out, link)
		case *ast.AutoLink:
			link := element(TypeLink)
			link.URL = string(n.URL(c.source))
			link.Children = []*Node{textNode(string(n.Label(c.source)), format)}
			out = append(out, link)
		case *ast.Image:
			out = append(out, &Node{
				Type:     TypeImage,
				Version:  1,
				Src:      string(n.Destination),
				AltText:  c.plain(n),
				MaxWidth: defaultImageMaxWidth,
			})
		case *ast.RawHTML:
		default:
			out = appendNodes(out, c.inlines(n, format))
		}
	}
	return out
}

func (c *converter) plain(n ast.Node) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(c.source))
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// appendNodes appends next to out, merging adjacent text nodes that share a format.
func appendNodes(out []*Node, next []*Node) []*Node {
	for _, n := range next {
		if n.Type == TypeText && len(out) > 0 {
			last := out[len(out)-1]
			if last.Type == TypeText && last.TextFormat() == n.TextFormat() {
				last.Text += n.Text
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

// PlainText concatenates the text content of nodes, depth first.
func PlainText(nodes []*Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		if n == nil {
			continue
		}
		switch n.Type {
		case TypeText, TypeCodeHighlight:
			sb.WriteString(n.Text)
		case TypeLineBreak:
			sb.WriteString("\n")
		case TypeImage:
			sb.WriteString(n.AltText)
		default:
			sb.WriteString(PlainText(n.Children))
		}
	}
	return sb.String()
}
