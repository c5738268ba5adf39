package note

import (
	"strings"

	"github.com/studydesk/core/internal/models"
	"github.com/studydesk/core/internal/pkg/richtext"
)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func contentType(format string) string {
	if format == FormatHTML {
		return "text/html; charset=utf-8"
	}
	return "text/markdown; charset=utf-8"
}

func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(q))
}

// matchesNote reports whether q occurs in the title, a tag name or the
// visible text of the content.
func matchesNote(n *models.NoteModel, q string) bool {
	if n.Title != nil && containsFold(*n.Title, q) {
		return true
	}
	for _, t := range n.Tags {
		if containsFold(t.Name, q) {
			return true
		}
	}
	return containsFold(richtext.PlainText(richtext.Parse(n.Content).Root.Children), q)
}
