package note

import (
	"errors"

	"github.com/studydesk/core/internal/pkg/nullable"
)

type CreateNoteDTO struct {
	Title   *string  `json:"title"   binding:"omitempty,max=255"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// UpdateNoteDTO is a partial update. A nil Tags leaves the tag set alone,
// an empty array clears it.
type UpdateNoteDTO struct {
	Title   nullable.String `json:"title"`
	Content *string         `json:"content"`
	Tags    *[]string       `json:"tags"`
}

type ImportNoteDTO struct {
	Markdown string   `json:"markdown" binding:"required,notblank"`
	Title    *string  `json:"title"    binding:"omitempty,max=255"`
	Tags     []string `json:"tags"`
}

// Export formats.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

var (
	errNoteNotFound  = errors.New("note not found")
	errTitleTooLong  = errors.New("title must be at most 255 characters")
	errUnknownFormat = errors.New("format must be markdown or html")
)

const (
	maxTitleLength = 255
	searchLimit    = 20
)
