package tag

import "errors"

type CreateTagDTO struct {
	Name string `json:"name"`
}

var (
	errTagNameRequired = errors.New("tag name is required")
	errTagNotFound     = errors.New("tag not found")
)
