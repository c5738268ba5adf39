package upload

import "errors"

const (
	MaxImageSize = 10 << 20
	imagePrefix  = "images/"
)

var allowedImageExts = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

type DeleteImageDTO struct {
	Filename string `json:"filename" binding:"required"`
}

type ImageInfo struct {
	Filename     string `json:"filename"`
	URL          string `json:"url"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
}

type uploadResponse struct {
	Success bool      `json:"success"`
	Data    ImageInfo `json:"data"`
}

var (
	ErrNoFile       = errors.New("no file provided")
	ErrFileTooLarge = errors.New("file is too large")
	ErrFileType     = errors.New("Only jpg, jpeg, png, gif, and webp files are allowed")
	errInvalidPath  = errors.New(`File path must start with "images/"`)
)
