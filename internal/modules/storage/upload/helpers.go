package upload

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// CheckImage validates an uploaded image against the size limit and the
// extension allow-list. It returns the lowercased extension and the content
// type to store it with.
func CheckImage(fh *multipart.FileHeader, maxSize int64) (ext, contentType string, err error) {
	if fh == nil {
		return "", "", ErrNoFile
	}
	if fh.Size > maxSize {
		return "", "", fmt.Errorf("%w (max %dMB)", ErrFileTooLarge, maxSize>>20)
	}
	ext = strings.TrimPrefix(strings.ToLower(filepath.Ext(fh.Filename)), ".")
	contentType, ok := allowedImageExts[ext]
	if !ok {
		return "", "", ErrFileType
	}
	return ext, contentType, nil
}

// validImageKey accepts only keys under images/ without traversal.
func validImageKey(key string) bool {
	return strings.HasPrefix(key, imagePrefix) && !strings.Contains(key, "..") && len(key) > len(imagePrefix)
}
