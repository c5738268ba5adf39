package upload

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/studydesk/core/internal/modules/storage/objectstore"
)

type Service struct {
	store objectstore.Store
}

func NewService(store objectstore.Store) *Service {
	return &Service{store: store}
}

func (s *Service) UploadImage(ctx context.Context, fh *multipart.FileHeader) (*ImageInfo, error) {
	ext, contentType, err := CheckImage(fh, MaxImageSize)
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	key := imagePrefix + uuid.NewString() + "." + ext
	if err := s.store.Put(ctx, key, f, fh.Size, contentType); err != nil {
		return nil, err
	}
	return &ImageInfo{
		Filename:     key,
		URL:          s.store.PublicURL(key),
		OriginalName: fh.Filename,
		Size:         fh.Size,
	}, nil
}

func (s *Service) DeleteImage(ctx context.Context, filename string) error {
	if !validImageKey(filename) {
		return errInvalidPath
	}
	return s.store.Delete(ctx, filename)
}
