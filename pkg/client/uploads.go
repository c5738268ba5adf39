package client

import (
	"context"
	"io"
	"net/http"
)

func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (*ImageInfo, error) {
	var out struct {
		Success bool      `json:"success"`
		Data    ImageInfo `json:"data"`
	}
	req := c.request(ctx).SetFileReader("image", filename, r)
	if err := c.do(req, http.MethodPost, "/upload/image", &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DeleteImage removes an uploaded image by its storage key ("images/...").
func (c *Client) DeleteImage(ctx context.Context, filename string) error {
	return c.send(ctx, http.MethodDelete, "/upload/image", map[string]string{"filename": filename}, nil)
}

func (c *Client) Overview(ctx context.Context) (*Overview, error) {
	var out Overview
	if err := c.get(ctx, "/stats/overview", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
