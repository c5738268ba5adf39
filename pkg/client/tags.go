package client

import (
	"context"
	"net/http"
	"net/url"
)

// Tags lists tags attached to the user's notes. With all set, every tag is
// returned.
func (c *Client) Tags(ctx context.Context, all bool) ([]Tag, error) {
	var q map[string]string
	if all {
		q = map[string]string{"scope": "all"}
	}
	var out listEnvelope[Tag]
	if err := c.get(ctx, "/tags", q, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateTag returns the existing tag when the normalized name is taken.
func (c *Client) CreateTag(ctx context.Context, name string) (*Tag, error) {
	var t Tag
	if err := c.send(ctx, http.MethodPost, "/tags", map[string]string{"name": name}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTag(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/tags/"+url.PathEscape(id), nil, nil)
}
