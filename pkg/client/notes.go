package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

func (c *Client) Notes(ctx context.Context) ([]Note, error) {
	var out listEnvelope[Note]
	if err := c.get(ctx, "/notes", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) NotesPage(ctx context.Context, page, size int) (*NotePage, error) {
	q := map[string]string{"page": strconv.Itoa(page), "size": strconv.Itoa(size)}
	var out NotePage
	if err := c.get(ctx, "/notes", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchNotes(ctx context.Context, query string) ([]Note, error) {
	var out listEnvelope[Note]
	if err := c.get(ctx, "/notes/search", map[string]string{"q": query}, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) Note(ctx context.Context, id string) (*Note, error) {
	var n Note
	if err := c.get(ctx, "/notes/"+url.PathEscape(id), nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) CreateNote(ctx context.Context, in NoteInput) (*Note, error) {
	var n Note
	if err := c.send(ctx, http.MethodPost, "/notes", in, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, p NotePatch) (*Note, error) {
	body := map[string]interface{}{}
	switch {
	case p.ClearTitle:
		body["title"] = nil
	case p.Title != nil:
		body["title"] = *p.Title
	}
	if p.Content != nil {
		body["content"] = *p.Content
	}
	if p.Tags != nil {
		body["tags"] = *p.Tags
	}
	var n Note
	if err := c.send(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), body, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, nil)
}

// ExportNote returns the note rendered as "markdown" or "html".
func (c *Client) ExportNote(ctx context.Context, id, format string) (string, error) {
	path := "/notes/" + url.PathEscape(id) + "/export"
	req := c.request(ctx)
	if format != "" {
		req.SetQueryParam("format", format)
	}
	resp, err := req.Get(path)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", path, err)
	}
	if err := mapHTTPError(resp); err != nil {
		return "", err
	}
	return string(resp.Body()), nil
}

func (c *Client) ImportNote(ctx context.Context, in ImportInput) (*Note, error) {
	var n Note
	if err := c.send(ctx, http.MethodPost, "/notes/import", in, &n); err != nil {
		return nil, err
	}
	return &n, nil
}
