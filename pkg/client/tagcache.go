package client

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"sync"
)

// TagLister is the part of Client a TagCache reads from.
type TagLister interface {
	Tags(ctx context.Context, all bool) ([]Tag, error)
}

// TagCache keeps the user's tags in memory and tells subscribers when the
// set changes. The first call to Tags loads it.
type TagCache struct {
	src TagLister

	mu        sync.Mutex
	tags      []Tag
	loaded    bool
	nextID    int
	listeners map[int]func([]Tag)
}

func NewTagCache(src TagLister) *TagCache {
	return &TagCache{src: src, listeners: make(map[int]func([]Tag))}
}

func (tc *TagCache) Tags(ctx context.Context) ([]Tag, error) {
	tc.mu.Lock()
	if tc.loaded {
		out := append([]Tag(nil), tc.tags...)
		tc.mu.Unlock()
		return out, nil
	}
	tc.mu.Unlock()
	return tc.Refresh(ctx)
}

// Refresh reloads the tags from the server and notifies subscribers.
func (tc *TagCache) Refresh(ctx context.Context) ([]Tag, error) {
	tags, err := tc.src.Tags(ctx, false)
	if err != nil {
		return nil, err
	}

	tc.mu.Lock()
	tc.tags = tags
	tc.loaded = true
	listeners := make([]func([]Tag), 0, len(tc.listeners))
	for _, fn := range tc.listeners {
		listeners = append(listeners, fn)
	}
	tc.mu.Unlock()

	for _, fn := range listeners {
		fn(append([]Tag(nil), tags...))
	}
	return append([]Tag(nil), tags...), nil
}

// Invalidate drops the cached set; the next Tags call reloads it.
func (tc *TagCache) Invalidate() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.tags = nil
	tc.loaded = false
}

// Find looks a tag up by name, ignoring case and surrounding space.
func (tc *TagCache) Find(ctx context.Context, name string) (*Tag, bool, error) {
	tags, err := tc.Tags(ctx)
	if err != nil {
		return nil, false, err
	}
	want := NormalizeTag(name)
	for i := range tags {
		if tags[i].Name == want {
			return &tags[i], true, nil
		}
	}
	return nil, false, nil
}

func (tc *TagCache) Names(ctx context.Context) ([]string, error) {
	tags, err := tc.Tags(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names, nil
}

// Subscribe registers fn to receive a copy of the set after every refresh.
// The returned func removes it.
func (tc *TagCache) Subscribe(fn func([]Tag)) func() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	id := tc.nextID
	tc.nextID++
	tc.listeners[id] = fn
	return func() {
		tc.mu.Lock()
		defer tc.mu.Unlock()
		delete(tc.listeners, id)
	}
}

// NormalizeTag returns name the way the server stores it.
func NormalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var spaceRun = regexp.MustCompile(`\s+`)

// TagSlug turns a tag name into a URL path segment.
func TagSlug(name string) string {
	return url.PathEscape(spaceRun.ReplaceAllString(NormalizeTag(name), "-"))
}
