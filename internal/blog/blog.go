// Package blog reads markdown posts with YAML frontmatter from a content
// directory and renders them to HTML.
package blog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

var ErrNotFound = errors.New("blog post not found")

type Post struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	PubDate     time.Time `json:"pubDate"`
	Author      string    `json:"author,omitempty"`
	Content     string    `json:"content"`
}

type Store struct {
	dir string
	md  goldmark.Markdown
}

func NewStore(dir string) *Store {
	return &Store{
		dir: dir,
		md:  goldmark.New(goldmark.WithExtensions(meta.Meta)),
	}
}

// List returns every post sorted newest-first. A missing content directory
// yields an empty list, not an error.
func (s *Store) List() ([]Post, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Post{}, nil
		}
		return nil, fmt.Errorf("error reading blog directory: %w", err)
	}

	posts := []Post{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		post, err := s.Get(strings.TrimSuffix(entry.Name(), ".md"))
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].PubDate.After(posts[j].PubDate)
	})
	return posts, nil
}

// Get loads and renders one post by slug.
func (s *Store) Get(slug string) (*Post, error) {
	// Slugs come from URLs; keep them inside the content directory.
	if strings.ContainsAny(slug, "/\\") || strings.Contains(slug, "..") {
		return nil, ErrNotFound
	}

	raw, err := os.ReadFile(filepath.Join(s.dir, slug+".md"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error reading blog post: %w", err)
	}

	var buf bytes.Buffer
	ctx := parser.NewContext()
	if err := s.md.Convert(raw, &buf, parser.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("error rendering blog post: %w", err)
	}

	data := meta.Get(ctx)
	post := &Post{
		Slug:    slug,
		Title:   slug,
		PubDate: time.Now(),
		Content: buf.String(),
	}
	if title, ok := data["title"].(string); ok && title != "" {
		post.Title = title
	}
	if desc, ok := data["description"].(string); ok {
		post.Description = desc
	}
	if author, ok := data["author"].(string); ok {
		post.Author = author
	}
	if pub, ok := data["pubDate"].(string); ok {
		if t, err := parseDate(pub); err == nil {
			post.PubDate = t
		}
	}
	return post, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02", "Jan 2 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
