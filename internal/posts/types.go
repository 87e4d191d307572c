// Package posts assembles blog posts from a directory of markdown files.
//
// A load reads every eligible file, splits and parses its header, tokenizes
// the body into content blocks and derives metadata (reading time, tags,
// excerpt). A second pass over the whole collection orders it newest first
// and wires navigation and related-post references. A file that cannot be
// read or parsed becomes a placeholder post instead of failing the batch.
package posts

import (
	"time"

	"git.home.luguber.info/inful/blogcontent/internal/markdown"
)

// Post is a fully assembled blog post.
type Post struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Date          string           `json:"date"`
	PublishedAt   time.Time        `json:"publishedAt"`
	ReadingTime   string           `json:"readingTime"`
	Excerpt       string           `json:"excerpt"`
	Author        Author           `json:"author"`
	FeaturedImage Image            `json:"featuredImage"`
	Content       []markdown.Block `json:"content"`
	Tags          []string         `json:"tags"`
	RelatedPosts  []RelatedPost    `json:"relatedPosts"`
	NextPost      *PostRef         `json:"nextPost,omitempty"`
	PreviousPost  *PostRef         `json:"previousPost,omitempty"`
	SourceFile    string           `json:"sourceFile,omitempty"`
	Fingerprint   string           `json:"fingerprint,omitempty"`
}

// Author describes who wrote a post.
type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Bio    string `json:"bio"`
}

// Image is a post's featured image.
type Image struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
}

// PostRef is a weak reference to a neighbouring post.
type PostRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// RelatedPost is the summary of another post shown alongside this one.
type RelatedPost struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	Date    string `json:"date"`
	Image   string `json:"image"`
}

// TagCount is a tag and the number of posts carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// IsPlaceholder reports whether p stands in for a file that failed to load.
func (p *Post) IsPlaceholder() bool {
	return len(p.Tags) == 1 && p.Tags[0] == ErrorTag
}
