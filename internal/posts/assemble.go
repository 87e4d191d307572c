package posts

import (
	"regexp"
	"strings"
	"time"

	"git.home.luguber.info/inful/blogcontent/internal/frontmatter"
	"git.home.luguber.info/inful/blogcontent/internal/markdown"
	"git.home.luguber.info/inful/blogcontent/internal/readtime"
	"git.home.luguber.info/inful/blogcontent/internal/summaries"
)

var datePrefix = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)$`)

// dateLayouts are tried in order against the `date` header field.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	DateLabelLayout,
	"Jan 2, 2006",
	"2 January 2006",
}

func (l *Loader) assemble(f sourceFile, data []byte, idx *summaries.Index) *Post {
	doc := frontmatter.ParseDocument(data)
	fields := doc.Fields
	body := string(doc.Body)
	stem := strings.TrimSuffix(f.name, ".md")

	title := fields.String("title")
	if title == "" {
		title = DefaultTitle
	}

	published := resolveDate(fields.String("date"), stem, f.modTime)

	p := &Post{
		ID:          idFromStem(stem),
		Title:       title,
		Date:        published.Format(DateLabelLayout),
		PublishedAt: published,
		ReadingTime: readtime.Label(body),
		Author: Author{
			Name:   valueOr(fields.String("author"), l.opts.Defaults.Author),
			Avatar: l.opts.Defaults.Avatar,
			Bio:    valueOr(fields.String("authorBio"), l.opts.Defaults.Bio),
		},
		FeaturedImage: Image{
			Src:     valueOr(fields.String("image"), l.opts.Defaults.Image),
			Alt:     valueOr(fields.String("title"), DefaultImageAlt),
			Caption: fields.String("imageCaption"),
		},
		Content:     markdown.Tokenize(body, l.formatter),
		Tags:        collectTags(fields),
		SourceFile:  f.name,
		Fingerprint: fingerprint(fields, doc.Body),
	}
	p.Excerpt = l.excerpt(p, fields, doc.Body, idx)
	return p
}

// idFromStem strips a leading YYYY-MM-DD- when something remains after it.
func idFromStem(stem string) string {
	if m := datePrefix.FindStringSubmatch(stem); m != nil {
		return m[2]
	}
	return stem
}

// resolveDate prefers the header date, then a filename date prefix, then modTime.
func resolveDate(raw, stem string, modTime time.Time) time.Time {
	if t, ok := parseDate(raw); ok {
		return t
	}
	if m := datePrefix.FindStringSubmatch(stem); m != nil {
		if t, err := time.Parse("2006-01-02", m[1]); err == nil {
			return t
		}
	}
	return modTime.UTC()
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// collectTags merges categories and tags, keeping the first occurrence.
func collectTags(fields frontmatter.Fields) []string {
	seen := map[string]bool{}
	tags := []string{}
	for _, key := range []string{"categories", "tags"} {
		for _, t := range fields.Strings(key) {
			t = strings.TrimSpace(t)
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			tags = append(tags, t)
		}
	}
	return tags
}

func (l *Loader) excerpt(p *Post, fields frontmatter.Fields, body []byte, idx *summaries.Index) string {
	if s, ok := idx.Lookup(p.ID); ok {
		return s
	}
	if s, ok := idx.LookupTitle(p.Title); ok {
		return s
	}
	if d := fields.String("description"); d != "" {
		return d
	}
	return truncate(markdown.PlainText(body), l.opts.ExcerptLength)
}

// truncate cuts s to n runes, appending an ellipsis only when something was cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimRight(string(r[:n]), " ") + excerptEllipsis
}

func newPlaceholder(f sourceFile, opts Options) *Post {
	stem := strings.TrimSuffix(f.name, ".md")
	published := f.modTime.UTC()
	if f.modTime.IsZero() {
		published = opts.Now().UTC()
	}
	return &Post{
		ID:          stem,
		Title:       "Error loading " + f.name,
		Date:        published.Format(DateLabelLayout),
		PublishedAt: published,
		ReadingTime: readtime.Label(""),
		Excerpt:     "This post could not be loaded.",
		Author: Author{
			Name:   opts.Defaults.Author,
			Avatar: opts.Defaults.Avatar,
			Bio:    opts.Defaults.Bio,
		},
		FeaturedImage: Image{Src: opts.Defaults.Image, Alt: DefaultImageAlt},
		Content:       []markdown.Block{{Kind: markdown.KindParagraph, Text: placeholderMessage}},
		Tags:          []string{ErrorTag},
		SourceFile:    f.name,
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
