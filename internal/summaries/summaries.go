// Package summaries reads the companion summaries file, a markdown document
// of `## <Title>` sections each followed by a short summary, and exposes it as
// a lookup table keyed by post id and normalized title.
package summaries

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// indexHeading is the conventional heading of the file itself, not a post.
const indexHeading = "blog post summaries"

var (
	nonSlug    = regexp.MustCompile(`[^a-z0-9_\s-]`)
	separators = regexp.MustCompile(`[\s_-]+`)
	usingWord  = regexp.MustCompile(`\busing\b`)
	withWord   = regexp.MustCompile(`\bwith\b`)
)

// Entry is one section of the summaries file.
type Entry struct {
	Title   string
	ID      string
	Summary string
}

// Index maps ids (and title aliases) to summaries.
type Index struct {
	entries []Entry
	byKey   map[string]int // index into entries
}

// Empty returns an index without entries.
func Empty() *Index {
	return &Index{byKey: map[string]int{}}
}

// Load reads name from fsys. A missing file yields an empty index.
func Load(fsys fs.FS, name string) (*Index, error) {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read summaries %s: %w", name, err)
	}
	return Parse(string(data)), nil
}

// Parse builds an index from the file content. Text before the first
// section is ignored, as are sections with an empty summary.
func Parse(content string) *Index {
	idx := Empty()

	var (
		title   string
		body    []string
		inEntry bool
	)
	flush := func() {
		if !inEntry {
			return
		}
		summary := strings.TrimSpace(strings.Join(body, "\n"))
		id := Slugify(title)
		if summary != "" && id != "" && strings.ToLower(title) != indexHeading {
			idx.entries = append(idx.entries, Entry{Title: title, ID: id, Summary: summary})
		}
		body = nil
	}

	for _, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		if strings.HasPrefix(line, "## ") {
			flush()
			title = strings.TrimSpace(line[3:])
			inEntry = true
			continue
		}
		if inEntry {
			body = append(body, line)
		}
	}
	flush()

	for i, e := range idx.entries {
		idx.byKey[e.ID] = i
	}
	// "using" and "with" are used interchangeably between titles and filenames.
	for i, e := range idx.entries {
		lower := strings.ToLower(e.Title)
		for _, alias := range []string{
			Slugify(usingWord.ReplaceAllString(lower, "with")),
			Slugify(withWord.ReplaceAllString(lower, "using")),
		} {
			if _, exists := idx.byKey[alias]; !exists && alias != "" {
				idx.byKey[alias] = i
			}
		}
	}
	return idx
}

// Lookup returns the summary registered for id.
func (i *Index) Lookup(id string) (string, bool) {
	e, ok := i.Resolve(id)
	return e.Summary, ok
}

// Resolve returns the section a key (id or alias) points at.
func (i *Index) Resolve(key string) (Entry, bool) {
	if i == nil {
		return Entry{}, false
	}
	n, ok := i.byKey[key]
	if !ok {
		return Entry{}, false
	}
	return i.entries[n], true
}

// LookupTitle returns the summary for a post title after normalization.
func (i *Index) LookupTitle(title string) (string, bool) {
	key := Slugify(title)
	if key == "" {
		return "", false
	}
	return i.Lookup(key)
}

// Len returns the number of sections in the index.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.entries)
}

// Entries returns the parsed sections in file order.
func (i *Index) Entries() []Entry {
	if i == nil {
		return nil
	}
	return append([]Entry(nil), i.entries...)
}

// Slugify converts a title into kebab-case id form: accents are folded,
// punctuation dropped and runs of spaces, underscores and hyphens collapsed.
func Slugify(title string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(fold, title)
	if err != nil {
		s = title
	}
	s = strings.ToLower(s)
	s = nonSlug.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
