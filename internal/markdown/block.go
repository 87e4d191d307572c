// Package markdown turns post bodies into typed content blocks.
//
// It is deliberately not a CommonMark engine: the tokenizer understands the
// line-oriented subset the blog uses (headings, paragraphs, lists, code
// fences, blockquotes, standalone images) and the inline formatter resolves
// emphasis, strikethrough, code spans and links into HTML fragments.
package markdown

import (
	"encoding/json"
	"strings"
)

// Kind identifies the variant of a Block.
type Kind string

const (
	KindParagraph  Kind = "paragraph"
	KindHeading    Kind = "heading"
	KindSubheading Kind = "subheading"
	KindBlockquote Kind = "blockquote"
	KindCode       Kind = "code"
	KindList       Kind = "list"
	KindImage      Kind = "image"
)

// Image is the payload of an image block.
type Image struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
}

// Block is one semantic unit of a post body.
//
// Text holds the inline-formatted HTML fragment for text variants. Lists keep
// their formatted entries in Items; Image is only set for image blocks.
type Block struct {
	Kind     Kind
	Text     string
	Level    int
	Language string
	Ordered  bool
	Items    []string
	Image    *Image
}

// Content returns the flat text of the block. For lists it is the items
// joined with ", ", computed on demand so it cannot drift from Items.
func (b Block) Content() string {
	if b.Kind == KindList {
		return strings.Join(b.Items, ", ")
	}
	return b.Text
}

type wireBlock struct {
	Type     Kind     `json:"type"`
	Content  string   `json:"content"`
	Language string   `json:"language,omitempty"`
	Level    int      `json:"level,omitempty"`
	Items    []string `json:"items,omitempty"`
	Ordered  *bool    `json:"ordered,omitempty"`
	Image    *Image   `json:"image,omitempty"`
}

// MarshalJSON emits the block with a "content" field for flat-string consumers.
func (b Block) MarshalJSON() ([]byte, error) {
	w := wireBlock{
		Type:     b.Kind,
		Content:  b.Content(),
		Language: b.Language,
		Level:    b.Level,
		Image:    b.Image,
	}
	if b.Kind == KindList {
		ordered := b.Ordered
		w.Ordered = &ordered
		w.Items = b.Items
		if w.Items == nil {
			w.Items = []string{}
		}
	}
	return json.Marshal(w)
}
