// Package frontmatter splits `---` delimited metadata headers from post
// bodies and parses the small `key: value` dialect used by the blog.
package frontmatter

import (
	"bytes"
)

const delimiter = "---"

// Style captures formatting details needed for stable rewriting.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// Split separates a `---` delimited header from the body.
//
// The opening delimiter must be the very first line. When it is missing, or
// no closing delimiter follows, had is false and body is the input unchanged;
// malformed headers are never reported as errors. raw excludes both delimiter
// lines but keeps the newline ending the last header line.
func Split(content []byte) (raw []byte, body []byte, had bool, style Style) {
	style = detectStyle(content)
	nl := style.Newline

	open := []byte(delimiter + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, style
	}
	rest := content[len(open):]

	// Empty header: the closing delimiter directly follows the opening one.
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, style
	}
	if bytes.Equal(rest, []byte(delimiter)) {
		return []byte{}, []byte{}, true, style
	}

	closeSeq := []byte(nl + delimiter + nl)
	if idx := bytes.Index(rest, closeSeq); idx >= 0 {
		return rest[:idx+len(nl)], rest[idx+len(closeSeq):], true, style
	}

	// Closing delimiter as the final line without a trailing newline.
	closeEOF := []byte(nl + delimiter)
	if bytes.HasSuffix(rest, closeEOF) {
		return rest[:len(rest)-len(delimiter)], []byte{}, true, style
	}

	return nil, content, false, style
}

// Join reassembles a document from a raw header and body.
//
// If had is false, Join returns body as-is.
func Join(raw []byte, body []byte, had bool, style Style) []byte {
	if !had {
		return body
	}

	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}
	delim := []byte(delimiter + nl)

	out := make([]byte, 0, 2*len(delim)+len(raw)+len(body))
	out = append(out, delim...)
	out = append(out, raw...)
	if len(body) == 0 && !style.HasTrailingNewline {
		return append(out, delimiter...)
	}
	out = append(out, delim...)
	out = append(out, body...)
	return out
}

// Document bundles a parsed header with the body it was split from.
type Document struct {
	Fields Fields
	Raw    []byte
	Body   []byte
	Had    bool
	Style  Style
}

// ParseDocument splits content and parses its header.
func ParseDocument(content []byte) *Document {
	raw, body, had, style := Split(content)
	fields := Fields{}
	if had {
		fields = Parse(raw)
	}
	return &Document{
		Fields: fields,
		Raw:    raw,
		Body:   body,
		Had:    had,
		Style:  style,
	}
}

// Bytes re-joins the raw header and the body.
func (d *Document) Bytes() []byte {
	return Join(d.Raw, d.Body, d.Had, d.Style)
}

func detectStyle(content []byte) Style {
	newline := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		newline = "\r\n"
	}
	return Style{
		Newline:            newline,
		HasTrailingNewline: len(content) > 0 && content[len(content)-1] == '\n',
	}
}
