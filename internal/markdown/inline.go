package markdown

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Mode selects how source text is treated before inline substitution.
type Mode int

const (
	// ModeEscape HTML-escapes source text and drops links with script-capable
	// schemes. Only markup produced by the formatter reaches the output.
	ModeEscape Mode = iota
	// ModeTrusted passes author text through untouched, raw HTML included.
	ModeTrusted
)

var (
	boldStar       = regexp.MustCompile(`\*\*(\S(?:.*?\S)?)\*\*`)
	boldUnderscore = regexp.MustCompile(`\b__(\S(?:.*?\S)?)__\b`)
	italicStar     = regexp.MustCompile(`\*([^\s*](?:[^*]*?[^\s*])?)\*`)
	italicUnder    = regexp.MustCompile(`\b_([^\s_](?:[^_]*?[^\s_])?)_\b`)
	strikethrough  = regexp.MustCompile(`~~(.+?)~~`)
	inlineCode     = regexp.MustCompile("`([^`]+)`")
	link           = regexp.MustCompile(`\[([^\]]+)\]\(((?:[^()\s]|\([^()\s]*\))+)\)`)
)

var unsafeSchemes = []string{"javascript:", "vbscript:", "data:"}

// Formatter resolves inline markdown into HTML fragments.
type Formatter struct {
	mode Mode
}

// NewFormatter returns a Formatter using mode.
func NewFormatter(mode Mode) *Formatter {
	return &Formatter{mode: mode}
}

// Mode reports the formatter's mode.
func (f *Formatter) Mode() Mode { return f.mode }

// Format applies bold, italic, strikethrough, inline code and link
// substitutions, in that order.
func (f *Formatter) Format(s string) string {
	s = f.Escape(s)
	s = boldStar.ReplaceAllString(s, "<strong>$1</strong>")
	s = boldUnderscore.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicStar.ReplaceAllString(s, "<em>$1</em>")
	s = italicUnder.ReplaceAllString(s, "<em>$1</em>")
	s = strikethrough.ReplaceAllString(s, "<del>$1</del>")
	s = inlineCode.ReplaceAllString(s, "<code>$1</code>")
	s = link.ReplaceAllStringFunc(s, f.replaceLink)
	return s
}

// Escape returns s escaped for HTML in ModeEscape and unchanged otherwise.
func (f *Formatter) Escape(s string) string {
	if f.mode == ModeTrusted {
		return s
	}
	return html.EscapeString(s)
}

// SafeURL reports whether u may be emitted as a link or image target.
func (f *Formatter) SafeURL(u string) bool {
	if f.mode == ModeTrusted {
		return true
	}
	lower := strings.ToLower(strings.TrimSpace(html.UnescapeString(u)))
	for _, scheme := range unsafeSchemes {
		if strings.HasPrefix(lower, scheme) {
			return false
		}
	}
	return true
}

func (f *Formatter) replaceLink(match string) string {
	m := link.FindStringSubmatch(match)
	text, href := m[1], m[2]
	if !f.SafeURL(href) {
		return text
	}
	return `<a href="` + href + `">` + text + `</a>`
}
