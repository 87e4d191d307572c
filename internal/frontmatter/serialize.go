package frontmatter

import (
	"strings"
)

// Serialize renders fields as header lines (without delimiters) in sorted key order.
//
// Scalars that would otherwise be read back differently (surrounding spaces,
// quotes or a leading bracket) are wrapped in double quotes. A scalar that
// both starts with `[` and ends with `]` is read back as a list; newlines
// inside values are folded into spaces.
func Serialize(fields Fields, style Style) []byte {
	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}

	var b strings.Builder
	for _, key := range fields.Keys() {
		v := fields[key]
		b.WriteString(key)
		b.WriteString(": ")
		if v.IsList {
			items := make([]string, len(v.List))
			for i, item := range v.List {
				items[i] = quoteIfNeeded(item, true)
			}
			b.WriteString("[" + strings.Join(items, ", ") + "]")
		} else {
			b.WriteString(quoteIfNeeded(v.Scalar, false))
		}
		b.WriteString(nl)
	}
	return []byte(b.String())
}

func quoteIfNeeded(s string, inList bool) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	needs := s != strings.TrimSpace(s) ||
		strings.HasPrefix(s, `"`) ||
		(!inList && strings.HasPrefix(s, "[")) ||
		(inList && s == "")
	if needs {
		return `"` + s + `"`
	}
	return s
}
