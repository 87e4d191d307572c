package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatter_Substitutions(t *testing.T) {
	f := NewFormatter(ModeEscape)

	cases := []struct {
		in, want string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__bold__", "<strong>bold</strong>"},
		{"*it*", "<em>it</em>"},
		{"_it_", "<em>it</em>"},
		{"~~gone~~", "<del>gone</del>"},
		{"`x := 1`", "<code>x := 1</code>"},
		{"[docs](https://go.dev)", `<a href="https://go.dev">docs</a>`},
		{"**a** and **b**", "<strong>a</strong> and <strong>b</strong>"},
		{"snake_case_name stays", "snake_case_name stays"},
		{"2 * 3 * 4", "2 * 3 * 4"},
		{"plain", "plain"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, f.Format(tc.in), "input %q", tc.in)
	}
}

func TestFormatter_EscapeMode(t *testing.T) {
	f := NewFormatter(ModeEscape)

	assert.Equal(t, "&lt;script&gt;alert(1)&lt;/script&gt;", f.Format("<script>alert(1)</script>"))
	assert.Equal(t, "click", f.Format("[click](javascript:alert%281%29)"))
	assert.Equal(t, `<a href="/a?x=1&amp;y=2">q</a>`, f.Format("[q](/a?x=1&y=2)"))
	assert.Equal(t, "<code>&lt;div&gt;</code>", f.Format("`<div>`"))
	assert.Equal(t, "x", f.Format("[x](javascript:alert(1))"))
}

func TestFormatter_LinkWithParentheses(t *testing.T) {
	f := NewFormatter(ModeEscape)

	assert.Equal(t,
		`see <a href="https://en.wikipedia.org/wiki/Go_(programming_language)">Go</a>.`,
		f.Format("see [Go](https://en.wikipedia.org/wiki/Go_(programming_language))."))
	assert.Equal(t, `(<a href="/a">a</a>)`, f.Format("([a](/a))"))
}

func TestFormatter_TrustedMode(t *testing.T) {
	f := NewFormatter(ModeTrusted)

	assert.Equal(t, "<b>raw</b> <strong>x</strong>", f.Format("<b>raw</b> **x**"))
	assert.Equal(t, `<a href="javascript:void">x</a>`, f.Format("[x](javascript:void)"))
	assert.Equal(t, ModeTrusted, f.Mode())
}

func TestPlainText(t *testing.T) {
	body := []byte("# Title\n\nSome **bold** text\nacross lines.\n\n```go\ncode()\n```\n\n- item [link](http://x)\n\n<div>raw</div>\n")

	assert.Equal(t, "Some bold text across lines. item link", PlainText(body))
}
