package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	raw, body, had, _ := Split(input)
	require.False(t, had)
	require.Empty(t, raw)
	require.Equal(t, input, body)
}

func TestSplit_Frontmatter_SplitsHeaderAndBody(t *testing.T) {
	input := []byte("---\ntitle: Hello\n---\n# Title\n")

	raw, body, had, _ := Split(input)
	require.True(t, had)
	require.Equal(t, []byte("title: Hello\n"), raw)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_MissingClosingDelimiter_TreatedAsAbsent(t *testing.T) {
	input := []byte("---\ntitle: Hello\n# Title\n")

	raw, body, had, _ := Split(input)
	require.False(t, had)
	require.Nil(t, raw)
	require.Equal(t, input, body)
}

func TestSplit_DelimiterNotAtStart_TreatedAsAbsent(t *testing.T) {
	input := []byte("\n---\ntitle: Hello\n---\nbody\n")

	_, body, had, _ := Split(input)
	require.False(t, had)
	require.Equal(t, input, body)
}

func TestSplit_CRLF_SplitsHeaderAndBody(t *testing.T) {
	input := []byte("---\r\ntitle: Hello\r\n---\r\n# Title\r\n")

	raw, body, had, style := Split(input)
	require.True(t, had)
	require.Equal(t, "\r\n", style.Newline)
	require.Equal(t, []byte("title: Hello\r\n"), raw)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplit_EmptyHeader(t *testing.T) {
	raw, body, had, _ := Split([]byte("---\n---\nbody\n"))
	require.True(t, had)
	require.Empty(t, raw)
	require.Equal(t, []byte("body\n"), body)
}

func TestSplit_ClosingDelimiterAtEOF(t *testing.T) {
	raw, body, had, _ := Split([]byte("---\ntitle: Hello\n---"))
	require.True(t, had)
	require.Equal(t, []byte("title: Hello\n"), raw)
	require.Empty(t, body)
}

func TestJoin_RoundTrip_ReconstructsOriginalBytes(t *testing.T) {
	cases := []string{
		"# Title\n\nHello\n",
		"---\ntitle: Hello\n---\n# Title\n",
		"---\n---\n# Title\n",
		"---\r\ntitle: Hello\r\n---\r\n# Title\r\n",
		"---\ntitle: Hello\n---",
		"---\ntitle: Hello\n---\n",
		"---\nunterminated: yes\n",
	}

	for _, input := range cases {
		doc := ParseDocument([]byte(input))
		require.Equal(t, input, string(doc.Bytes()), "input %q", input)
	}
}

func TestParseDocument_NoHeader_EmptyFields(t *testing.T) {
	doc := ParseDocument([]byte("just text"))
	require.False(t, doc.Had)
	require.Empty(t, doc.Fields)
	require.Equal(t, []byte("just text"), doc.Body)
}
