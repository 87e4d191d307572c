package readtime

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestMinutes(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		want  int
		label string
	}{
		{"empty floors at one", "", 1, "1 min"},
		{"fifty words", words(50), 1, "1 min"},
		{"exactly one minute", words(200), 1, "1 min"},
		{"just over one minute", words(201), 2, "2 min"},
		{"four hundred words", words(400), 2, "2 min"},
		{"mixed whitespace", "a\tb\n\nc   d\r\ne", 1, "1 min"},
		{"long", words(1001), 6, "6 min"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Minutes(tc.body))
			assert.Equal(t, tc.label, Label(tc.body))
		})
	}
}
