// Package readtime estimates how long a post takes to read.
package readtime

import (
	"strconv"
	"strings"
)

// WordsPerMinute is the fixed reading rate.
const WordsPerMinute = 200

// Minutes returns ceil(words/WordsPerMinute), never less than 1.
func Minutes(body string) int {
	words := len(strings.Fields(body))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	return max(minutes, 1)
}

// Label formats the estimate as shown in listings, e.g. "3 min".
func Label(body string) string {
	return strconv.Itoa(Minutes(body)) + " min"
}
