package posts

import (
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/blogcontent/internal/frontmatter"
)

// fingerprint hashes the header (minus volatile keys) together with the body.
// The header is re-serialized with LF newlines so CRLF and LF checkouts of
// the same post agree.
func fingerprint(fields frontmatter.Fields, body []byte) string {
	forHash := make(frontmatter.Fields, len(fields))
	for k, v := range fields {
		if k == mdfp.FingerprintField || k == "lastmod" {
			continue
		}
		forHash[k] = v
	}

	header := ""
	if len(forHash) > 0 {
		header = strings.TrimSuffix(string(frontmatter.Serialize(forHash, frontmatter.Style{Newline: "\n"})), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(header, strings.ReplaceAll(string(body), "\r\n", "\n"))
}
