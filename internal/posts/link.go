package posts

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"git.home.luguber.info/inful/blogcontent/internal/logfields"
)

// assignIDs makes ids unique in input order. A clashing post first falls
// back to its full filename stem, then to the stem with a numeric suffix.
func assignIDs(all []*Post, logger *slog.Logger) {
	taken := make(map[string]bool, len(all))
	for _, p := range all {
		if !taken[p.ID] {
			taken[p.ID] = true
			continue
		}
		original := p.ID
		candidate := strings.TrimSuffix(p.SourceFile, ".md")
		for n := 2; taken[candidate]; n++ {
			candidate = fmt.Sprintf("%s-%d", strings.TrimSuffix(p.SourceFile, ".md"), n)
		}
		p.ID = candidate
		taken[candidate] = true
		logger.Warn("Duplicate post id, disambiguated",
			logfields.PostID(original),
			logfields.File(p.SourceFile),
			slog.String("assigned_id", candidate))
	}
}

// link orders posts newest first and sets navigation and related posts.
// Ties keep input order.
func link(all []*Post) {
	slices.SortStableFunc(all, func(a, b *Post) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})

	for i, p := range all {
		p.NextPost = nil
		p.PreviousPost = nil
		if i > 0 {
			p.NextPost = &PostRef{ID: all[i-1].ID, Title: all[i-1].Title}
		}
		if i < len(all)-1 {
			p.PreviousPost = &PostRef{ID: all[i+1].ID, Title: all[i+1].Title}
		}

		related := make([]RelatedPost, 0, maxRelatedPosts)
		for _, other := range all {
			if len(related) == maxRelatedPosts {
				break
			}
			if other == p {
				continue
			}
			related = append(related, RelatedPost{
				ID:      other.ID,
				Title:   other.Title,
				Excerpt: other.Excerpt,
				Date:    other.Date,
				Image:   other.FeaturedImage.Src,
			})
		}
		p.RelatedPosts = related
	}
}
