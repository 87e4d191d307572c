package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/blogcontent/internal/foundation/errors"
	"git.home.luguber.info/inful/blogcontent/internal/posts"
	"git.home.luguber.info/inful/blogcontent/internal/summaries"
)

// SummariesCmd implements the 'summaries' command. It never modifies files.
type SummariesCmd struct {
	MissingOnly bool `name:"missing-only" help:"Only list posts without an external summary"`
}

// Summary match sources.
const (
	matchByID    = "id"
	matchByTitle = "title"
	matchMissing = "missing"
)

// SummaryReport describes how each post resolves against the summaries file.
type SummaryReport struct {
	Matches map[string]string // post id -> match source
	Order   []string
	Orphans []summaries.Entry // sections matching no post
}

func (s *SummariesCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	loader := NewLoader(cfg, nil, g.logger())
	report, err := BuildSummaryReport(context.Background(), loader)
	if err != nil {
		return err
	}

	out := g.out()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	missing := 0
	for _, id := range report.Order {
		match := report.Matches[id]
		if match == matchMissing {
			missing++
		} else if s.MissingOnly {
			continue
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", id, match)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, e := range report.Orphans {
		_, _ = fmt.Fprintf(out, "orphan summary: %q (%s)\n", e.Title, e.ID)
	}
	_, _ = fmt.Fprintf(out, "%d posts, %d without summary, %d orphan summaries\n",
		len(report.Order), missing, len(report.Orphans))
	return nil
}

// BuildSummaryReport loads posts and the summaries file and matches them up
// the same way excerpts are resolved.
func BuildSummaryReport(ctx context.Context, loader *posts.Loader) (*SummaryReport, error) {
	all, err := loader.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	idx, err := summaries.Load(loader.FS(), loader.Options().SummariesFile)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read summaries file").Build()
	}

	report := &SummaryReport{Matches: make(map[string]string, len(all))}
	used := map[string]bool{}
	for _, p := range all {
		if p.IsPlaceholder() {
			continue
		}
		report.Order = append(report.Order, p.ID)
		if e, ok := idx.Resolve(p.ID); ok {
			report.Matches[p.ID] = matchByID
			used[e.ID] = true
		} else if e, ok := idx.Resolve(summaries.Slugify(p.Title)); ok {
			report.Matches[p.ID] = matchByTitle
			used[e.ID] = true
		} else {
			report.Matches[p.ID] = matchMissing
		}
	}
	for _, e := range idx.Entries() {
		if !used[e.ID] {
			report.Orphans = append(report.Orphans, e)
		}
	}
	return report, nil
}
