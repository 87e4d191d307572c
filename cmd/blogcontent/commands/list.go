package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"git.home.luguber.info/inful/blogcontent/internal/posts"
)

// ListCmd implements the 'list' command.
type ListCmd struct {
	JSON bool   `name:"json" help:"Print full posts as JSON"`
	Tag  string `help:"Only list posts carrying this tag"`
}

func (l *ListCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	all, err := NewLoader(cfg, nil, g.logger()).LoadAll(context.Background())
	if err != nil {
		return err
	}
	if l.Tag != "" {
		all = slices.DeleteFunc(all, func(p *posts.Post) bool { return !slices.Contains(p.Tags, l.Tag) })
	}

	if l.JSON {
		enc := json.NewEncoder(g.out())
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	}

	tw := tabwriter.NewWriter(g.out(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "DATE\tID\tTITLE\tREAD\tTAGS")
	for _, p := range all {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			p.PublishedAt.Format("2006-01-02"), p.ID, p.Title, p.ReadingTime, strings.Join(p.Tags, ", "))
	}
	return tw.Flush()
}
