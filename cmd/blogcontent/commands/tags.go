package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
)

// TagsCmd implements the 'tags' command.
type TagsCmd struct{}

func (t *TagsCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	tags, err := NewLoader(cfg, nil, g.logger()).Tags(context.Background())
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(g.out(), 0, 4, 2, ' ', 0)
	for _, tc := range tags {
		_, _ = fmt.Fprintf(tw, "%s\t%d\n", tc.Tag, tc.Count)
	}
	return tw.Flush()
}
