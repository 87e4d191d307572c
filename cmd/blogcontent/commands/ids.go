package commands

import (
	"context"
	"fmt"
)

// IDsCmd implements the 'ids' command.
type IDsCmd struct{}

func (i *IDsCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	ids, err := NewLoader(cfg, nil, g.logger()).IDs(context.Background())
	if err != nil {
		return err
	}
	for _, id := range ids {
		_, _ = fmt.Fprintln(g.out(), id)
	}
	return nil
}
