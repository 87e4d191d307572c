package commands

import (
	"context"
	"encoding/json"
)

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	ID string `arg:"" help:"Post id"`
}

func (s *ShowCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	p, err := NewLoader(cfg, nil, g.logger()).Get(context.Background(), s.ID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(g.out())
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
