package commands

import (
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/scaffold"
)

// NewCmd implements the 'new' command.
type NewCmd struct {
	Title []string `arg:"" help:"Title of the new post"`
}

func (n *NewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	title := strings.Join(n.Title, " ")
	path, err := scaffold.Create(cfg.Content.Dir, title, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Created draft: %s\n", path)
	fmt.Println("Preview it with 'blogbuilder serve'; set draft: false to publish.")
	return nil
}
