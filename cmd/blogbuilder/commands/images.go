package commands

import (
	"fmt"

	"git.home.luguber.info/inful/blogbuilder/internal/assets"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

// ImagesCmd implements the 'images' command.
type ImagesCmd struct {
	MaxWidth int `help:"Maximum image width in pixels (overrides images.max_width)"`
}

func (i *ImagesCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	maxWidth := cfg.Images.MaxWidth
	if i.MaxWidth > 0 {
		maxWidth = i.MaxWidth
	}

	reports, err := assets.ProcessDir(cfg.Content.StaticDir, assets.Options{
		MaxWidth:    maxWidth,
		JPEGQuality: cfg.Images.JPEGQuality,
	})
	if err != nil {
		return err
	}

	var resized, flagged int
	for _, rep := range reports {
		switch rep.Action {
		case assets.ActionResized:
			resized++
			fmt.Printf("resized %s: %dpx -> %dpx (%d -> %d bytes)\n",
				rep.Path, rep.Width, rep.NewWidth, rep.OldSize, rep.NewSize)
		case assets.ActionFlagged:
			flagged++
			fmt.Printf("flagged %s: %dpx wide, convert or crop manually\n", rep.Path, rep.Width)
		}
	}
	fmt.Printf("%d image(s) scanned, %d resized, %d flagged\n", len(reports), resized, flagged)
	return nil
}
