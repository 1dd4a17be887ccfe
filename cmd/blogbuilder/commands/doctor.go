package commands

import (
	"context"
	"errors"
	"fmt"

	"git.home.luguber.info/inful/blogbuilder/internal/envdesc"
)

// DoctorCmd implements the 'doctor' command: it checks the declared
// development toolchain the way an environment shell would on entry.
type DoctorCmd struct {
	Descriptor string `default:"tools.yaml" help:"Environment descriptor file"`
}

func (d *DoctorCmd) Run(_ *Global, _ *CLI) error {
	desc, err := envdesc.Load(d.Descriptor)
	if err != nil {
		return err
	}

	for _, src := range desc.Sources {
		fmt.Printf("source %s: %s\n", src.Name, src.URL)
	}

	statuses, checkErr := desc.Check(context.Background())
	for _, st := range statuses {
		switch {
		case st.Found && st.Version != "":
			fmt.Printf("ok: %s %s (%s)\n", st.Tool.Name, st.Version, st.Path)
		case st.Found:
			fmt.Printf("ok: %s (%s)\n", st.Tool.Name, st.Path)
		case st.Tool.Optional:
			fmt.Printf("missing (optional): %s\n", st.Tool.Name)
		default:
			fmt.Printf("MISSING: %s\n", st.Tool.Name)
		}
		if st.Tool.Usage != "" {
			fmt.Printf("    %s\n", st.Tool.Usage)
		}
	}

	if checkErr != nil {
		if errors.Is(checkErr, envdesc.ErrToolMissing) {
			return fmt.Errorf("environment incomplete: %w", checkErr)
		}
		return checkErr
	}
	fmt.Println("Environment looks good")
	return nil
}
