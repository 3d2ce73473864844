package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"shrink/internal/config"
	"shrink/internal/resizer"
)

// requestFlags are shared by resize and inspect.
type requestFlags struct {
	output     string
	scale      string
	onConflict string
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "destination folder (defaults to the source folder)")
	cmd.Flags().StringVarP(&f.scale, "scale", "s", "50%", "resize percentage: "+scaleChoices())
	cmd.Flags().StringVar(&f.onConflict, "on-conflict", "overwrite", "when the output name exists: overwrite or rename")
}

// request builds the run input. Flags win over SHRINK_* variables.
func (f *requestFlags) request(cmd *cobra.Command, source string) (resizer.Request, error) {
	scaleText := cfg.Scale
	if cmd.Flags().Changed("scale") || scaleText == "" {
		scaleText = f.scale
	}
	scale, err := resizer.ParseOfferedScale(scaleText)
	if err != nil {
		return resizer.Request{}, err
	}

	conflictText := cfg.OnConflict
	if cmd.Flags().Changed("on-conflict") {
		conflictText = f.onConflict
	}
	conflict, err := config.ParseConflictPolicy(conflictText)
	if err != nil {
		return resizer.Request{}, err
	}

	return resizer.Request{
		SourceDir: source,
		OutputDir: f.output,
		Scale:     scale,
		Conflict:  conflict,
	}, nil
}

func scaleChoices() string {
	names := make([]string, 0, 3)
	for _, s := range resizer.Scales() {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}
