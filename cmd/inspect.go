package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"shrink/internal/resizer"
	"shrink/internal/tui"
)

var inspectFlags requestFlags

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] <source-folder>",
	Short: "Show what resize would do without writing anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == "" {
			return resizer.ErrNoSource
		}
		req, err := inspectFlags.request(cmd, args[0])
		if err != nil {
			return err
		}

		plan, err := resizer.Plan(req)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		var predicted resizer.Summary
		for i, entry := range plan {
			if i > 0 {
				fmt.Fprintln(out)
			}
			printPlanEntry(out, entry)
			switch {
			case entry.Outcome == resizer.OutcomeProcessed:
				predicted.Processed++
			case entry.Outcome.Skipped():
				predicted.Skipped++
			default:
				predicted.Errors++
			}
		}
		if len(plan) > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, tui.RenderSummary(tui.SummaryRows(predicted)))
		return nil
	},
}

func printPlanEntry(out io.Writer, entry resizer.PlanEntry) {
	fmt.Fprintf(out, "%s\n", inspectFileStyle.Render(entry.Name))

	bullet := inspectBulletStyle.Render("-")
	switch entry.Outcome {
	case resizer.OutcomeSkippedUnsupported:
		fmt.Fprintf(out, "  %s %s\n", bullet, inspectDimStyle.Render("skip: not a supported image file or is a directory"))
		return
	case resizer.OutcomeSkippedUnrecognized:
		fmt.Fprintf(out, "  %s %s\n", bullet, inspectWarnStyle.Render("skip: not a recognized image format or the file is corrupted"))
		return
	case resizer.OutcomeErrored:
		fmt.Fprintf(out, "  %s %s\n", bullet, inspectWarnStyle.Render(fmt.Sprintf("error: %v", entry.Err)))
		return
	}

	fmt.Fprintf(out, "  %s %s\n", bullet, inspectValueStyle.Render(fmt.Sprintf("%s %dx%d -> %dx%d",
		entry.Kind, entry.Width, entry.Height, entry.NewWidth, entry.NewHeight)))
	fmt.Fprintf(out, "  %s %s\n", bullet, inspectValueStyle.Render("output: "+entry.OutputName))
	if entry.Exif.Tags > 0 {
		note := fmt.Sprintf("EXIF: %d tags not carried over", entry.Exif.Tags)
		switch {
		case entry.Exif.HasGPS && entry.Exif.HasModel:
			note += " (includes GPS and camera model)"
		case entry.Exif.HasGPS:
			note += " (includes GPS)"
		case entry.Exif.HasModel:
			note += " (includes camera model)"
		}
		if entry.Exif.Orientation != "" {
			note += fmt.Sprintf(", orientation %s is not applied", entry.Exif.Orientation)
		}
		fmt.Fprintf(out, "  %s %s\n", bullet, inspectDimStyle.Render(note))
	}
}

var (
	inspectFileStyle   = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	inspectValueStyle  = lipgloss.NewStyle().Foreground(tui.ColorInk)
	inspectDimStyle    = lipgloss.NewStyle().Foreground(tui.ColorDim)
	inspectWarnStyle   = lipgloss.NewStyle().Foreground(tui.ColorWarn)
	inspectBulletStyle = lipgloss.NewStyle().Foreground(tui.ColorDim)
)

func init() {
	inspectFlags.register(inspectCmd)
	rootCmd.AddCommand(inspectCmd)
}
