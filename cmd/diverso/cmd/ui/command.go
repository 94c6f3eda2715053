// Package ui implements the ui command, which opens the interactive
// terminal form for assembling and running a reconciliation.
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/equiref/diverso/internal/appcontext"
	"github.com/equiref/diverso/internal/tui"
)

// Flags holds command-line flags for the ui command.
type Flags struct {
	Survey      string
	Recruitment string
	Output      string
}

// NewCommand creates the ui command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive reconciliation form",
		Long: `Open a terminal form for running a reconciliation interactively.

The form asks for the survey table, the recruitment table, the output
file, and an optional column whitelist, then runs the same pipeline as
the run command. Each run writes its log next to the output file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeUI(cmd, app, flags)
		},
	}

	flags = addUIFlags(cmd)

	return cmd
}

// addUIFlags adds ui-specific flags and returns the flag struct.
func addUIFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}

	cmd.Flags().StringVarP(&flags.Survey, "survey", "s", "", "prefill the survey table path")
	cmd.Flags().StringVarP(&flags.Recruitment, "recruitment", "r", "", "prefill the recruitment table path")
	cmd.Flags().StringVar(&flags.Output, "output", "", "prefill the output file path")

	return flags
}

// executeUI runs the form until the user quits.
func executeUI(cmd *cobra.Command, app appcontext.Interface, flags *Flags) error {
	form := tui.New(
		tui.WithContext(cmd.Context()),
		tui.WithLogConfig(app.LogConfig()),
		tui.WithPaths(flags.Survey, flags.Recruitment, flags.Output),
	)

	program := tea.NewProgram(form, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running interactive form: %w", err)
	}

	return nil
}
