package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/equiref/diverso/cmd/diverso/cmd/inspect"
	"github.com/equiref/diverso/cmd/diverso/cmd/run"
	"github.com/equiref/diverso/cmd/diverso/cmd/ui"
)

// CreateRunCommand creates the run command with app dependencies.
func (a *App) CreateRunCommand() *cobra.Command {
	return run.NewCommand(a)
}

// CreateInspectCommand creates the inspect command with app dependencies.
func (a *App) CreateInspectCommand() *cobra.Command {
	return inspect.NewCommand(a)
}

// CreateUICommand creates the interactive ui command with app dependencies.
func (a *App) CreateUICommand() *cobra.Command {
	return ui.NewCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information for the diverso CLI.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "diverso version %s\n", a.version)
			fmt.Fprintf(out, "commit: %s\n", a.commit)
			fmt.Fprintf(out, "built: %s\n", a.date)
			fmt.Fprintf(out, "built by: %s\n", a.builtBy)
			fmt.Fprintf(out, "go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
