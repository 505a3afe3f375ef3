package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/autoprofile/internal/adapters/driving/tui"
	"github.com/custodia-labs/autoprofile/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	Long: `Launch a terminal dashboard that shows every loop's state and runs
chat commands typed at its prompt.

Loops stop when the dashboard exits.

Controls:
  Enter  - Run the typed command
  Ctrl+R - Refresh loop status
  Ctrl+L - Clear replies
  F1     - Toggle help
  Esc    - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// programRunner is the part of *tea.Program the command uses.
type programRunner interface {
	Run() (tea.Model, error)
}

// newProgram is replaced in tests.
var newProgram = func(model tea.Model, opts ...tea.ProgramOption) programRunner {
	return tea.NewProgram(model, opts...)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime(configDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			logger.Error("shutdown: %v", err)
		}
	}()

	ctx := cmd.Context()
	closeWatcher, err := watchConfig(ctx, rt)
	if err != nil {
		return err
	}
	defer closeWatcher()

	app, err := tui.NewApp(&tui.Ports{
		Commands:   rt.Module,
		Automation: rt.Automation,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(ctx)

	p := newProgram(app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
