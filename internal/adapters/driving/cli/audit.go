package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent automation events",
	Long: `Show the most recent start, stop and purge events, newest first.

Examples:
  autoprofile audit
  autoprofile audit --limit 5`,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().IntP("limit", "n", 20, "maximum number of events (0 = all)")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("getting limit flag: %w", err)
	}
	if limit < 0 {
		return errors.New("limit must not be negative")
	}

	rt, err := newRuntime(configDir)
	if err != nil {
		return err
	}
	defer rt.Close()

	events, err := rt.Audit.Recent(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("reading audit log: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No audit events recorded.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTION\tDETAIL")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.CreatedAt.Local().Format(time.DateTime), e.Action, e.Detail)
	}
	return w.Flush()
}
