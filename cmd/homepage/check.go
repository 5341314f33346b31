package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"homepage/internal/models"
	"homepage/internal/page"
	"homepage/internal/pages/status"
)

// errServicesDown makes check exit non-zero.
var errServicesDown = errors.New("services down")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe every status target once and print the results",
	Long:  `Resolves the status targets from buk1t.json exactly like the status page, probes them all concurrently and exits non-zero when any is down.`,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	_, statusCtl, err := newHandlers(cfg)
	if err != nil {
		return err
	}

	rep := statusCtl.Check(cmd.Context(), page.Context{Path: "/status/", Origin: originOf(cfg)})
	writeReport(cmd.OutOrStdout(), rep)

	if rep.Down > 0 {
		return fmt.Errorf("%d of %d: %w", rep.Down, len(rep.Checks), errServicesDown)
	}
	return nil
}

// writeReport prints one line per check followed by the summary.
func writeReport(w io.Writer, rep models.Report) {
	if rep.Notice != "" {
		fmt.Fprintln(w, rep.Notice)
	}
	for _, chk := range rep.Checks {
		name := chk.Target.Name
		if name == "" {
			name = chk.Target.ID
		}
		fmt.Fprintf(w, "%-6s %-24s %-8s %s\n", chk.Status, name, status.ChipText(chk.Status, chk.Result), chk.Target.URL)
	}
	fmt.Fprintln(w, rep.Summary)
}
