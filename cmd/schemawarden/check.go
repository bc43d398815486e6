package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/stackmill/schemawarden/v1/health"
	"github.com/stackmill/schemawarden/v1/notify"
)

// Exit codes for the check command.
const (
	exitOK       = 0
	exitWarning  = 1
	exitCritical = 2
)

func newCheckCommand() *cobra.Command {
	var jsonOutput bool

	command := &cobra.Command{
		Use:   "check",
		Short: "audit the registry and report findings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			auditor, err := newAuditor()
			if err != nil {
				return err
			}

			report := auditor.AuditAll(cmd.Context())
			publishHealthEvent(cmd, report)

			if jsonOutput {
				encoded, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("encode report: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			} else {
				printReport(cmd, report)
			}

			os.Exit(exitCodeFor(report.Summary.Status))
			return nil
		},
	}

	command.Flags().BoolVar(&jsonOutput, "json", false, "emit the report as JSON")
	return command
}

func publishHealthEvent(cmd *cobra.Command, report *health.Report) {
	event := notify.HealthEvent{
		Status:   string(report.Summary.Status),
		Issues:   report.Summary.TotalIssues,
		Warnings: report.Summary.TotalWarnings,
	}
	if counted, ok := report.Checks["subject_count"]; ok {
		event.SubjectCount = counted.Count
	}
	newNotifier().HealthCompleted(cmd.Context(), event)
}

func printReport(cmd *cobra.Command, report *health.Report) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Registry health report for %s\n", report.Endpoint)
	fmt.Fprintf(out, "Generated: %s\n\n", report.Timestamp)

	names := make([]string, 0, len(report.Checks))
	for name := range report.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		result := report.Checks[name]
		fmt.Fprintf(out, "  [%-8s] %-20s %s\n", result.Status, name, result.Message)
		if result.Coverage != "" {
			fmt.Fprintf(out, "             %-20s %s\n", "", result.Coverage)
		}
	}

	summary := report.Summary
	fmt.Fprintf(out, "\nOverall: %s (%d issues, %d warnings)\n",
		summary.Status, summary.TotalIssues, summary.TotalWarnings)
	for _, issue := range summary.Issues {
		fmt.Fprintf(out, "  issue:   %s\n", issue)
	}
	for _, warning := range summary.Warnings {
		fmt.Fprintf(out, "  warning: %s\n", warning)
	}
}

func exitCodeFor(status health.Status) int {
	switch status {
	case health.StatusOK:
		return exitOK
	case health.StatusWarning:
		return exitWarning
	default:
		return exitCritical
	}
}
