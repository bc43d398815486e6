package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackmill/schemawarden/v1/lifecycle"
)

func newSubjectsCommand() *cobra.Command {
	var (
		includeDeleted bool
		pattern        string
		minVersions    int
		detailed       bool
	)

	command := &cobra.Command{
		Use:   "subjects",
		Short: "list registry subjects, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := newManager()
			if err != nil {
				return err
			}

			var subjects []string
			if pattern != "" || minVersions > 0 {
				subjects, err = manager.FilterSubjects(cmd.Context(), lifecycle.Filter{
					MinVersions: minVersions,
					Pattern:     pattern,
				})
			} else {
				subjects, err = manager.ListSubjects(cmd.Context(), includeDeleted)
			}
			if err != nil {
				return fmt.Errorf("list subjects: %w", err)
			}

			out := cmd.OutOrStdout()
			if !detailed {
				for _, subject := range subjects {
					fmt.Fprintln(out, subject)
				}
				return nil
			}

			for _, subject := range subjects {
				details := manager.SubjectDetails(cmd.Context(), subject)
				encoded, err := json.Marshal(details)
				if err != nil {
					return fmt.Errorf("encode details for %s: %w", subject, err)
				}
				fmt.Fprintln(out, string(encoded))
			}
			return nil
		},
	}

	command.Flags().BoolVar(&includeDeleted, "deleted", false, "include soft-deleted subjects")
	command.Flags().StringVar(&pattern, "pattern", "", "keep only subjects containing this substring")
	command.Flags().IntVar(&minVersions, "min-versions", 0, "keep only subjects with at least this many versions")
	command.Flags().BoolVar(&detailed, "details", false, "print per-subject details as JSON lines")
	return command
}
