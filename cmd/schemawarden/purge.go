package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackmill/schemawarden/v1/notify"
	"github.com/stackmill/schemawarden/v1/oplog"
)

func newPurgeCommand() *cobra.Command {
	var dryRun bool

	command := &cobra.Command{
		Use:   "purge",
		Short: "permanently delete all soft-deleted subjects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := newManager()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if dryRun {
				subjects, err := manager.SoftDeleted(cmd.Context())
				if err != nil {
					return fmt.Errorf("list soft-deleted subjects: %w", err)
				}
				fmt.Fprintf(out, "%d subjects would be purged\n", len(subjects))
				for _, subject := range subjects {
					fmt.Fprintln(out, subject)
				}
				return nil
			}

			result, err := manager.PurgeSoftDeleted(cmd.Context())
			if err != nil {
				return fmt.Errorf("purge soft-deleted subjects: %w", err)
			}

			if result.Bulk == nil {
				fmt.Fprintln(out, result.Message)
				return nil
			}

			bulk := result.Bulk
			fmt.Fprintf(out, "purged %d of %d subjects (%d failed)\n",
				bulk.SuccessCount, bulk.Total, bulk.FailureCount)
			for _, item := range bulk.Successful {
				fmt.Fprintf(out, "  deleted: %s\n", item.Subject)
			}
			for _, item := range bulk.Failed {
				fmt.Fprintf(out, "  failed:  %s (%s)\n", item.Subject, item.Error)
			}

			subjects := make([]string, 0, len(bulk.Successful))
			for _, item := range bulk.Successful {
				subjects = append(subjects, item.Subject)
			}
			newNotifier().SubjectsDeleted(cmd.Context(), notify.DeletionEvent{
				Operation: oplog.OpPurge,
				Subjects:  subjects,
				Succeeded: bulk.SuccessCount,
				Failed:    bulk.FailureCount,
			})
			return nil
		},
	}

	command.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be purged without deleting")
	return command
}
