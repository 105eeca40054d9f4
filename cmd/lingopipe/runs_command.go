package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lingopipe/internal/journal"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var dialogueID string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recorded processing runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openJournal()
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			var runs []*journal.Run
			if strings.TrimSpace(dialogueID) != "" {
				runs, err = store.ListByDialogue(cmd.Context(), strings.TrimSpace(dialogueID))
			} else {
				runs, err = store.List(cmd.Context(), limit)
			}
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd, runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.DialogueID,
					string(run.Operation),
					string(run.Status),
					strconv.Itoa(run.PhraseCount),
					strconv.Itoa(run.WordCount),
					run.StartedAt.Local().Format(time.DateTime),
					runDuration(run),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Dialogue", "Operation", "Status", "Phrases", "Words", "Started", "Took"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().StringVar(&dialogueID, "dialogue", "", "Show runs for one dialogue ID")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit runs as JSON")
	return cmd
}

func runDuration(run *journal.Run) string {
	if run.FinishedAt == nil {
		return "-"
	}
	return run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
}
