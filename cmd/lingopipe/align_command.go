package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lingopipe/internal/dialogue"
	"lingopipe/internal/workflow"
)

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var dirFlag string
	var jsonOutput bool
	var all bool
	var simple bool
	var noReplace bool

	cmd := &cobra.Command{
		Use:   "align [dialogue-id|audio-file]...",
		Short: "Re-align existing documents against saved word timestamps",
		Long: `Re-runs timestamp alignment for dialogues that were already processed,
using the full matching strategy chain (whole phrase, phrase edges, then
cross-phrase transitions). Accepts dialogue IDs or audio file names, or
--all to re-align every document in the directory.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir := strings.TrimSpace(dirFlag)
			if dir == "" {
				dir = cfg.Paths.AudioDir
			}

			ids, err := resolveDialogueIDs(dir, args, all)
			if err != nil {
				return err
			}

			processor, closeJournal, err := ctx.newProcessor()
			if err != nil {
				return err
			}
			defer closeJournal()

			opts := workflow.AlignOptions{Simple: simple, NoReplace: noReplace}
			out := cmd.OutOrStdout()
			var failures []error
			for _, id := range ids {
				result, err := processor.AlignDocument(cmd.Context(), dir, id, opts)
				if err != nil {
					// One bad document does not stop the rest.
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", id, err)
					failures = append(failures, fmt.Errorf("%s: %w", id, err))
					continue
				}
				if jsonOutput {
					if err := writeJSON(cmd, result); err != nil {
						return err
					}
					continue
				}
				fmt.Fprintf(out, "%s: aligned %d phrases against %d words\n",
					result.DialogueID, result.PhraseCount, result.WordCount)
			}
			return errors.Join(failures...)
		},
	}

	cmd.Flags().StringVar(&dirFlag, "dir", "", "Directory holding documents and token logs (defaults to paths.audio_dir)")
	cmd.Flags().BoolVar(&all, "all", false, "Re-align every canonical document in the directory")
	cmd.Flags().BoolVar(&simple, "simple", false, "Anchor-word alignment only, as the batch pipeline does")
	cmd.Flags().BoolVar(&noReplace, "no-replace", false, "Write the adjusted file without touching the canonical document")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit results as JSON")
	return cmd
}

// resolveDialogueIDs turns command arguments (or --all discovery) into a
// list of dialogue IDs.
func resolveDialogueIDs(dir string, args []string, all bool) ([]string, error) {
	if all {
		if len(args) > 0 {
			return nil, fmt.Errorf("--all does not take arguments")
		}
		ids, err := workflow.DiscoverDialogues(dir)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, fmt.Errorf("no dialogue documents in %s", dir)
		}
		return ids, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("provide dialogue IDs or use --all")
	}
	ids := make([]string, 0, len(args))
	for _, arg := range args {
		id := arg
		if extracted, ok := dialogue.ExtractID(filepath.Base(arg)); ok {
			id = extracted
		}
		ids = append(ids, id)
	}
	return ids, nil
}
