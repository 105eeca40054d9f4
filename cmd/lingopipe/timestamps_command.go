package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lingopipe/internal/config"
	"lingopipe/internal/workflow"
)

func newTimestampsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var skip []string

	cmd := &cobra.Command{
		Use:   "timestamps [audio-file...]",
		Short: "Generate and align dialogue timestamps from audio",
		Long: `Runs the full pipeline for each audio file: estimate a timeline from
the authored script, recognize speech, write word timestamp logs, and
align the timeline against the recognized words. Without arguments, every
dialogue audio file in the configured audio directory is processed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseSkipSteps(skip)
			if err != nil {
				return err
			}

			processor, closeJournal, err := ctx.newProcessor()
			if err != nil {
				return err
			}
			defer closeJournal()

			var results []*workflow.Result
			if len(args) == 0 {
				results, err = processor.ProcessDirectory(cmd.Context(), opts)
			} else {
				results, err = processFiles(cmd, processor, args, opts)
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, results)
			}
			out := cmd.OutOrStdout()
			for _, result := range results {
				fmt.Fprintf(out, "%s: %d phrases, %d words -> %s\n",
					result.DialogueID, result.PhraseCount, result.WordCount, result.Document)
			}
			if len(results) == 0 {
				fmt.Fprintln(out, "Nothing to process")
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&skip, "skip", nil, "Pipeline steps to leave out: auto, adjust")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit results as JSON")
	return cmd
}

func parseSkipSteps(steps []string) (workflow.ProcessOptions, error) {
	var opts workflow.ProcessOptions
	for _, step := range steps {
		switch step {
		case "auto":
			opts.SkipAuto = true
		case "adjust":
			opts.SkipAdjust = true
		default:
			return opts, fmt.Errorf("unknown skip step %q (valid: auto, adjust)", step)
		}
	}
	return opts, nil
}

func processFiles(cmd *cobra.Command, processor *workflow.Processor, args []string, opts workflow.ProcessOptions) ([]*workflow.Result, error) {
	var results []*workflow.Result
	for _, arg := range args {
		path, err := config.ExpandPath(arg)
		if err != nil {
			return nil, err
		}
		result, err := processor.ProcessAudio(cmd.Context(), path, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", arg, err)
		}
		results = append(results, result)
	}
	return results, nil
}
