package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lingopipe/internal/dialogue"
)

func newStripPunctCommand(ctx *commandContext) *cobra.Command {
	var dirFlag string

	cmd := &cobra.Command{
		Use:   "strip-punct <dialogue-id>...",
		Short: "Write punctuation-free variants of dialogue documents",
		Long: `Removes sentence punctuation from each document's phrase texts while
preserving target-language markup and parenthetical asides, writing the
result next to the original with a _no_punctuation suffix.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir := strings.TrimSpace(dirFlag)
			if dir == "" {
				dir = cfg.Paths.AudioDir
			}

			processor, closeJournal, err := ctx.newProcessor()
			if err != nil {
				return err
			}
			defer closeJournal()

			out := cmd.OutOrStdout()
			for _, arg := range args {
				id := arg
				if extracted, ok := dialogue.ExtractID(filepath.Base(arg)); ok {
					id = extracted
				}

				path, modified, err := processor.StripPunctuation(cmd.Context(), dir, id)
				if err != nil {
					return fmt.Errorf("%s: %w", id, err)
				}
				if modified {
					fmt.Fprintf(out, "%s -> %s\n", id, filepath.Base(path))
				} else {
					fmt.Fprintf(out, "%s: no punctuation to remove\n", id)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dirFlag, "dir", "", "Directory holding documents (defaults to paths.audio_dir)")
	return cmd
}
