package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"licmatch/internal/textdata"
)

func newCompareCommand() *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:         "compare <a> <b>",
		Short:       "Score the similarity of two files",
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			texts := make([]*textdata.TextData, 0, 2)
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				texts = append(texts, textdata.FromBytes(data))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Score: %.4f\n", texts[0].MatchScore(texts[1]))
			if !showDiff {
				return nil
			}

			diff, err := texts[0].Diff(texts[1])
			if err != nil {
				return fmt.Errorf("diff: %w", err)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, diff)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showDiff, "diff", false, "Show a word diff of the normalized texts")
	return cmd
}
