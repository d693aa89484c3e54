package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"licmatch/internal/logging"
	"licmatch/internal/scan"
	"licmatch/internal/textdata"
)

var errNoLicense = errors.New("no license found")

func newCropCommand(ctx *commandContext) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "crop <file>",
		Short: "Print only the lines of a file that hold its best license match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			runCtx := logging.WithFile(ctx.commandCtx(cmd), path)
			logger := ctx.loggerFor(cmd)
			s, err := ctx.loadStore(runCtx, logger)
			if err != nil {
				return err
			}

			// Cropping always needs line ranges, whatever the configured mode.
			scanCfg := cfg.Scan
			scanCfg.Optimize = true
			scanCfg.ShallowLimit = 1
			result, err := scan.New(s, scanCfg, logger).Scan(runCtx, textdata.FromBytes(data))
			if err != nil {
				return err
			}

			lines := strings.Split(string(data), "\n")
			best, ok := result.Region(len(lines))
			if !ok {
				return fmt.Errorf("%s: %w (best score %.4f)", path, errNoLicense, result.Score)
			}

			out := cmd.OutOrStdout()
			if !quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s (%s) score %.4f lines %s\n",
					best.License.Name, best.License.Kind, best.Score, formatLineRange(best.LineRange))
			}
			for _, line := range lines[best.LineRange.Start:best.LineRange.End] {
				fmt.Fprintln(out, strings.TrimRight(line, "\r"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the match summary to stderr")
	return cmd
}
