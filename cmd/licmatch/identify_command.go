package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"licmatch/internal/config"
	"licmatch/internal/logging"
	"licmatch/internal/scan"
	"licmatch/internal/textdata"
)

type identifyFlags struct {
	jsonOutput bool
	mode       string
	threshold  float64
	noOptimize bool
}

type identifyOutput struct {
	Path   string       `json:"path"`
	Result *scan.Result `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
}

func newIdentifyCommand(ctx *commandContext) *cobra.Command {
	var flags identifyFlags

	cmd := &cobra.Command{
		Use:   "identify <file>...",
		Short: "Identify the licenses in one or more files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			scanCfg, err := flags.apply(cfg.Scan)
			if err != nil {
				return err
			}

			runCtx := ctx.commandCtx(cmd)
			logger := ctx.loggerFor(cmd)
			s, err := ctx.loadStore(runCtx, logger)
			if err != nil {
				return err
			}
			strategy := scan.New(s, scanCfg, logger)

			outputs := make([]identifyOutput, 0, len(args))
			failed := 0
			for _, path := range args {
				fileCtx := logging.WithFile(runCtx, path)
				output := identifyOutput{Path: path}

				data, err := os.ReadFile(path)
				if err == nil {
					var result scan.Result
					if result, err = strategy.Scan(fileCtx, textdata.FromBytes(data)); err == nil {
						output.Result = &result
					}
				}
				if err != nil {
					failed++
					output.Error = err.Error()
					logging.WithContext(fileCtx, logger).Warn("identify failed", logging.Error(err))
				}
				outputs = append(outputs, output)
			}

			if flags.jsonOutput {
				if err := writeJSON(cmd, outputs); err != nil {
					return err
				}
			} else {
				colorize := shouldColorize(cmd.OutOrStdout())
				for _, output := range outputs {
					fmt.Fprintln(cmd.OutOrStdout(), renderIdentifyOutput(output, scanCfg.ConfidenceThreshold, colorize))
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) could not be identified", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Write results as JSON")
	cmd.Flags().StringVar(&flags.mode, "mode", "", "Override scan.mode (elimination or top_down)")
	cmd.Flags().Float64Var(&flags.threshold, "threshold", 0, "Override scan.confidence_threshold")
	cmd.Flags().BoolVar(&flags.noOptimize, "no-optimize", false, "Do not narrow matches to line ranges")
	return cmd
}

// apply layers command line overrides on top of the configured scan settings.
func (f identifyFlags) apply(scanCfg config.Scan) (config.Scan, error) {
	if mode := strings.TrimSpace(f.mode); mode != "" {
		scanCfg.Mode = strings.ReplaceAll(strings.ToLower(mode), "-", "_")
	}
	if f.threshold != 0 {
		scanCfg.ConfidenceThreshold = f.threshold
		scanCfg.ShallowLimit = max(scanCfg.ShallowLimit, f.threshold)
	}
	if f.noOptimize {
		scanCfg.Optimize = false
	}

	check := config.Default()
	check.Scan = scanCfg
	if err := check.Validate(); err != nil {
		return config.Scan{}, err
	}
	return scanCfg, nil
}

func renderIdentifyOutput(output identifyOutput, threshold float64, colorize bool) string {
	if output.Error != "" {
		return fmt.Sprintf("%s: error: %s", output.Path, output.Error)
	}
	result := output.Result

	var rows [][]string
	if result.License != nil {
		rows = append(rows, []string{
			result.License.Name,
			result.License.Kind.String(),
			formatScore(result.Score, threshold, colorize),
			"whole file",
		})
	}
	for _, c := range result.Containing {
		rows = append(rows, []string{
			c.License.Name,
			c.License.Kind.String(),
			formatScore(c.Score, threshold, colorize),
			formatLineRange(c.LineRange),
		})
	}
	if len(rows) == 0 {
		return fmt.Sprintf("%s: no license found (best score %s)", output.Path, formatScore(result.Score, threshold, colorize))
	}

	return renderTable(output.Path,
		[]string{"License", "Kind", "Score", "Lines"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
	)
}

// formatLineRange renders a half-open range as 1-based inclusive line numbers.
func formatLineRange(r scan.LineRange) string {
	if r.Len() <= 0 {
		return "-"
	}
	if r.Len() == 1 {
		return fmt.Sprintf("%d", r.Start+1)
	}
	return fmt.Sprintf("%d-%d", r.Start+1, r.End)
}
