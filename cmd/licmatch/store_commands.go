package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"licmatch/internal/logging"
	"licmatch/internal/spdx"
	"licmatch/internal/store"
)

func newStoreCommand(ctx *commandContext) *cobra.Command {
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Manage the license catalog",
	}

	storeCmd.AddCommand(newStoreBuildCommand(ctx))
	storeCmd.AddCommand(newStoreListCommand(ctx))

	return storeCmd
}

func newStoreBuildCommand(ctx *commandContext) *cobra.Command {
	var spdxDir string
	var includeDeprecated bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Rebuild the license catalog from SPDX license-list-data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir := strings.TrimSpace(spdxDir)
			if dir == "" {
				dir = cfg.Paths.SPDXDir
			}
			if dir == "" {
				return fmt.Errorf("no SPDX directory: set paths.spdx_dir or pass --spdx-dir")
			}

			release, err := store.Lock(cfg.LockPath())
			if err != nil {
				return err
			}
			defer func() { _ = release() }()

			runCtx := ctx.commandCtx(cmd)
			logger := ctx.loggerFor(cmd)
			started := time.Now()

			catalog := store.New(store.WithWorkers(cfg.Scan.Workers), store.WithLogger(logger))
			summary, err := spdx.LoadDir(runCtx, dir, catalog, spdx.Options{
				IncludeDeprecated: includeDeprecated || cfg.Scan.IncludeDeprecated,
				Logger:            logging.WithContext(runCtx, logger),
			})
			if err != nil {
				return fmt.Errorf("load SPDX data: %w", err)
			}

			db, err := store.Open(cfg.Paths.StorePath)
			if err != nil {
				return fmt.Errorf("open license store: %w", err)
			}
			defer db.Close()
			if err := db.Save(runCtx, catalog); err != nil {
				return fmt.Errorf("save license store: %w", err)
			}

			logging.WithContext(runCtx, logging.NewComponentLogger(logger, "store")).Info("license store rebuilt",
				slog.String("path", db.Path()),
				slog.Int("licenses", summary.Licenses),
				slog.Duration("elapsed", time.Since(started)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Stored %d licenses and %d headers in %s (%d skipped, %s)\n",
				summary.Licenses, summary.Headers, db.Path(), summary.Skipped,
				time.Since(started).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVar(&spdxDir, "spdx-dir", "", "Checkout of spdx/license-list-data (overrides paths.spdx_dir)")
	cmd.Flags().BoolVar(&includeDeprecated, "include-deprecated", false, "Keep deprecated SPDX identifiers")
	return cmd
}

type storeListEntry struct {
	Name        string    `json:"name"`
	Kind        string    `json:"kind"`
	Grams       int       `json:"grams"`
	Bytes       int       `json:"bytes"`
	ContentHash string    `json:"content_hash"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newStoreListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the licenses in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			db, err := store.Open(cfg.Paths.StorePath)
			if err != nil {
				return fmt.Errorf("open license store: %w", err)
			}
			defer db.Close()

			entries, err := db.Entries(ctx.commandCtx(cmd))
			if err != nil {
				return err
			}

			if jsonOutput {
				out := make([]storeListEntry, 0, len(entries))
				for _, e := range entries {
					out = append(out, storeListEntry{
						Name:        e.Name,
						Kind:        e.LicenseType.Key(),
						Grams:       e.GramCount,
						Bytes:       e.BlobSize,
						ContentHash: e.ContentHash,
						UpdatedAt:   e.UpdatedAt,
					})
				}
				return writeJSON(cmd, out)
			}

			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "License store %s is empty\n", db.Path())
				return nil
			}

			var total uint64
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				total += uint64(e.BlobSize)
				rows = append(rows, []string{
					e.Name,
					e.LicenseType.Key(),
					strconv.Itoa(e.GramCount),
					humanize.Bytes(uint64(e.BlobSize)),
					shortHash(e.ContentHash),
					humanize.Time(e.UpdatedAt),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d entries, %s)\n", db.Path(), len(entries), humanize.Bytes(total))
			fmt.Fprintln(cmd.OutOrStdout(), renderTable("",
				[]string{"License", "Kind", "Grams", "Size", "Hash", "Updated"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Write entries as JSON")
	return cmd
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
