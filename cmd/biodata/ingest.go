package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/biodata-intake/internal/ingest"
)

var (
	ingestSkipHidden bool
	ingestProcess    bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <directory>",
	Short: "Ingest a directory of biodata text files",
	Long: `Ingest walks a directory, stores every .txt file as a pending
intake (deduplicating by content hash), and optionally runs the
extraction pipeline on each new intake.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		ing := ingest.NewFSIngestor(a.store.Intakes, a.logger)
		results, stats, err := ing.IngestDirectory(ctx, args[0], ingestSkipHidden)
		if err != nil {
			return err
		}

		for _, r := range results {
			switch {
			case r.Err != "":
				fmt.Fprintf(os.Stderr, "FAIL  %s: %s\n", r.SourcePath, r.Err)
			case r.Deduplicated:
				fmt.Printf("DUP   %s -> %s\n", r.SourcePath, r.IntakeID)
			default:
				fmt.Printf("OK    %s -> %s\n", r.SourcePath, r.IntakeID)
			}
		}
		fmt.Printf("scanned=%d matched=%d succeeded=%d deduplicated=%d failed=%d\n",
			stats.Scanned, stats.Matched, stats.Succeeded, stats.Deduplicated, stats.Failed)

		if !ingestProcess {
			return nil
		}
		for _, r := range results {
			if r.Err != "" || r.Deduplicated {
				continue
			}
			id, err := parseUUID(r.IntakeID)
			if err != nil {
				continue
			}
			if _, err := a.service.Process(ctx, id); err != nil {
				fmt.Fprintf(os.Stderr, "process %s: %v\n", r.IntakeID, err)
			}
		}
		return nil
	},
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestSkipHidden, "skip-hidden", true, "skip hidden files and directories")
	ingestCmd.Flags().BoolVar(&ingestProcess, "process", false, "run extraction on each newly ingested intake")
	rootCmd.AddCommand(ingestCmd)
}
