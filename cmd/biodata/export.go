package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/biodata-intake/internal/export"
)

var (
	exportOut   string
	exportLimit int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export accepted profiles to an XLSX workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		svc := export.NewService(a.store.Profiles, a.logger)
		b, err := svc.ExportProfilesXLSX(ctx, exportLimit)
		if err != nil {
			return err
		}
		if err := os.WriteFile(exportOut, b, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", exportOut, err)
		}
		fmt.Printf("wrote %s (%d bytes)\n", exportOut, len(b))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "profiles.xlsx", "output file path")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "max profiles to export (0 = all)")
	rootCmd.AddCommand(exportCmd)
}
