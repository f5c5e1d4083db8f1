package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var parseIntakeID string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse biodata text into a review preview",
	Long: `Parse reads biodata text from a file (or stdin when no file is
given), runs the extraction pipeline, and prints the review preview as
JSON. With --intake, it processes a previously submitted intake row
instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if parseIntakeID != "" {
			id, err := uuid.Parse(parseIntakeID)
			if err != nil {
				return fmt.Errorf("--intake must be a UUID: %w", err)
			}
			p, err := a.service.Process(ctx, id)
			if err != nil {
				return err
			}
			return printJSON(p)
		}

		var text []byte
		if len(args) == 1 {
			text, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
		} else {
			text, err = io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
		}

		p, err := a.service.ProcessText(ctx, string(text))
		if err != nil {
			return err
		}
		return printJSON(p)
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	parseCmd.Flags().StringVar(&parseIntakeID, "intake", "", "process a stored intake by ID")
	rootCmd.AddCommand(parseCmd)
}
