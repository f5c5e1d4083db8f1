package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/biodata-intake/constants"
)

var acceptFieldsFile string

var acceptCmd = &cobra.Command{
	Use:   "accept <intake-id>",
	Short: "Accept reviewer-corrected fields and store the profile",
	Long: `Accept reads the corrected field record as JSON (from --fields or
stdin), maps it to the final profile schema, stores the profile, and
appends the correction to the training example log.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseUUID(args[0])
		if err != nil {
			return fmt.Errorf("intake-id must be a UUID: %w", err)
		}

		var raw []byte
		if acceptFieldsFile != "" {
			raw, err = os.ReadFile(acceptFieldsFile)
		} else {
			raw, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return fmt.Errorf("read fields: %w", err)
		}

		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return fmt.Errorf("fields must be a JSON object of strings: %w", err)
		}
		for k := range m {
			if !constants.IsFieldKey(k) {
				return fmt.Errorf("unknown field key %q", k)
			}
		}

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		stored, err := a.service.Accept(ctx, id, constants.FieldsFromMap(m))
		if err != nil {
			return err
		}
		fmt.Printf("profile %s stored\n", stored.ID)
		return nil
	},
}

func parseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

func init() {
	acceptCmd.Flags().StringVar(&acceptFieldsFile, "fields", "", "path to corrected fields JSON (default stdin)")
	rootCmd.AddCommand(acceptCmd)
}
