package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Ensure collection validators and indexes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if ensureSchema == nil {
			return errNotConfigured
		}
		ctx, cancel := commandContext()
		defer cancel()
		if err := ensureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		cmd.Println("Validators and indexes are up to date.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexesCmd)
}
