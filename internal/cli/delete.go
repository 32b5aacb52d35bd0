package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [resource-id]",
	Short: "Remove a resource from the directory",
	Long: `Deletes one resource by id and drops the cached result pages so the
record stops appearing in searches right away.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if directory == nil {
		return errNotConfigured
	}
	id := strings.TrimSpace(args[0])
	if id == "" {
		return fmt.Errorf("resource id is required")
	}
	ctx, cancel := commandContext()
	defer cancel()

	n, err := directory.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("resource %q not found", id)
	}
	cmd.Printf("Deleted %s.\n", id)

	if pageCache != nil {
		if count, err := pageCache.Invalidate(ctx); err != nil {
			cmd.PrintErrf("warning: cache invalidation failed: %v\n", err)
		} else {
			cmd.Printf("Invalidated %d cached pages.\n", count)
		}
	}
	return nil
}
