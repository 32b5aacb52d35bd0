package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	inforequeststore "github.com/dalemusser/vethub/internal/app/store/inforequests"
)

var (
	requestsLimit int64
	requestsJSON  bool
	requestsSince time.Duration
)

var requestsCmd = &cobra.Command{
	Use:   "requests [resource-id]",
	Short: "List info requests submitted for a resource",
	Args:  cobra.ExactArgs(1),
	RunE:  runRequests,
}

func init() {
	requestsCmd.Flags().Int64VarP(&requestsLimit, "limit", "n", 20, "maximum number of requests")
	requestsCmd.Flags().BoolVar(&requestsJSON, "json", false, "output requests as JSON")
	requestsCmd.Flags().DurationVar(&requestsSince, "since", 24*time.Hour, "window for the directory-wide request count")
	rootCmd.AddCommand(requestsCmd)
}

func runRequests(cmd *cobra.Command, args []string) error {
	if requests == nil {
		return errNotConfigured
	}
	ctx, cancel := commandContext()
	defer cancel()

	list, err := requests.ListForResource(ctx, args[0], requestsLimit)
	if err != nil {
		return fmt.Errorf("list requests: %w", err)
	}

	if requestsJSON {
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal requests: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}
	if len(list) == 0 {
		cmd.Println("No info requests.")
	}
	for _, ir := range list {
		cmd.Printf("  %s  %s  %s <%s>\n", ir.CreatedAt.Format("2006-01-02 15:04"), ir.Reference, ir.Name, ir.Email)
	}

	total, err := requests.CountSince(ctx, time.Now().Add(-requestsSince))
	if err != nil {
		return fmt.Errorf("count requests: %w", err)
	}
	cmd.Printf("%d requests across the directory in the last %s.\n", total, requestsSince)
	return nil
}

var requestCmd = &cobra.Command{
	Use:   "request [reference]",
	Short: "Show one info request by its reference",
	Args:  cobra.ExactArgs(1),
	RunE:  runRequest,
}

func init() {
	rootCmd.AddCommand(requestCmd)
}

func runRequest(cmd *cobra.Command, args []string) error {
	if requests == nil {
		return errNotConfigured
	}
	ctx, cancel := commandContext()
	defer cancel()

	ir, err := requests.GetByReference(ctx, strings.TrimSpace(args[0]))
	if errors.Is(err, inforequeststore.ErrNotFound) {
		return fmt.Errorf("no info request with reference %q", args[0])
	}
	if err != nil {
		return fmt.Errorf("load request: %w", err)
	}

	cmd.Printf("Reference: %s\n", ir.Reference)
	cmd.Printf("Resource:  %s\n", ir.ResourceID)
	cmd.Printf("Submitted: %s\n", ir.CreatedAt.Format("2006-01-02 15:04"))
	cmd.Printf("From:      %s <%s>\n", ir.Name, ir.Email)
	if ir.Phone != "" {
		cmd.Printf("Phone:     %s\n", ir.Phone)
	}
	if ir.Message != "" {
		cmd.Printf("\n%s\n", ir.Message)
	}
	return nil
}
