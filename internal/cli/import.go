package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	resourcestore "github.com/dalemusser/vethub/internal/app/store/resources"
	"github.com/dalemusser/vethub/internal/app/system/csvutil"
	"github.com/dalemusser/vethub/internal/app/system/normalize"
	"github.com/dalemusser/vethub/internal/domain/models"
)

var importDryRun bool

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import resources from a seed file",
	Long: `Reads a TOML, JSON or CSV seed file, normalizes every record and upserts
it into the directory. A JSON seed is either an array of resources or an
object with a "resources" array; a TOML seed uses [[resources]] tables. Keys
use the same names as the API (reviewCount, resourceType, contact.phone, ...)
and the legacy single-value fields (category, phone, state) are accepted.
A CSV seed starts with a header row naming its columns (id, title,
categories, tags, rating, ...); list cells separate values with ';'.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "parse and normalize without writing")
	rootCmd.AddCommand(importCmd)
}

// importSummary counts the outcome of an import.
type importSummary struct {
	Created int
	Updated int
	Skipped []string
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	if len(data) > csvutil.MaxUploadSize {
		return fmt.Errorf("seed file is larger than %d bytes", csvutil.MaxUploadSize)
	}
	records, rejected, err := parseSeed(args[0], data)
	if err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	for _, r := range rejected {
		cmd.Printf("  rejected %s\n", r)
	}

	if importDryRun {
		valid := 0
		for _, r := range records {
			if r = normalize.Resource(r); r.ID != "" && r.Title != "" {
				valid++
			}
		}
		cmd.Printf("Parsed %d records (%d valid). Nothing written.\n", len(records), valid)
		return nil
	}

	if directory == nil {
		return errNotConfigured
	}
	ctx, cancel := commandContext()
	defer cancel()

	var sum importSummary
	for i, r := range records {
		created, err := directory.Upsert(ctx, r)
		switch {
		case errors.Is(err, resourcestore.ErrInvalid):
			sum.Skipped = append(sum.Skipped, fmt.Sprintf("record %d (%q)", i+1, strings.TrimSpace(r.ID)))
		case err != nil:
			return fmt.Errorf("upsert record %d: %w", i+1, err)
		case created:
			sum.Created++
		default:
			sum.Updated++
		}
	}

	cmd.Printf("Imported %d records: %d created, %d updated, %d skipped.\n",
		sum.Created+sum.Updated, sum.Created, sum.Updated, len(sum.Skipped))
	for _, s := range sum.Skipped {
		cmd.Printf("  skipped %s: missing id or title\n", s)
	}

	if pageCache != nil && sum.Created+sum.Updated > 0 {
		n, err := pageCache.Invalidate(ctx)
		if err != nil {
			cmd.PrintErrf("warning: cache invalidation failed: %v\n", err)
		} else {
			cmd.Printf("Invalidated %d cached pages.\n", n)
		}
	}
	return nil
}

// parseSeed decodes a seed file by extension. TOML is converted to JSON so
// both formats share the resource JSON field names. Rejected CSV rows are
// returned as descriptions.
func parseSeed(name string, data []byte) ([]models.Resource, []string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, nil, err
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, nil, err
		}
		records, err := parseSeedJSON(converted)
		return records, nil, err
	case ".json", "":
		records, err := parseSeedJSON(data)
		return records, nil, err
	case ".csv":
		res, err := csvutil.ParseResourceCSV(bytes.NewReader(data), csvutil.DefaultParseOptions())
		if err != nil {
			return nil, nil, err
		}
		rejected := make([]string, 0, len(res.Errors))
		for _, e := range res.Errors {
			rejected = append(rejected, e.String())
		}
		return res.Rows, rejected, nil
	default:
		return nil, nil, fmt.Errorf("unsupported seed format %q (want .toml, .json or .csv)", filepath.Ext(name))
	}
}

func parseSeedJSON(data []byte) ([]models.Resource, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []models.Resource
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var doc struct {
		Resources []models.Resource `json:"resources"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Resources, nil
}
