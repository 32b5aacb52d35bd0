package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dalemusser/vethub/internal/app/store/queries/resourcesearch"
	"github.com/dalemusser/vethub/internal/app/system/csvutil"
	"github.com/dalemusser/vethub/internal/app/system/normalize"
	"github.com/dalemusser/vethub/internal/domain/models"
)

var (
	searchCategory      string
	searchState         string
	searchType          string
	searchVeteranType   string
	searchServiceBranch string
	searchMinRating     string
	searchTags          []string
	searchSort          string
	searchPage          int
	searchLimit         int
	searchSession       string
	searchJSON          bool
	searchFile          string
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search the resource directory",
	Long: `Runs a directory search with the same filtering, sorting and paging as
the /api/resources endpoint. The term is optional; flags narrow the results.

With --file the search runs against a seed file instead of the database,
which is useful for checking a seed before importing it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringVar(&searchCategory, "category", "", "category name")
	f.StringVar(&searchState, "state", "", "state name or code")
	f.StringVar(&searchType, "type", "", "resource type (va, ngo, state, federal)")
	f.StringVar(&searchVeteranType, "veteran-type", "", "veteran type")
	f.StringVar(&searchServiceBranch, "branch", "", "service branch")
	f.StringVar(&searchMinRating, "min-rating", "", "minimum rating or severity name")
	f.StringSliceVar(&searchTags, "tags", nil, "tags or symptoms (comma separated)")
	f.StringVar(&searchSort, "sort", "relevance", "relevance, rating, name or date")
	f.IntVar(&searchPage, "page", 1, "page number")
	f.IntVarP(&searchLimit, "limit", "n", 30, "results per page")
	f.StringVar(&searchSession, "session", "", "session id for the stable secondary ordering")
	f.BoolVar(&searchJSON, "json", false, "output results as JSON")
	f.StringVar(&searchFile, "file", "", "search a TOML, JSON or CSV seed file instead of the database")
	rootCmd.AddCommand(searchCmd)
}

// searchValues maps the flags onto the request parameters the API accepts.
func searchValues(args []string) url.Values {
	v := url.Values{}
	if len(args) == 1 {
		v.Set("searchTerm", args[0])
	}
	v.Set("category", searchCategory)
	v.Set("state", searchState)
	v.Set("resourceType", searchType)
	v.Set("veteranType", searchVeteranType)
	v.Set("serviceBranch", searchServiceBranch)
	v.Set("minRating", searchMinRating)
	if len(searchTags) > 0 {
		v.Set("tags", strings.Join(searchTags, ","))
	}
	v.Set("sortBy", searchSort)
	v.Set("page", strconv.Itoa(searchPage))
	v.Set("limit", strconv.Itoa(searchLimit))
	v.Set("sessionId", searchSession)
	return v
}

func runSearch(cmd *cobra.Command, args []string) error {
	f := normalize.Filter(searchValues(args))

	var res resourcesearch.Result
	if searchFile != "" {
		records, err := loadSeedFile(searchFile)
		if err != nil {
			return err
		}
		res = resourcesearch.RunLocal(records, f)
	} else {
		if directory == nil {
			return errNotConfigured
		}
		ctx, cancel := commandContext()
		defer cancel()

		var err error
		res, err = resourcesearch.Run(ctx, directory, f)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
	}

	if searchJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}
	return outputSearchTable(cmd, res)
}

// loadSeedFile parses a seed file and returns its normalized records that
// have both an id and a title.
func loadSeedFile(path string) ([]models.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	if len(data) > csvutil.MaxUploadSize {
		return nil, fmt.Errorf("seed file is larger than %d bytes", csvutil.MaxUploadSize)
	}
	records, _, err := parseSeed(path, data)
	if err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	out := make([]models.Resource, 0, len(records))
	for _, r := range records {
		if r = normalize.Resource(r); r.ID != "" && r.Title != "" {
			out = append(out, r)
		}
	}
	return out, nil
}

func outputSearchTable(cmd *cobra.Command, res resourcesearch.Result) error {
	if len(res.Resources) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("Results (page %d of %d, %d total):\n\n", res.Page, res.TotalPages, res.Total)
	for i, r := range res.Resources {
		cmd.Printf("  [%d] %s (%.1f) %s\n", i+1, r.Title, r.Rating, r.ID)
		if len(r.Categories) > 0 {
			cmd.Printf("      %s\n", strings.Join(r.Categories, ", "))
		}
		if st := r.StateCode(); st != "" || r.ProviderCategory != "" {
			cmd.Printf("      %s %s\n", r.ProviderCategory, st)
		}
	}
	return nil
}
