package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dalemusser/vethub/internal/app/features/recommend"
	"github.com/dalemusser/vethub/internal/app/system/normalize"
	"github.com/dalemusser/vethub/internal/app/system/ranking"
	"github.com/dalemusser/vethub/internal/domain/models"
)

var (
	recCategory string
	recSymptoms []string
	recSeverity string
	recHash     string
	recJSON     bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank wizard recommendations for a selection",
	Long: `Loads the local candidates for a wizard category and prints them in
the order the symptom wizard would show them. Severe and crisis selections
lead with VA providers; other selections lead with NGO providers.`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

func init() {
	f := recommendCmd.Flags()
	f.StringVarP(&recCategory, "category", "c", "", "wizard category id (required)")
	f.StringSliceVarP(&recSymptoms, "symptoms", "s", nil, "symptom ids (comma separated)")
	f.StringVar(&recSeverity, "severity", "", "mild, moderate, severe or crisis")
	f.StringVar(&recHash, "hash", "", "selection hash that seeds the shuffle")
	f.BoolVar(&recJSON, "json", false, "output results as JSON")
	_ = recommendCmd.MarkFlagRequired("category")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	sel := normalize.Selection(recCategory, recSymptoms, recSeverity, recHash)
	cat, ok := models.LookupWizardCategory(sel.CategoryID)
	if !ok {
		return fmt.Errorf("unknown category %q", recCategory)
	}
	if directory == nil {
		return errNotConfigured
	}
	ctx, cancel := commandContext()
	defer cancel()

	candidates, err := directory.FindForCategory(ctx, cat, recommend.DefaultCandidateLimit)
	if err != nil {
		return fmt.Errorf("load candidates: %w", err)
	}
	ranked := ranking.Rank(candidates, sel)

	if recJSON {
		data, err := json.MarshalIndent(ranked, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(ranked) == 0 {
		cmd.Println("No recommendations for this selection.")
		return nil
	}
	cmd.Printf("Recommendations for %s:\n\n", cat.ID)
	for i, r := range ranked {
		cmd.Printf("  [%d] %-8s %s (%.1f)\n", i+1, providerLabel(r), r.Title, r.Rating)
	}
	return nil
}

func providerLabel(r models.Resource) string {
	pc := r.ProviderCategory
	if !pc.Valid() {
		pc = normalize.ProviderCategory(r.ResourceType, r.Organization)
	}
	return string(pc)
}
