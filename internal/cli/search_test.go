package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalemusser/vethub/internal/app/store/queries/resourcesearch"
	"github.com/dalemusser/vethub/internal/app/system/normalize"
	"github.com/dalemusser/vethub/internal/domain/models"
)

func TestSearchCmd_Flags(t *testing.T) {
	assert.Equal(t, "search [term]", searchCmd.Use)

	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "30", flag.DefValue)

	for _, name := range []string{"category", "state", "type", "min-rating", "tags", "sort", "page", "session", "json"} {
		assert.NotNil(t, searchCmd.Flags().Lookup(name), "flag %q should exist", name)
	}
}

func TestSearchValues_ResolveLikeTheAPI(t *testing.T) {
	searchCategory, searchState, searchMinRating = "Mental Health", "texas", "severe"
	searchTags = []string{"PTSD", "sleep"}
	searchSort, searchPage, searchLimit = "newest", 2, 10
	t.Cleanup(func() {
		searchCategory, searchState, searchMinRating = "", "", ""
		searchTags = nil
		searchSort, searchPage, searchLimit = "relevance", 1, 30
	})

	f := normalize.Filter(searchValues([]string{"counseling"}))
	assert.Equal(t, "counseling", f.SearchTerm)
	assert.Equal(t, "Mental Health", f.Category)
	assert.Equal(t, "TX", f.State)
	assert.Equal(t, models.SeverityThresholds[models.SeveritySevere], f.MinRating)
	assert.Equal(t, []string{"PTSD", "sleep"}, f.Tags)
	assert.Equal(t, models.SortDate, f.SortBy)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 10, f.Limit)
}

func TestSearchCmd_Table(t *testing.T) {
	setupTestServices(t, &fakeDirectory{resources: []models.Resource{
		{ID: "r1", Title: "Vet Center", Rating: 4.5, Categories: []string{"Mental Health"}, ProviderCategory: models.ProviderVA},
	}})

	out, err := execute(t, "search", "ptsd")
	require.NoError(t, err)
	assert.Contains(t, out, "Results (page 1 of 1, 1 total):")
	assert.Contains(t, out, "Vet Center (4.5) r1")
}

func TestSearchCmd_JSON(t *testing.T) {
	setupTestServices(t, &fakeDirectory{resources: []models.Resource{{ID: "r1", Title: "Vet Center"}}})

	out, err := execute(t, "search", "--json")
	require.NoError(t, err)

	var res resourcesearch.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, int64(1), res.Total)
	require.Len(t, res.Resources, 1)
	assert.Equal(t, "r1", res.Resources[0].ID)
}

func TestSearchCmd_NoResults(t *testing.T) {
	setupTestServices(t, &fakeDirectory{})

	out, err := execute(t, "search", "nothing")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_RejectsTwoArgs(t *testing.T) {
	setupTestServices(t, &fakeDirectory{})

	_, err := execute(t, "search", "a", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts at most 1 arg(s)")
}

func TestSearchCmd_File(t *testing.T) {
	setupTestServices(t, &fakeDirectory{})
	directory = nil

	path := writeSeed(t, "seed.json", jsonSeed)
	out, err := execute(t, "search", "--file", path, "--state", "colorado")
	require.NoError(t, err)
	assert.Contains(t, out, "Results (page 1 of 1, 1 total):")
	assert.Contains(t, out, "B (0.0) b")
	assert.NotContains(t, out, "A (3.0) a")
}

func TestSearchCmd_FileJSONPaging(t *testing.T) {
	setupTestServices(t, &fakeDirectory{})
	directory = nil

	path := writeSeed(t, "seed.toml", tomlSeed)
	out, err := execute(t, "search", "--file", path, "--json", "--sort", "name", "--limit", "1", "--page", "2")
	require.NoError(t, err)

	var res resourcesearch.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, int64(2), res.Total)
	assert.Equal(t, 2, res.TotalPages)
	require.Len(t, res.Resources, 1)
	assert.Equal(t, "va-1", res.Resources[0].ID)
}

func TestSearchCmd_FileMissing(t *testing.T) {
	setupTestServices(t, &fakeDirectory{})

	_, err := execute(t, "search", "--file", "does-not-exist.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read seed file")
}
