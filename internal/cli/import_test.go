package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dalemusser/vethub/internal/app/system/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlSeed = `
[[resources]]
id = "va-1"
title = "Vet Center Counseling"
categories = ["Mental Health"]
tags = ["ptsd"]
rating = 4.5
resourceType = "va"

[resources.location]
state = "texas"

[[resources]]
id = "ngo-1"
title = "Team Rubicon"
category = "Community, Employment"
organization = "Team Rubicon Foundation"
phone = "555-0100"

[[resources]]
title = "No id"
`

const jsonSeed = `[
  {"id": "a", "title": "A", "categories": ["Housing"], "rating": 3},
  {"id": "b", "title": "B", "state": "CO"}
]`

func writeSeed(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestImportCmd_Use(t *testing.T) {
	assert.Equal(t, "import [file]", importCmd.Use)
	flag := importCmd.Flags().Lookup("dry-run")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestParseSeed_TOML(t *testing.T) {
	records, _, err := parseSeed("seed.toml", []byte(tomlSeed))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "va-1", records[0].ID)
	assert.Equal(t, 4.5, records[0].Rating)
	require.NotNil(t, records[0].Location)
	assert.Equal(t, "texas", records[0].Location.State)

	assert.Equal(t, "Community, Employment", records[1].LegacyCategory)
	assert.Equal(t, "555-0100", records[1].LegacyPhone)
	assert.Empty(t, records[2].ID)
}

func TestParseSeed_JSONShapes(t *testing.T) {
	list, _, err := parseSeed("seed.json", []byte(jsonSeed))
	require.NoError(t, err)
	assert.Len(t, list, 2)

	wrapped, _, err := parseSeed("seed.json", []byte(`{"resources": `+jsonSeed+`}`))
	require.NoError(t, err)
	assert.Equal(t, list, wrapped)
}

func TestParseSeed_VeteranTypeShapes(t *testing.T) {
	jsonBody := `[
  {"id": "a", "title": "A", "veteranType": "combat"},
  {"id": "b", "title": "B", "veteranType": ["combat", "guard"]}
]`
	tomlBody := `
[[resources]]
id = "a"
title = "A"
veteranType = "combat"

[[resources]]
id = "b"
title = "B"
veteranType = ["combat", "guard"]
`
	for name, body := range map[string]string{"seed.json": jsonBody, "seed.toml": tomlBody} {
		records, _, err := parseSeed(name, []byte(body))
		require.NoError(t, err, name)
		require.Len(t, records, 2, name)

		assert.Equal(t, []string{"combat"}, normalize.Resource(records[0]).VeteranTypes, name)
		assert.Equal(t, []string{"combat", "guard"}, normalize.Resource(records[1]).VeteranTypes, name)
	}
}

func TestParseSeed_RejectsUnknownExtension(t *testing.T) {
	_, _, err := parseSeed("seed.yaml", []byte("resources: []"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported seed format")
}

func TestImportCmd_UpsertsAndInvalidatesCache(t *testing.T) {
	dir := &fakeDirectory{existing: map[string]bool{"ngo-1": true}}
	cache := setupTestServices(t, dir)

	out, err := execute(t, "import", writeSeed(t, "seed.toml", tomlSeed))
	require.NoError(t, err)

	assert.Contains(t, out, "Imported 2 records: 1 created, 1 updated, 1 skipped.")
	assert.Contains(t, out, "missing id or title")
	assert.Contains(t, out, "Invalidated 3 cached pages.")
	assert.Equal(t, 1, cache.calls)

	require.Len(t, dir.upserted, 2)
	assert.Equal(t, "TX", dir.upserted[0].StateCode())
	assert.Equal(t, []string{"Community", "Employment"}, dir.upserted[1].Categories)
}

func TestImportCmd_DryRunWritesNothing(t *testing.T) {
	dir := &fakeDirectory{}
	cache := setupTestServices(t, dir)

	out, err := execute(t, "import", "--dry-run", writeSeed(t, "seed.json", jsonSeed))
	require.NoError(t, err)

	assert.Contains(t, out, "Parsed 2 records (2 valid)")
	assert.Empty(t, dir.upserted)
	assert.Equal(t, 0, cache.calls)
}

func TestImportCmd_MissingFile(t *testing.T) {
	setupTestServices(t, &fakeDirectory{})

	_, err := execute(t, "import", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read seed file")
}

func TestImportCmd_CSV(t *testing.T) {
	dir := &fakeDirectory{}
	setupTestServices(t, dir)

	seed := "id,title,categories,rating,state\nva-1,Vet Center,Mental Health;Crisis Services,4.5,co\n,Missing,Housing,3,\n"
	out, err := execute(t, "import", writeSeed(t, "seed.csv", seed))
	require.NoError(t, err)

	assert.Contains(t, out, "rejected line 3: (no id): missing id")
	assert.Contains(t, out, "Imported 1 records: 1 created, 0 updated, 0 skipped.")
	require.Len(t, dir.upserted, 1)
	assert.Equal(t, []string{"Mental Health", "Crisis Services"}, dir.upserted[0].Categories)
	assert.Equal(t, "CO", dir.upserted[0].StateCode())
}
