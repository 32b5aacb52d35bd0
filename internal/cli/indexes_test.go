package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalemusser/vethub/internal/domain/models"
)

func TestIndexesCmd_RunsSchema(t *testing.T) {
	setupTestServices(t, &fakeDirectory{})
	var ran bool
	ensureSchema = func(ctx context.Context) error {
		ran = true
		return nil
	}

	out, err := execute(t, "indexes")
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Contains(t, out, "up to date")
}

func TestIndexesCmd_PropagatesError(t *testing.T) {
	setupTestServices(t, &fakeDirectory{})
	ensureSchema = func(ctx context.Context) error { return errors.New("boom") }

	_, err := execute(t, "indexes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRequestsCmd_Lists(t *testing.T) {
	setupTestServices(t, &fakeDirectory{})
	requests = &fakeRequests{list: []models.InfoRequest{{
		Reference: "ref-1", ResourceID: "r1", Name: "Pat", Email: "pat@example.com",
		CreatedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}}}

	out, err := execute(t, "requests", "r1")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-03-01 09:30  ref-1  Pat <pat@example.com>")
}

func TestRequestsCmd_Empty(t *testing.T) {
	setupTestServices(t, &fakeDirectory{})

	out, err := execute(t, "requests", "r1")
	require.NoError(t, err)
	assert.Contains(t, out, "No info requests.")
	assert.Contains(t, out, "0 requests across the directory in the last 24h0m0s.")
}

func TestRequestsCmd_CountsSince(t *testing.T) {
	setupTestServices(t, &fakeDirectory{})
	fake := &fakeRequests{count: 7}
	requests = fake

	before := time.Now()
	out, err := execute(t, "requests", "r1", "--since", "2h")
	require.NoError(t, err)
	assert.Contains(t, out, "7 requests across the directory in the last 2h0m0s.")
	assert.WithinDuration(t, before.Add(-2*time.Hour), fake.gotSince, time.Minute)
}

func TestRequestCmd_Show(t *testing.T) {
	setupTestServices(t, &fakeDirectory{})
	requests = &fakeRequests{list: []models.InfoRequest{{
		Reference: "ref-1", ResourceID: "r1", Name: "Pat", Email: "pat@example.com",
		Message:   "Do you take walk-ins?",
		CreatedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}}}

	out, err := execute(t, "request", "ref-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Resource:  r1")
	assert.Contains(t, out, "From:      Pat <pat@example.com>")
	assert.Contains(t, out, "Do you take walk-ins?")
	assert.NotContains(t, out, "Phone:")

	_, err = execute(t, "request", "ref-2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no info request with reference "ref-2"`)
}
