package remotesearch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/dalemusser/vethub/internal/app/system/normalize"
	"github.com/dalemusser/vethub/internal/domain/models"
	"go.uber.org/zap"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantIDs  int
		unusable bool
	}{
		{"bare array", `[{"id":"1","title":"A"},{"id":"2","title":"B"}]`, 2, false},
		{"wrapped", `{"resources":[{"id":"1","title":"A"}]}`, 1, false},
		{"empty array", `[]`, 0, false},
		{"legacy category string", `[{"id":"1","category":"Mental Health"}]`, 1, false},
		{"records without ids", `[{"title":"A"}]`, 0, true},
		{"missing resources key", `{"results":[]}`, 0, true},
		{"scalar", `"nope"`, 0, true},
		{"empty body", ``, 0, true},
		{"wrong element type", `{"resources":[1,2]}`, 0, true},
		{"undecodable record dropped", `[{"id":"1"},{"id":"2","rating":"high"}]`, 1, false},
		{"veteranType array", `[{"id":"1","veteranType":["combat","reserve"]}]`, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parse([]byte(tt.body))
			if tt.unusable {
				if !errors.Is(err, ErrUnusable) {
					t.Fatalf("err = %v, want ErrUnusable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.wantIDs {
				t.Errorf("got %d records, want %d", len(got), tt.wantIDs)
			}
		})
	}
}

func TestParse_MixedVeteranTypeShapes(t *testing.T) {
	body := `{"resources":[
		{"id":"a","title":"A","veteranType":"combat, reserve"},
		{"id":"b","title":"B","veteranType":["Combat","guard"],"veteranTypes":["guard"]},
		{"id":"c","title":"C","veteranType":null}
	]}`

	got, err := parse([]byte(body))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}

	want := map[string][]string{
		"a": {"combat", "reserve"},
		"b": {"guard", "Combat"},
		"c": {},
	}
	for _, r := range got {
		n := normalize.Resource(r)
		if !reflect.DeepEqual(n.VeteranTypes, want[r.ID]) {
			t.Errorf("%s: VeteranTypes = %v, want %v", r.ID, n.VeteranTypes, want[r.ID])
		}
		if len(n.LegacyVeteranType) != 0 {
			t.Errorf("%s: legacy veteranType not cleared", r.ID)
		}
		if again := normalize.Resource(n); !reflect.DeepEqual(again, n) {
			t.Errorf("%s: normalize is not idempotent:\n%+v\n%+v", r.ID, n, again)
		}
	}
}

func TestCandidates_SendsSelection(t *testing.T) {
	var got request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resources":[{"id":"r1","title":"Vet Center"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, nil, zap.NewNop())
	sel := models.Selection{CategoryID: "mental", SymptomIDs: []string{"ptsd"}, SeverityID: "mild"}
	rs, err := c.Candidates(context.Background(), sel)
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 1 || rs[0].ID != "r1" {
		t.Errorf("resources = %+v", rs)
	}
	if got.CategoryID != "mental" || len(got.Categories) != 3 || got.SymptomIDs[0] != "ptsd" {
		t.Errorf("request = %+v", got)
	}
}

func TestCandidates_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}},
		{"html", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>maintenance</html>"))
		}},
		{"slow", func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`[]`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			c := NewClient(srv.URL, 50*time.Millisecond, nil, zap.NewNop())
			if _, err := c.Candidates(context.Background(), models.Selection{CategoryID: "life"}); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
