// internal/app/system/csvutil/resources.go
package csvutil

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dalemusser/vethub/internal/domain/models"
)

// ErrNoHeader is returned when the first row does not name an id and a
// title column.
var ErrNoHeader = errors.New("csv header must include id and title columns")

// ParseOptions controls ParseResourceCSV.
type ParseOptions struct {
	MaxRows int
}

// DefaultParseOptions returns the standard limits.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{MaxRows: MaxRows}
}

// RowError describes one rejected row. Line is 1-based and counts the header.
type RowError struct {
	Line   int
	ID     string
	Reason string
}

func (e RowError) String() string {
	id := e.ID
	if id == "" {
		id = "(no id)"
	}
	return fmt.Sprintf("line %d: %s: %s", e.Line, id, e.Reason)
}

// ParseResult holds the parsed rows and the rows that were rejected.
type ParseResult struct {
	Rows   []models.Resource
	Errors []RowError
}

// HasErrors reports whether any row was rejected.
func (r *ParseResult) HasErrors() bool { return len(r.Errors) > 0 }

// column setters keyed by lower-cased header name. List cells separate
// values with ';' or '|'.
var columns = map[string]func(r *models.Resource, v string) error{
	"id":          func(r *models.Resource, v string) error { r.ID = v; return nil },
	"title":       func(r *models.Resource, v string) error { r.Title = v; return nil },
	"description": func(r *models.Resource, v string) error { r.Description = v; return nil },
	"categories":  func(r *models.Resource, v string) error { r.Categories = splitCell(v); return nil },
	"category":    func(r *models.Resource, v string) error { r.LegacyCategory = v; return nil },
	"tags":        func(r *models.Resource, v string) error { r.Tags = splitCell(v); return nil },
	"rating": func(r *models.Resource, v string) error {
		if v == "" {
			return nil
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("rating %q is not a number", v)
		}
		r.Rating = n
		return nil
	},
	"review_count": func(r *models.Resource, v string) error {
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("review_count %q is not a whole number", v)
		}
		r.ReviewCount = n
		return nil
	},
	"resource_type":    func(r *models.Resource, v string) error { r.ResourceType = v; return nil },
	"organization":     func(r *models.Resource, v string) error { r.Organization = v; return nil },
	"service_branches": func(r *models.Resource, v string) error { r.ServiceBranches = splitCell(v); return nil },
	"veteran_eras":     func(r *models.Resource, v string) error { r.VeteranEras = splitCell(v); return nil },
	"veteran_types":    func(r *models.Resource, v string) error { r.VeteranTypes = splitCell(v); return nil },
	"state":            func(r *models.Resource, v string) error { r.LegacyState = v; return nil },
	"phone":            func(r *models.Resource, v string) error { r.LegacyPhone = v; return nil },
	"email":            func(r *models.Resource, v string) error { contact(r).Email = v; return nil },
	"website":          func(r *models.Resource, v string) error { contact(r).Website = v; return nil },
	"city":             func(r *models.Resource, v string) error { location(r).City = v; return nil },
	"address":          func(r *models.Resource, v string) error { location(r).Address = v; return nil },
	"zip":              func(r *models.Resource, v string) error { location(r).Zip = v; return nil },
	"is_verified":      boolColumn(func(r *models.Resource) *bool { return &r.IsVerified }),
	"is_veteran_led":   boolColumn(func(r *models.Resource) *bool { return &r.IsVeteranLed }),
	"is_featured":      boolColumn(func(r *models.Resource) *bool { return &r.IsFeatured }),
}

// ParseResourceCSV reads a resource seed in CSV form. The first row is a
// header naming the columns; unknown columns are ignored. Rows missing an
// id or title, or with unparseable numbers, are reported in Errors and left
// out of Rows. Blank rows are skipped.
func ParseResourceCSV(r io.Reader, opts ParseOptions) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return &ParseResult{}, nil
	}
	if err != nil {
		return nil, err
	}
	setters := make([]func(*models.Resource, string) error, len(header))
	var hasID, hasTitle bool
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		setters[i] = columns[name]
		hasID = hasID || name == "id"
		hasTitle = hasTitle || name == "title"
	}
	if !hasID || !hasTitle {
		return nil, ErrNoHeader
	}

	res := &ParseResult{}
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		if blank(rec) {
			continue
		}
		if opts.MaxRows > 0 && len(res.Rows)+len(res.Errors) >= opts.MaxRows {
			return nil, fmt.Errorf("too many rows (max %d)", opts.MaxRows)
		}

		var row models.Resource
		var reason string
		for i, cell := range rec {
			if i >= len(setters) || setters[i] == nil {
				continue
			}
			if err := setters[i](&row, strings.TrimSpace(cell)); err != nil && reason == "" {
				reason = err.Error()
			}
		}
		switch {
		case reason != "":
		case row.ID == "":
			reason = "missing id"
		case row.Title == "":
			reason = "missing title"
		}
		if reason != "" {
			res.Errors = append(res.Errors, RowError{Line: line, ID: row.ID, Reason: reason})
			continue
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

func splitCell(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.FieldsFunc(v, func(r rune) bool { return r == ';' || r == '|' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func boolColumn(field func(*models.Resource) *bool) func(*models.Resource, string) error {
	return func(r *models.Resource, v string) error {
		if v == "" {
			return nil
		}
		switch strings.ToLower(v) {
		case "1", "true", "yes", "y", "x":
			*field(r) = true
		case "0", "false", "no", "n":
			*field(r) = false
		default:
			return fmt.Errorf("%q is not a yes/no value", v)
		}
		return nil
	}
}

func contact(r *models.Resource) *models.Contact {
	if r.Contact == nil {
		r.Contact = &models.Contact{}
	}
	return r.Contact
}

func location(r *models.Resource) *models.Location {
	if r.Location == nil {
		r.Location = &models.Location{}
	}
	return r.Location
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
