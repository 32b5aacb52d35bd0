// Package resourcesearch turns a canonical ResourceFilter into a Mongo
// filter, sort, and page window, and applies the same semantics in memory.
package resourcesearch

import (
	"context"
	"regexp"

	"github.com/dalemusser/vethub/internal/app/system/paging"
	"github.com/dalemusser/vethub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Query is the built form of a ResourceFilter.
type Query struct {
	Filter bson.M
	Sort   bson.D
	Skip   int64
	Limit  int64
}

// FindOptions returns the sort and page window as driver options.
func (q Query) FindOptions() *options.FindOptions {
	return options.Find().SetSort(q.Sort).SetSkip(q.Skip).SetLimit(q.Limit)
}

// Build translates f into a Mongo query. An empty filter yields bson.M{},
// which matches every record.
func Build(f models.ResourceFilter) Query {
	p := paging.Page{Page: f.Page, Limit: f.Limit}
	if p.Page < 1 {
		p.Page = models.DefaultPage
	}
	if p.Limit < 1 || p.Limit > models.MaxLimit {
		p.Limit = models.DefaultLimit
	}
	return Query{
		Filter: andify(buildClauses(f)),
		Sort:   sortDoc(sortKeys(f)),
		Skip:   p.Skip(),
		Limit:  int64(p.Limit),
	}
}

func buildClauses(f models.ResourceFilter) []bson.M {
	var clauses []bson.M
	if f.SearchTerm != "" {
		re := contains(f.SearchTerm)
		clauses = append(clauses, bson.M{"$or": []bson.M{
			{"title": re},
			{"description": re},
			{"organization": re},
			{"tags": re},
		}})
	}
	if len(f.Tags) > 0 {
		var or []bson.M
		for _, t := range f.Tags {
			re := contains(t)
			or = append(or, bson.M{"tags": re}, bson.M{"title": re}, bson.M{"description": re})
		}
		clauses = append(clauses, bson.M{"$or": or})
	}
	if f.Category != "" {
		clauses = append(clauses, bson.M{"categories": exact(f.Category)})
	}
	if f.ResourceType != "" {
		re := exact(f.ResourceType)
		clauses = append(clauses, bson.M{"$or": []bson.M{
			{"resource_type": re},
			{"provider_category": re},
		}})
	}
	if f.VeteranType != "" {
		clauses = append(clauses, bson.M{"veteran_types": exact(f.VeteranType)})
	}
	if f.ServiceBranch != "" {
		clauses = append(clauses, bson.M{"service_branches": exact(f.ServiceBranch)})
	}
	if f.State != "" {
		clauses = append(clauses, bson.M{"location.state": f.State})
	}
	if f.MinRating > 0 {
		clauses = append(clauses, bson.M{"rating": bson.M{"$gte": f.MinRating}})
	}
	return clauses
}

func contains(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

func exact(s string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(s) + "$", "$options": "i"}
}

func andify(clauses []bson.M) bson.M {
	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0]
	default:
		return bson.M{"$and": clauses}
	}
}

// Source is the read contract the search runs against.
// resourcestore.Store satisfies it.
type Source interface {
	Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Resource, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
}

// Result is one page of matches.
type Result struct {
	Resources  []models.Resource `json:"resources"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
}

// Run executes f against src. Errors are returned as-is; callers on the
// read path decide how to degrade.
func Run(ctx context.Context, src Source, f models.ResourceFilter) (Result, error) {
	q := Build(f)
	total, err := src.Count(ctx, q.Filter)
	if err != nil {
		return Result{}, err
	}
	items, err := src.Find(ctx, q.Filter, q.FindOptions())
	if err != nil {
		return Result{}, err
	}
	if items == nil {
		items = []models.Resource{}
	}
	return Result{
		Resources:  items,
		Total:      total,
		Page:       int(q.Skip/q.Limit) + 1,
		TotalPages: paging.TotalPages(total, int(q.Limit)),
	}, nil
}

// RunLocal applies f to an in-memory record set with the same matching,
// ordering and paging Run gets from the store. rs must already be
// normalized; it is not modified.
func RunLocal(rs []models.Resource, f models.ResourceFilter) Result {
	q := Build(f)
	matched := Filter(rs, f)
	Sort(matched, f)

	p := paging.Page{Page: int(q.Skip/q.Limit) + 1, Limit: int(q.Limit)}
	start, end := paging.Window(len(matched), p)
	total := int64(len(matched))
	return Result{
		Resources:  matched[start:end],
		Total:      total,
		Page:       p.Page,
		TotalPages: paging.TotalPages(total, p.Limit),
	}
}
