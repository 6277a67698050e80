package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/book-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/book-hunter/internal/catalog"
	"github.com/DjordjeVuckovic/book-hunter/internal/domain"
	"github.com/DjordjeVuckovic/book-hunter/pkg/pagination"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/google/uuid"
)

const (
	// scanBatchSize is the page size of search_after scans.
	scanBatchSize = 1000
	// maxResultWindow is the default index.max_result_window. from+size must not exceed it.
	maxResultWindow = 10_000
)

// Store is the Elasticsearch catalog store. Every criterion runs in filter context, so
// ordering comes from explicit sorts only.
type Store struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewStore(client *elasticsearch.TypedClient, indexName string) (*Store, error) {
	if indexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	return &Store{
		client:    client,
		indexName: indexName,
	}, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	res, err := s.client.Get(s.indexName, id.String()).Do(ctx)
	if isNotFound(err) || (err == nil && !res.Found) {
		return nil, apperr.NewNotFound("book", id.String())
	}
	if err != nil {
		return nil, wrapErr("get book", err)
	}

	var doc BookDocument
	if err := json.Unmarshal(res.Source_, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	b, err := doc.toDomain()
	if err != nil {
		return nil, fmt.Errorf("failed to map document %s: %w", res.Id_, err)
	}
	return &b, nil
}

func (s *Store) Find(ctx context.Context, q catalog.Query) (*catalog.FindResult, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = pagination.PageMaxSize
	}

	slog.Debug("Executing es find", "index", s.indexName, "sort", q.Sort, "offset", q.Offset, "limit", limit)

	from, size := resultWindow(q.Offset, limit)
	res, err := s.client.Search().
		Index(s.indexName).
		Request(&search.Request{
			Query:          buildQuery(q.Filter),
			Sort:           sortOptions(q.Sort),
			From:           &from,
			Size:           &size,
			TrackTotalHits: true,
		}).
		Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch query failed", "error", err, "index", s.indexName)
		return nil, wrapErr("find books", err)
	}

	books, err := mapHits(res.Hits.Hits)
	if err != nil {
		return nil, fmt.Errorf("failed to map search results: %w", err)
	}

	var total int64
	if res.Hits.Total != nil {
		total = res.Hits.Total.Value
	}

	slog.Info("Es find results fetched", "total_matches", total, "returned_count", len(books))

	return &catalog.FindResult{Books: books, Total: total}, nil
}

func (s *Store) Scan(ctx context.Context, f catalog.Filter, fn func(book domain.Book) error) error {
	return s.scan(ctx, buildQuery(f), nil, func(doc BookDocument) error {
		b, err := doc.toDomain()
		if err != nil {
			return fmt.Errorf("failed to map document %s: %w", doc.ID, err)
		}
		return fn(b)
	})
}

func (s *Store) ScanCategories(ctx context.Context, fn func(categories []string) error) error {
	return s.scan(ctx, buildQuery(catalog.Filter{}), []string{fieldCategories}, func(doc BookDocument) error {
		return fn(doc.Categories)
	})
}

func (s *Store) Distinct(ctx context.Context, facet catalog.Facet) ([]string, error) {
	var field string
	switch facet {
	case catalog.FacetCategories:
		field = fieldCategories
	case catalog.FacetTags:
		field = fieldTags
	default:
		return nil, fmt.Errorf("unsupported facet %q", facet)
	}

	seen := make(map[string]struct{})
	values := make([]string, 0)
	err := s.scan(ctx, buildQuery(catalog.Filter{}), []string{field}, func(doc BookDocument) error {
		src := doc.Categories
		if facet == catalog.FacetTags {
			src = doc.Tags
		}
		for _, v := range src {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				values = append(values, v)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

// scan walks the documents matching q in id order with search_after. When fields is set
// only those source fields are decoded.
func (s *Store) scan(ctx context.Context, q *types.Query, fields []string, fn func(doc BookDocument) error) error {
	asc := sortorder.Asc
	var after []types.FieldValue

	size := scanBatchSize
	var source types.SourceConfig
	if len(fields) > 0 {
		source = &types.SourceFilter{Includes: fields}
	}

	for {
		res, err := s.client.Search().
			Index(s.indexName).
			Request(&search.Request{
				Query:       q,
				Source_:     source,
				Sort:        []types.SortCombinations{&types.SortOptions{SortOptions: map[string]types.FieldSort{fieldID: {Order: &asc}}}},
				SearchAfter: after,
				Size:        &size,
			}).
			Do(ctx)
		if err != nil {
			return wrapErr("scan books", err)
		}

		for _, hit := range res.Hits.Hits {
			var doc BookDocument
			if err := json.Unmarshal(hit.Source_, &doc); err != nil {
				return fmt.Errorf("failed to unmarshal document: %w", err)
			}
			if err := fn(doc); err != nil {
				return err
			}
		}

		if len(res.Hits.Hits) < scanBatchSize {
			return nil
		}
		after = res.Hits.Hits[len(res.Hits.Hits)-1].Sort
	}
}

func mapHits(hits []types.Hit) ([]domain.Book, error) {
	books := make([]domain.Book, 0, len(hits))
	for _, hit := range hits {
		var doc BookDocument
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}
		b, err := doc.toDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to map document: %w", err)
		}
		books = append(books, b)
	}
	return books, nil
}

var _ catalog.Store = (*Store)(nil)
