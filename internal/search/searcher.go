// Package search provides full-text lookup over analysis results: every
// captured symbol (function, class, component, export) becomes a searchable
// document keyed by its file.
package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/sightline-dev/sightline/internal/ir"
)

const defaultLimit = 15

// Result is one symbol hit.
type Result struct {
	Name  string  `json:"name"`
	Kind  string  `json:"kind"`
	Path  string  `json:"path"`
	Line  int     `json:"line"`
	Score float64 `json:"score"`
}

// Options narrows a search.
type Options struct {
	// Kind restricts hits to one symbol kind (function, class, component,
	// export, file).
	Kind string
	// PathPattern is a wildcard pattern matched against file paths.
	PathPattern string
	Limit       int
}

// Searcher is an in-memory symbol index over one snapshot's records.
type Searcher struct {
	index bleve.Index
	mu    sync.RWMutex
}

// NewSearcher builds an in-memory index over the records.
func NewSearcher(ctx context.Context, records []ir.FileRecord) (*Searcher, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index: %w", err)
	}

	if err := indexRecords(ctx, index, records); err != nil {
		index.Close()
		return nil, fmt.Errorf("failed to index records: %w", err)
	}

	return &Searcher{index: index}, nil
}

// Close releases the index.
func (s *Searcher) Close() error {
	return s.index.Close()
}

// buildIndexMapping maps symbol documents: name is the analyzed search
// target, kind and path are keyword fields for exact filtering.
func buildIndexMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()

	nameMapping := bleve.NewTextFieldMapping()
	nameMapping.Analyzer = "standard"
	nameMapping.Store = true
	nameMapping.Index = true

	kindMapping := bleve.NewTextFieldMapping()
	kindMapping.Analyzer = "keyword"
	kindMapping.Store = true
	kindMapping.Index = true

	pathMapping := bleve.NewTextFieldMapping()
	pathMapping.Analyzer = "keyword"
	pathMapping.Store = true
	pathMapping.Index = true

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("name", nameMapping)
	docMapping.AddFieldMappingsAt("kind", kindMapping)
	docMapping.AddFieldMappingsAt("path", pathMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

type symbolDoc struct {
	Name string  `json:"name"`
	Kind string  `json:"kind"`
	Path string  `json:"path"`
	Line float64 `json:"line"`
}

// indexRecords batch-indexes every symbol from every record.
func indexRecords(ctx context.Context, index bleve.Index, records []ir.FileRecord) error {
	const batchSize = 1000

	batch := index.NewBatch()
	add := func(id string, doc symbolDoc) error {
		if err := batch.Index(id, doc); err != nil {
			return fmt.Errorf("failed to add %s to batch: %w", id, err)
		}
		if batch.Size() >= batchSize {
			if err := index.Batch(batch); err != nil {
				return fmt.Errorf("failed to execute batch: %w", err)
			}
			batch = index.NewBatch()
		}
		return nil
	}

	for i := range records {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rec := &records[i]
		if err := add(rec.Path, symbolDoc{Name: rec.Path, Kind: "file", Path: rec.Path}); err != nil {
			return err
		}
		for _, fn := range rec.Functions {
			if fn.Name == "" {
				continue
			}
			id := fmt.Sprintf("%s#function#%s#%d", rec.Path, fn.Name, fn.Line)
			if err := add(id, symbolDoc{Name: fn.Name, Kind: "function", Path: rec.Path, Line: float64(fn.Line)}); err != nil {
				return err
			}
		}
		for _, cls := range rec.Classes {
			id := fmt.Sprintf("%s#class#%s#%d", rec.Path, cls.Name, cls.Line)
			if err := add(id, symbolDoc{Name: cls.Name, Kind: "class", Path: rec.Path, Line: float64(cls.Line)}); err != nil {
				return err
			}
		}
		for _, comp := range rec.Components {
			id := fmt.Sprintf("%s#component#%s#%d", rec.Path, comp.Name, comp.Line)
			if err := add(id, symbolDoc{Name: comp.Name, Kind: "component", Path: rec.Path, Line: float64(comp.Line)}); err != nil {
				return err
			}
		}
		for _, exp := range rec.Exports {
			id := fmt.Sprintf("%s#export#%s#%d", rec.Path, exp.Name, exp.Line)
			if err := add(id, symbolDoc{Name: exp.Name, Kind: "export", Path: rec.Path, Line: float64(exp.Line)}); err != nil {
				return err
			}
		}
	}

	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			return fmt.Errorf("failed to execute final batch: %w", err)
		}
	}
	return nil
}

// Search runs a query-string search over symbol names, optionally filtered
// by kind and path pattern.
func (s *Searcher) Search(ctx context.Context, queryStr string, opts *Options) ([]Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	limit := opts.Limit
	if limit <= 0 || limit > 100 {
		limit = defaultLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var queries []query.Query
	queries = append(queries, bleve.NewQueryStringQuery(queryStr))

	if opts.Kind != "" {
		kindQuery := bleve.NewTermQuery(opts.Kind)
		kindQuery.SetField("kind")
		queries = append(queries, kindQuery)
	}
	if opts.PathPattern != "" {
		pathQuery := bleve.NewWildcardQuery(opts.PathPattern)
		pathQuery.SetField("path")
		queries = append(queries, pathQuery)
	}

	var finalQuery query.Query
	if len(queries) == 1 {
		finalQuery = queries[0]
	} else {
		finalQuery = bleve.NewConjunctionQuery(queries...)
	}

	request := bleve.NewSearchRequestOptions(finalQuery, limit, 0, false)
	request.Fields = []string{"name", "kind", "path", "line"}

	searchResult, err := s.index.SearchInContext(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]Result, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		result := Result{Score: hit.Score}
		if name, ok := hit.Fields["name"].(string); ok {
			result.Name = name
		}
		if kind, ok := hit.Fields["kind"].(string); ok {
			result.Kind = kind
		}
		if path, ok := hit.Fields["path"].(string); ok {
			result.Path = path
		}
		if line, ok := hit.Fields["line"].(float64); ok {
			result.Line = int(line)
		}
		results = append(results, result)
	}
	return results, nil
}
