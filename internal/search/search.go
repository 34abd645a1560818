// Package search maintains a full-text index over published ideas so the
// marketplace can be filtered by query.
package search

import (
	"fmt"
	"log"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/apocrypha/forge/internal/models"
)

type Index struct {
	index bleve.Index
}

// Open opens or creates the idea index at path. A corrupt index is
// deleted and rebuilt empty; submitted ideas are re-indexed on their next
// submission, not retroactively.
func Open(path string) (*Index, error) {
	index, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		index, err = bleve.New(path, buildMapping())
		if err != nil {
			return nil, fmt.Errorf("creating idea index: %w", err)
		}
	} else if err != nil {
		log.Printf("idea index appears corrupted (%v), recreating", err)
		if index != nil {
			index.Close()
		}
		if err := os.RemoveAll(path); err != nil {
			return nil, fmt.Errorf("removing corrupted index: %w", err)
		}
		index, err = bleve.New(path, buildMapping())
		if err != nil {
			return nil, fmt.Errorf("recreating idea index: %w", err)
		}
	}
	return &Index{index: index}, nil
}

func buildMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	ideaMapping := bleve.NewDocumentMapping()

	titleField := bleve.NewTextFieldMapping()
	titleField.Analyzer = standard.Name
	titleField.Store = false
	ideaMapping.AddFieldMappingsAt("title", titleField)

	descriptionField := bleve.NewTextFieldMapping()
	descriptionField.Analyzer = standard.Name
	descriptionField.Store = false
	ideaMapping.AddFieldMappingsAt("description", descriptionField)

	indexMapping.DefaultMapping = ideaMapping
	return indexMapping
}

// IndexIdea adds or replaces one idea in the index.
func (i *Index) IndexIdea(idea *models.Idea) error {
	doc := map[string]any{
		"title":       idea.Title,
		"description": idea.Description,
	}
	return i.index.Index(idea.ID, doc)
}

// Search returns the IDs of ideas matching the query, best first.
func (i *Index) Search(query string, k int) ([]string, error) {
	req := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	req.Size = k

	result, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("searching ideas: %w", err)
	}

	ids := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

func (i *Index) Close() error {
	return i.index.Close()
}
