// Package search keeps the course index in elasticsearch in step with the
// database and serves the fuzzy search endpoint.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/userwale/projetskillhub/services/instructor/internal/models"
)

const DefaultIndex = "courses"

type Index struct {
	ES   *elasticsearch.Client
	Name string
}

func NewClient(url, user, password string) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, err
	}

	res, err := client.Info()
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch: %s: %s", res.Status(), body)
	}
	return client, nil
}

func (ix *Index) enabled() bool {
	return ix != nil && ix.ES != nil
}

func (ix *Index) IndexCourse(ctx context.Context, course *models.Course) error {
	if !ix.enabled() {
		return nil
	}
	data, err := json.Marshal(course)
	if err != nil {
		return err
	}
	res, err := ix.ES.Index(
		ix.Name,
		bytes.NewReader(data),
		ix.ES.Index.WithDocumentID(course.ID),
		ix.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch index: %s", res.Status())
	}
	return nil
}

func (ix *Index) DeleteCourse(ctx context.Context, id string) error {
	if !ix.enabled() {
		return nil
	}
	res, err := ix.ES.Delete(ix.Name, id, ix.ES.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("elasticsearch delete: %s", res.Status())
	}
	return nil
}

// Search runs a fuzzy multi_match over title, description and category.
// Returns false when the index is not configured so the caller can fall back
// to the database.
func (ix *Index) Search(ctx context.Context, query string, from, size int) (int64, []models.Course, bool, error) {
	if !ix.enabled() {
		return 0, nil, false, nil
	}

	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^2", "description", "category"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, true, err
	}

	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(ctx),
		ix.ES.Search.WithIndex(ix.Name),
		ix.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, true, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, true, fmt.Errorf("elasticsearch search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Course `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, true, err
	}

	courses := make([]models.Course, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		courses[i] = hit.Source
	}
	return r.Hits.Total.Value, courses, true, nil
}
