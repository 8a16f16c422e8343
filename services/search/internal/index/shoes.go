package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/Skotchmaster/shoe_shop/internal/models"
)

var searchFields = []string{"brand^2", "model^2", "shoeType", "description", "variants.color"}

const mapping = `{
  "mappings": {
    "properties": {
      "brand":       {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "model":       {"type": "text"},
      "shoeType":    {"type": "text"},
      "description": {"type": "text"},
      "shoeWearer":  {"type": "keyword"},
      "price":       {"type": "scaled_float", "scaling_factor": 100},
      "salesCount":  {"type": "integer"},
      "variants": {
        "properties": {
          "color":    {"type": "text"},
          "imageUrl": {"type": "keyword", "index": false}
        }
      }
    }
  }
}`

// Shoes is the shoe search index.
type Shoes struct {
	ES   *elasticsearch.Client
	Name string
}

func responseError(op string, res *esapi.Response) error {
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("elasticsearch %s: %s: %s", op, res.Status(), strings.TrimSpace(string(body)))
}

// EnsureIndex creates the index with its mapping unless it exists.
func (s *Shoes) EnsureIndex(ctx context.Context) error {
	res, err := s.ES.Indices.Exists([]string{s.Name}, s.ES.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch index exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = s.ES.Indices.Create(s.Name,
		s.ES.Indices.Create.WithBody(strings.NewReader(mapping)),
		s.ES.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("create index", res)
	}
	return nil
}

func (s *Shoes) Put(ctx context.Context, shoe *models.Shoe) error {
	body, err := json.Marshal(shoe)
	if err != nil {
		return fmt.Errorf("encode shoe: %w", err)
	}

	res, err := s.ES.Index(s.Name, bytes.NewReader(body),
		s.ES.Index.WithDocumentID(shoe.ID.String()),
		s.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index", res)
	}
	return nil
}

// Delete removes a shoe. A document that is already gone is not an error.
func (s *Shoes) Delete(ctx context.Context, id string) error {
	res, err := s.ES.Delete(s.Name, id, s.ES.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch delete: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete", res)
	}
	return nil
}

func (s *Shoes) Search(ctx context.Context, query string, from, size int) (int64, []models.Shoe, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    searchFields,
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.Name),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("elasticsearch search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, responseError("search", res)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Shoe `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("decode search response: %w", err)
	}

	shoes := make([]models.Shoe, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		shoes[i] = hit.Source
	}
	return r.Hits.Total.Value, shoes, nil
}
