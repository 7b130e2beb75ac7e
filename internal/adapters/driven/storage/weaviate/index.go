// Package weaviate provides a driven.SemanticIndex backed by a Weaviate server.
//
// Each collection maps to one Weaviate class with vectorizer "none": vectors
// come from the configured EmbeddingService. Entry ids are mapped to
// deterministic UUIDs so re-adding an id replaces the object.
package weaviate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/custodia-labs/cyberx-cli/internal/core/domain"
	"github.com/custodia-labs/cyberx-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.SemanticIndex = (*Index)(nil)

// Object properties.
const (
	propContent = "content"
	propEntryID = "entry_id"
)

// idNamespace scopes the deterministic object UUIDs.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://cyberx.local/index"))

// Index talks to one Weaviate server.
type Index struct {
	client *weaviate.Client
}

// New creates a client for the server at rawURL (e.g. http://localhost:8080).
// No request is made until a collection is opened.
func New(rawURL string) (*Index, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("%w: weaviate url %q", domain.ErrInvalidInput, rawURL)
	}
	client, err := weaviate.NewClient(weaviate.Config{
		Host:   parsed.Host,
		Scheme: parsed.Scheme,
	})
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}
	return &Index{client: client}, nil
}

// Collection ensures the backing class exists.
func (i *Index) Collection(ctx context.Context, name string) (driven.Collection, error) {
	className, err := ClassName(name)
	if err != nil {
		return nil, err
	}

	c := &collection{client: i.client, name: name, className: className}
	if _, err := i.client.Schema().ClassGetter().WithClassName(className).Do(ctx); err != nil {
		if err := c.createClass(ctx); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Close releases resources.
func (i *Index) Close() error {
	return nil
}

// ClassName converts a collection name such as "threat_intel" into a valid
// Weaviate class name ("ThreatIntel").
func ClassName(collection string) (string, error) {
	var b strings.Builder
	upper := true
	for _, r := range collection {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if r > unicode.MaxASCII {
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	name := b.String()
	if name == "" || !unicode.IsLetter(rune(name[0])) {
		return "", fmt.Errorf("%w: collection name %q", domain.ErrInvalidInput, collection)
	}
	return name, nil
}

// ObjectID maps an entry id to its stable UUID within a collection.
func ObjectID(collection, id string) string {
	return uuid.NewSHA1(idNamespace, []byte(collection+"/"+id)).String()
}

type collection struct {
	client    *weaviate.Client
	name      string
	className string
}

func (c *collection) Name() string {
	return c.name
}

func (c *collection) createClass(ctx context.Context) error {
	class := &models.Class{
		Class:      c.className,
		Vectorizer: "none",
		Properties: []*models.Property{
			{Name: propContent, DataType: []string{"text"}},
			{Name: propEntryID, DataType: []string{"text"}},
		},
	}
	if err := c.client.Schema().ClassCreator().WithClass(class).Do(ctx); err != nil {
		return fmt.Errorf("create class %s: %w", c.className, err)
	}
	return nil
}

// Clear drops the class with all its objects and creates it again empty.
func (c *collection) Clear(ctx context.Context) error {
	if err := c.client.Schema().ClassDeleter().WithClassName(c.className).Do(ctx); err != nil {
		return fmt.Errorf("delete class %s: %w", c.className, err)
	}
	return c.createClass(ctx)
}

// Add creates the object, replacing it when the id already exists.
func (c *collection) Add(ctx context.Context, id, text string, embedding []float32) error {
	objectID := ObjectID(c.name, id)
	props := map[string]interface{}{
		propContent: text,
		propEntryID: id,
	}

	_, createErr := c.client.Data().Creator().
		WithClassName(c.className).
		WithID(objectID).
		WithProperties(props).
		WithVector(embedding).
		Do(ctx)
	if createErr == nil {
		return nil
	}

	err := c.client.Data().Updater().
		WithClassName(c.className).
		WithID(objectID).
		WithProperties(props).
		WithVector(embedding).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("store entry %s: %w", id, createErr)
	}
	return nil
}

func (c *collection) Query(ctx context.Context, embedding []float32, k int) ([]driven.IndexHit, error) {
	if k <= 0 {
		return []driven.IndexHit{}, nil
	}

	nearVector := c.client.GraphQL().NearVectorArgBuilder().WithVector(embedding)
	result, err := c.client.GraphQL().Get().
		WithClassName(c.className).
		WithFields(
			graphql.Field{Name: propContent},
			graphql.Field{Name: propEntryID},
			graphql.Field{Name: "_additional", Fields: []graphql.Field{{Name: "certainty"}}},
		).
		WithNearVector(nearVector).
		WithLimit(k).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("weaviate search failed: %w", err)
	}
	return parseHits(result, c.className)
}

func (c *collection) Count(ctx context.Context) (int, error) {
	result, err := c.client.GraphQL().Aggregate().
		WithClassName(c.className).
		WithFields(graphql.Field{
			Name:   "meta",
			Fields: []graphql.Field{{Name: "count"}},
		}).
		Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("weaviate aggregate failed: %w", err)
	}
	return parseCount(result, c.className)
}

type getHit struct {
	Content    string `json:"content"`
	EntryID    string `json:"entry_id"`
	Additional struct {
		Certainty float64 `json:"certainty"`
	} `json:"_additional"`
}

type aggregateMeta struct {
	Meta struct {
		Count int `json:"count"`
	} `json:"meta"`
}

// parseHits reads Get.<Class> from a GraphQL response. Weaviate reports
// certainty as (1 + cosine) / 2; it is converted back to cosine similarity.
func parseHits(resp *models.GraphQLResponse, className string) ([]driven.IndexHit, error) {
	var parsed struct {
		Get map[string][]getHit `json:"Get"`
	}
	if err := decodeResponse(resp, &parsed); err != nil {
		return nil, err
	}

	rows := parsed.Get[className]
	hits := make([]driven.IndexHit, 0, len(rows))
	for _, row := range rows {
		hits = append(hits, driven.IndexHit{
			ID:         row.EntryID,
			Text:       row.Content,
			Similarity: 2*row.Additional.Certainty - 1,
		})
	}
	return hits, nil
}

func parseCount(resp *models.GraphQLResponse, className string) (int, error) {
	var parsed struct {
		Aggregate map[string][]aggregateMeta `json:"Aggregate"`
	}
	if err := decodeResponse(resp, &parsed); err != nil {
		return 0, err
	}
	rows := parsed.Aggregate[className]
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Meta.Count, nil
}

func decodeResponse(resp *models.GraphQLResponse, target any) error {
	if resp == nil {
		return fmt.Errorf("nil GraphQL response")
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			if e != nil {
				msgs = append(msgs, e.Message)
			}
		}
		return fmt.Errorf("graphql: %s", strings.Join(msgs, "; "))
	}
	data, err := json.Marshal(resp.Data)
	if err != nil {
		return fmt.Errorf("marshal GraphQL data: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode GraphQL data: %w", err)
	}
	return nil
}
