package weaviate

import (
	"github.com/weaviate/weaviate/entities/models"
)

// ArticleClass defines the Weaviate class backing the external similarity
// provider (spec.md §6's optional SimilarityProvider.FindDuplicates): one
// object per ingested article, holding just enough text for a vectorized
// near-duplicate search. Weaviate owns the embedding; this service never
// computes or stores vectors itself.
func ArticleClass() *models.Class {
	return &models.Class{
		Class:       "Article",
		Description: "Ingested news article, indexed for near-duplicate and corroboration search",
		Properties: []*models.Property{
			{
				Name:        "articleId",
				DataType:    []string{"string"},
				Description: "Canonical article identifier from the ingestion source",
			},
			{
				Name:        "title",
				DataType:    []string{"text"},
				Description: "Article headline",
			},
			{
				Name:        "content",
				DataType:    []string{"text"},
				Description: "Article body used for vectorization and similarity search",
			},
			{
				Name:        "sourceId",
				DataType:    []string{"string"},
				Description: "Identifier of the source that published the article",
			},
			{
				Name:        "publishedAt",
				DataType:    []string{"date"},
				Description: "Time the article was indexed; searches do not filter on it",
			},
		},
	}
}

// GetAllClasses returns all schema class definitions this service owns.
func GetAllClasses() []*models.Class {
	return []*models.Class{
		ArticleClass(),
	}
}

// ClassToMap converts a models.Class to map[string]any for the raw HTTP API.
func ClassToMap(class *models.Class) map[string]any {
	properties := make([]map[string]any, len(class.Properties))
	for i, prop := range class.Properties {
		properties[i] = map[string]any{
			"name":        prop.Name,
			"dataType":    prop.DataType,
			"description": prop.Description,
		}
	}
	return map[string]any{
		"class":       class.Class,
		"description": class.Description,
		"properties":  properties,
	}
}

// GetAllClassMaps returns all class definitions as maps, ready for
// Transport.EnsureClasses.
func GetAllClassMaps() []map[string]any {
	classes := GetAllClasses()
	maps := make([]map[string]any, len(classes))
	for i, class := range classes {
		maps[i] = ClassToMap(class)
	}
	return maps
}
