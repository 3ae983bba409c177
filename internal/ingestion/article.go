package ingestion

import (
	"time"

	"github.com/platformbuilds/newsvalidator-core/internal/models"
)

// RawArticle mirrors the full external payload produced by the upstream
// cleaning pipeline (spec.md §6). It carries more fields than models.Article
// needs; ToArticle projects it down to the shape the validation pipeline
// actually consumes.
type RawArticle struct {
	ArticleID string `bson:"article_id"`
	SourceName string `bson:"source_name"`
	SourceURL  string `bson:"source_url"`

	Content struct {
		TitleOriginal    string `bson:"title_original"`
		TitleTranslated  string `bson:"title_translated"`
		BodyOriginal     string `bson:"body_original"`
		BodyTranslated   string `bson:"body_translated"`
		LanguageDetected string `bson:"language_detected"`
	} `bson:"content"`

	Extraction struct {
		PublishTimestamp time.Time `bson:"publish_timestamp"`
		Categories       []string  `bson:"categories"`
		Entities         []string  `bson:"entities"`
	} `bson:"extraction"`

	Quality struct {
		CredibilityScore float64 `bson:"credibility_score"`
		WordCount        int     `bson:"word_count"`
		IsClean          bool    `bson:"is_clean"`
	} `bson:"quality"`

	ProcessingPipeline struct {
		StagesCompleted []string `bson:"stages_completed"`
	} `bson:"processing_pipeline"`

	Processed   bool      `bson:"processed"`
	ProcessedAt time.Time `bson:"processed_at,omitempty"`
}

// ToArticle projects a RawArticle down to the compact shape the validation
// pipeline consumes, preferring the translated text when present.
func (r RawArticle) ToArticle() models.Article {
	title := r.Content.TitleTranslated
	if title == "" {
		title = r.Content.TitleOriginal
	}
	body := r.Content.BodyTranslated
	if body == "" {
		body = r.Content.BodyOriginal
	}
	return models.Article{
		ID:          r.ArticleID,
		Source:      models.NormalizeSourceID(r.SourceName),
		Title:       title,
		Body:        body,
		PublishedAt: r.Extraction.PublishTimestamp,
		Language:    r.Content.LanguageDetected,
	}
}
