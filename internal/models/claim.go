package models

// ClaimKind enumerates the kinds of claims the extractor produces.
type ClaimKind string

const (
	ClaimNumeric     ClaimKind = "numeric"
	ClaimAttribution ClaimKind = "attribution"
	ClaimEvent       ClaimKind = "event"
	ClaimFactual     ClaimKind = "factual"
	ClaimStatement   ClaimKind = "statement"
	ClaimPrediction  ClaimKind = "prediction"
)

// NumericContext classifies how a numeric claim's value changed, per the
// increase/decrease verb lexicons in spec.md §4.2.
type NumericContext string

const (
	ContextIncreased NumericContext = "increased"
	ContextDecreased NumericContext = "decreased"
	ContextStated    NumericContext = "stated"
)

// ExtractedClaim is one claim the extractor found in an article.
type ExtractedClaim struct {
	ID              string
	Kind            ClaimKind
	RawText         string
	NormalizedText  string
	Fingerprint     string
	Subject         string
	Predicate       string
	Object          string
	NumericValue    *float64
	Unit            string
	Context         NumericContext
	SourceArticleID string
	SourceName      string
	Confidence      float64
	Entities        []Entity
}

// EntityKind enumerates the named-entity categories the extractor tags.
type EntityKind string

const (
	EntityPerson       EntityKind = "person"
	EntityOrganization EntityKind = "organization"
	EntityLocation     EntityKind = "location"
	EntityDate         EntityKind = "date"
	EntityMoney        EntityKind = "money"
	EntityPercentage   EntityKind = "percentage"
	EntityQuantity     EntityKind = "quantity"
)

// Entity is a named entity recognized inside a claim's source text.
type Entity struct {
	Text       string
	Kind       EntityKind
	Normalized string
	SpanStart  int
	SpanEnd    int
	Confidence float64
}
