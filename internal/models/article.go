package models

import "time"

// Article is the opaque-text unit the pipeline validates. The core never
// interprets body/title beyond regex extraction (spec.md §3).
type Article struct {
	ID          string
	Source      string // normalized source id
	Title       string
	Body        string
	PublishedAt time.Time
	Language    string
}
