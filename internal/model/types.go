package model

import "time"

type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputWide  OutputFormat = "wide"
)

// Link is one anchor found in editor markup. Text falls back to URL when
// the anchor has no visible text.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

type Section struct {
	ID        int64     `json:"id"`
	Markup    string    `json:"markup"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SectionSummary struct {
	ID         int64     `json:"id"`
	Characters int       `json:"characters"`
	Links      int       `json:"links"`
	Excerpt    string    `json:"excerpt"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LinkPreview is a card shown for each anchor of a section before
// conversion.
type LinkPreview struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type SectionListOptions struct {
	Limit int
}
