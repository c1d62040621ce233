package models

import "time"

// Sentinel is the placeholder value for any field that no extraction
// rule could resolve.
const Sentinel = "-"

// Record is one extracted listing entry. Every field is always present;
// fields that could not be located carry the Sentinel value.
type Record struct {
	Name         string `json:"name"`
	CurrentPrice string `json:"current_price"`
	RegularPrice string `json:"regular_price"`
	Discount     string `json:"discount"`
	ValidityDate string `json:"validity_date"`
	Source       string `json:"source"`
}

// FieldNames is the fixed column order of the tabular output.
var FieldNames = []string{"name", "current_price", "regular_price", "discount", "validity_date", "source"}

// Fields returns the record values in FieldNames order.
func (r Record) Fields() []string {
	return []string{r.Name, r.CurrentPrice, r.RegularPrice, r.Discount, r.ValidityDate, r.Source}
}

// ItemDetail is the extended record scraped from a product detail page.
type ItemDetail struct {
	Record
	Description     string `json:"description"`
	DescriptionHTML string `json:"-"`
	Ingredients     string `json:"ingredients"`
	Allergens       string `json:"allergens"`
	Manufacturer    string `json:"manufacturer"`
	Distributor     string `json:"distributor"`
	CategoryLink    string `json:"category_link"`
}

// OutcomeStatus classifies how a (category, page) visit ended.
type OutcomeStatus string

const (
	StatusSuccess   OutcomeStatus = "success"
	StatusNoRecords OutcomeStatus = "no_records"
	StatusFailed    OutcomeStatus = "failed"
)

// Outcome reports the result of one (category, page) visit.
// Outcomes are never retried after creation.
type Outcome struct {
	Category     string        `json:"category"`
	Page         int           `json:"page"`
	RecordsFound int           `json:"records_found"`
	Attempts     int           `json:"attempts"`
	Status       OutcomeStatus `json:"status"`
}

// RunStats summarizes a whole scrape run.
type RunStats struct {
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	PagesVisited int           `json:"pages_visited"`
	PagesFailed  int           `json:"pages_failed"`
	Records      int           `json:"records"`
	Retries      int           `json:"retries"`
	Duration     time.Duration `json:"duration_ms"`
}
