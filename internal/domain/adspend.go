package domain

// AdSpendRecord is one day of Meta ad spend, keyed by the ad platform's record
// identifier. Upserts are idempotent on AdID.
type AdSpendRecord struct {
	AdID        string  `json:"ad_id" db:"ad_id"`
	Date        string  `json:"date" db:"date"`
	Spend       float64 `json:"spend" db:"spend"`
	Clicks      int     `json:"clicks" db:"clicks"`
	Impressions int     `json:"impressions" db:"impressions"`
}
