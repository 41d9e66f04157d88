package models

import "time"

type PromoCode struct {
	ID                 int       `json:"id"`
	Code               string    `json:"code"`
	DiscountPercentage int       `json:"discount_percentage"`
	Active             bool      `json:"active"`
	ExpiryDate         time.Time `json:"expiry_date"`
}

// ExpiredOn reports whether the code is no longer valid on the calendar day
// of t. A code stays valid through its whole expiry date.
func (p *PromoCode) ExpiredOn(t time.Time) bool {
	y, m, d := t.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	ey, em, ed := p.ExpiryDate.Date()
	expiry := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return expiry.Before(today)
}
