package models

import (
	"time"
)

// DefaultCompanyLogo is stored when a company is created without a logo.
const DefaultCompanyLogo = "https://placehold.co/128x128?text=Logo"

// Company represents an employer listed on the board.
type Company struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Logo          string    `json:"logo"`
	Industry      string    `json:"industry"`
	Location      string    `json:"location"`
	OpenPositions int       `json:"openPositions"` // Denormalized, see counter package
	Rating        float64   `json:"rating"`
	Featured      bool      `json:"featured"`
	Description   string    `json:"description"`
	JobTypes      []string  `json:"jobTypes"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CompanySummary is the subset of company fields embedded into job payloads
// in place of the raw companyId.
type CompanySummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Logo        string   `json:"logo"`
	Industry    string   `json:"industry,omitempty"`
	Location    string   `json:"location,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Description string   `json:"description,omitempty"`
}

// ListSummary returns the summary used on job listings (name and logo only).
func (c Company) ListSummary() *CompanySummary {
	return &CompanySummary{ID: c.ID, Name: c.Name, Logo: c.Logo}
}

// DetailSummary returns the summary used on the single job view.
func (c Company) DetailSummary() *CompanySummary {
	rating := c.Rating
	return &CompanySummary{
		ID:          c.ID,
		Name:        c.Name,
		Logo:        c.Logo,
		Industry:    c.Industry,
		Location:    c.Location,
		Rating:      &rating,
		Description: c.Description,
	}
}

// ClampRating forces a rating into the [0, 5] range.
func ClampRating(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}
