package geolocation

import "strings"

// Geolocation is resolved place data. Lifetime is scoped to one response.
type Geolocation struct {
	City      string  `json:"city"`
	Region    string  `json:"region,omitempty"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// DisplayName joins the present display fields. A region that merely
// repeats the country is dropped.
func (g *Geolocation) DisplayName() string {
	parts := make([]string, 0, 3)
	if g.City != "" {
		parts = append(parts, g.City)
	}
	if g.Region != "" && !strings.EqualFold(g.Region, g.Country) {
		parts = append(parts, g.Region)
	}
	if g.Country != "" {
		parts = append(parts, g.Country)
	}
	return strings.Join(parts, ", ")
}
