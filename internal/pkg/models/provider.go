package models

import "github.com/google/uuid"

// ServiceOffering is one priced service a provider performs
type ServiceOffering struct {
	ProviderID       uuid.UUID       `json:"-" db:"provider_id"`
	Name             string          `json:"name" db:"name"`
	Category         ServiceCategory `json:"category" db:"category"`
	BaseFee          float64         `json:"base_fee" db:"base_fee"`
	PerKmFee         float64         `json:"per_km_fee" db:"per_km_fee"`
	FuelRatePerLitre float64         `json:"fuel_rate_per_litre,omitempty" db:"fuel_rate_per_litre"`
}

// Provider is a vendor that accepts and fulfils requests
type Provider struct {
	ID          uuid.UUID         `json:"id" db:"id"`
	Name        string            `json:"name" db:"name"`
	Phone       string            `json:"phone,omitempty" db:"phone"`
	Category    ServiceCategory   `json:"category" db:"category"`
	Online      bool              `json:"online" db:"online"`
	Rating      float64           `json:"rating" db:"rating"`
	RatingCount int               `json:"rating_count" db:"rating_count"`
	Location    *Location         `json:"location,omitempty" db:"-"`
	Offerings   []ServiceOffering `json:"offerings" db:"-"`
}

// Offering returns the offering called name
func (p *Provider) Offering(name string) (ServiceOffering, bool) {
	for _, o := range p.Offerings {
		if o.Name == name {
			return o, true
		}
	}
	return ServiceOffering{}, false
}

// OffersAll reports whether every name is offered
func (p *Provider) OffersAll(names []string) bool {
	for _, n := range names {
		if _, ok := p.Offering(n); !ok {
			return false
		}
	}
	return true
}

// SearchQuery asks the matcher for providers around an origin
type SearchQuery struct {
	Origin   Location        `json:"origin"`
	Category ServiceCategory `json:"category"`
	Services []string        `json:"services"`
}

// ServiceQuote is the per service part of an estimate
type ServiceQuote struct {
	Name    string  `json:"name"`
	BaseFee float64 `json:"base_fee"`
}

// ProviderSummary is the public part of a provider shown in search results
type ProviderSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Rating      float64   `json:"rating"`
	RatingCount int       `json:"rating_count"`
	Location    *Location `json:"location,omitempty"`
}

// ProviderCandidate is a ranked search result
type ProviderCandidate struct {
	Provider         ProviderSummary `json:"provider"`
	DistanceKm       float64         `json:"distance_km"`
	Breakdown        []ServiceQuote  `json:"breakdown"`
	BaseFeeTotal     float64         `json:"base_fee_total"`
	DistanceFee      float64         `json:"distance_fee"`
	FuelRatePerLitre float64         `json:"fuel_rate_per_litre,omitempty"`
	TotalEstimate    float64         `json:"total_estimate"`
}

// ProviderStatusRequest toggles a provider online or offline
type ProviderStatusRequest struct {
	Online   bool      `json:"online"`
	Location *Location `json:"location,omitempty"`
}

// NearbyProvider is an online provider found around a point
type NearbyProvider struct {
	ID         uuid.UUID `json:"id"`
	Location   Location  `json:"location"`
	DistanceKm float64   `json:"distance_km"`
}
