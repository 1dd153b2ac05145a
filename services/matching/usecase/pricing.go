package usecase

import (
	"math"

	"github.com/piresc/roadassist/internal/pkg/models"
)

// PricingPolicy turns a distance and a set of offerings into a price estimate
type PricingPolicy struct {
	DefaultPerKmFee float64
	MinDistanceFee  float64
	FreeDistanceKm  float64
}

// NewPricingPolicy builds the policy from configuration
func NewPricingPolicy(cfg models.PricingConfig) PricingPolicy {
	return PricingPolicy{
		DefaultPerKmFee: cfg.DefaultPerKmFee,
		MinDistanceFee:  cfg.MinDistanceFee,
		FreeDistanceKm:  cfg.FreeDistanceKm,
	}
}

// PerKmFee is the highest per-km fee among the offerings, or the
// configured default when none of them sets one
func (p PricingPolicy) PerKmFee(offerings []models.ServiceOffering) float64 {
	var fee float64
	for _, o := range offerings {
		fee = math.Max(fee, o.PerKmFee)
	}
	if fee == 0 {
		return p.DefaultPerKmFee
	}
	return fee
}

// DistanceFee charges the billable kilometers, never less than the minimum fee
func (p PricingPolicy) DistanceFee(km float64, offerings []models.ServiceOffering) float64 {
	billable := math.Max(km-p.FreeDistanceKm, 0)
	fee := roundMoney(billable * p.PerKmFee(offerings))
	return math.Max(fee, p.MinDistanceFee)
}

// Estimate prices the requested services of one provider. Fuel itself is
// not part of the total since the quantity is only known on delivery.
func (p PricingPolicy) Estimate(provider *models.Provider, query models.SearchQuery, km float64) models.ProviderCandidate {
	offerings := make([]models.ServiceOffering, 0, len(query.Services))
	breakdown := make([]models.ServiceQuote, 0, len(query.Services))
	var baseTotal, fuelRate float64
	for _, name := range query.Services {
		o, ok := provider.Offering(name)
		if !ok {
			continue
		}
		offerings = append(offerings, o)
		breakdown = append(breakdown, models.ServiceQuote{Name: o.Name, BaseFee: o.BaseFee})
		baseTotal += o.BaseFee
		fuelRate = math.Max(fuelRate, o.FuelRatePerLitre)
	}

	candidate := models.ProviderCandidate{
		Provider: models.ProviderSummary{
			ID:          provider.ID,
			Name:        provider.Name,
			Rating:      provider.Rating,
			RatingCount: provider.RatingCount,
			Location:    provider.Location,
		},
		DistanceKm:   roundDistance(km),
		Breakdown:    breakdown,
		BaseFeeTotal: roundMoney(baseTotal),
		DistanceFee:  p.DistanceFee(km, offerings),
	}
	if query.Category == models.CategoryFuelDelivery {
		candidate.FuelRatePerLitre = fuelRate
	}
	candidate.TotalEstimate = roundMoney(candidate.BaseFeeTotal + candidate.DistanceFee)
	return candidate
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundDistance(km float64) float64 {
	return math.Round(km*1000) / 1000
}
