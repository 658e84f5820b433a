package core

import "github.com/huangsam/solarsite/schema"

// OwnershipKey is the only criterion supplied manually rather than measured.
const OwnershipKey = "landOwnership"

// catalog is the decision matrix. It is never mutated; callers receive copies.
var catalog = [...]schema.Criterion{
	{
		Key: "slope", DisplayName: "Slope", Unit: "°", Weight: 0.20,
		Policy: schema.LinearThreshold, Best: 5.7, Worst: 15,
		Suggestion: "Look for flatter terrain. High slopes increase construction costs and complexity.",
	},
	{
		Key: "ghi", DisplayName: "Sunlight (GHI)", Unit: " kWh/m²/day", Weight: 0.15,
		Policy: schema.LinearThreshold, Best: 5.5, Worst: 4.5, HigherIsBetter: true,
		Suggestion: "Site has lower than ideal solar irradiance. Consider areas with higher GHI for better energy yield.",
	},
	{
		Key: "temperature", DisplayName: "Avg. Temperature", Unit: " °C", Weight: 0.07,
		Policy: schema.LinearThreshold, Best: 25, Worst: 40,
		Suggestion: "High average temperatures can reduce panel efficiency. Cooler sites are preferable.",
	},
	{
		Key: "elevation", DisplayName: "Elevation", Unit: " m", Weight: 0.03,
		Policy:     schema.ElevationRange,
		Suggestion: "Site is outside the optimal elevation range (50-1500m), which can affect logistics and grid connection.",
	},
	{
		Key: "landCover", DisplayName: "Land Cover", Unit: "", Weight: 0.10,
		Policy:     schema.LandCoverCategory,
		Suggestion: "Current land cover (e.g., forest, built-up area) may require significant clearing or preparation.",
	},
	{
		Key: "proximityToLines", DisplayName: "Proximity to Grid", Unit: " km", Weight: 0.10,
		Policy: schema.LinearThreshold, Best: 2, Worst: 20,
		Suggestion: "Site is far from existing transmission lines, which will significantly increase grid connection costs.",
	},
	{
		Key: "proximityToRoads", DisplayName: "Proximity to Roads", Unit: " km", Weight: 0.05,
		Policy: schema.LinearThreshold, Best: 1, Worst: 10,
		Suggestion: "Poor road access will complicate logistics, transport, and construction.",
	},
	{
		Key: "waterAvailability", DisplayName: "Water Availability", Unit: " km", Weight: 0.05,
		Policy: schema.LinearThreshold, Best: 2, Worst: 15,
		Suggestion: "Site is far from a water source, which is needed for panel cleaning and construction.",
	},
	{
		Key: "soilStability", DisplayName: "Soil Stability (Depth)", Unit: " cm", Weight: 0.05,
		Policy: schema.LinearThreshold, Best: 100, Worst: 20, HigherIsBetter: true,
		Suggestion: "Shallow soil depth may complicate foundation work for panel mountings.",
	},
	{
		Key: "shading", DisplayName: "Shading (Hillshade)", Unit: "", Weight: 0.05,
		Policy: schema.LinearThreshold, Best: 200, Worst: 100, HigherIsBetter: true,
		Suggestion: "Terrain analysis indicates potential shading from nearby hills, which will reduce energy output.",
	},
	{
		Key: "dust", DisplayName: "Dust (Aerosol Index)", Unit: "", Weight: 0.03,
		Policy: schema.LinearThreshold, Best: 0.1, Worst: 0.5,
		Suggestion: "High dust levels will require more frequent panel cleaning, increasing maintenance costs.",
	},
	{
		Key: "windSpeed", DisplayName: "Wind Speed", Unit: " km/h", Weight: 0.02,
		Policy: schema.LinearThreshold, Best: 20, Worst: 90,
		Suggestion: "Site experiences high wind speeds, requiring more robust and expensive mounting structures.",
	},
	{
		Key: "seismicRisk", DisplayName: "Seismic Risk (PGA)", Unit: " g", Weight: 0.02,
		Policy: schema.LinearThreshold, Best: 0.1, Worst: 0.4,
		Suggestion: "High seismic risk requires specialized engineering for foundations and structures.",
	},
	{
		Key: "floodRisk", DisplayName: "Flood Risk", Unit: " ha", Weight: 0.02,
		Policy: schema.LinearThreshold, Best: 0, Worst: 5,
		Suggestion: "A portion of the site is in a flood-prone area, posing a risk to equipment.",
	},
	{
		Key: OwnershipKey, DisplayName: "Land Ownership", Unit: "", Weight: 0.06,
		Policy:     schema.ManualOwnership,
		Suggestion: "Private land ownership can lead to longer acquisition times and higher costs compared to government land.",
	},
}

// Catalog returns a copy of the criteria in catalog order.
func Catalog() []schema.Criterion {
	out := make([]schema.Criterion, len(catalog))
	copy(out, catalog[:])
	return out
}

// LookupCriterion finds a criterion by key.
func LookupCriterion(key string) (schema.Criterion, bool) {
	for _, c := range catalog {
		if c.Key == key {
			return c, true
		}
	}
	return schema.Criterion{}, false
}

// MetricKeys returns the keys of every measured criterion, in catalog order.
func MetricKeys() []string {
	keys := make([]string, 0, len(catalog))
	for _, c := range catalog {
		if c.Policy != schema.ManualOwnership {
			keys = append(keys, c.Key)
		}
	}
	return keys
}
