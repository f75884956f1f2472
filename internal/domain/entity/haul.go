package entity

import (
	"fmt"
	"strings"
)

// HaulType buckets a flight by duration
type HaulType string

const (
	HaulShort  HaulType = "short"
	HaulMedium HaulType = "medium"
	HaulLong   HaulType = "long"

	// HaulAny is only meaningful as a preference, never as a classification
	HaulAny HaulType = "any"
)

// Classification thresholds in minutes
const (
	ShortHaulMaxMinutes  = 180
	MediumHaulMaxMinutes = 360
)

// HaulTypes lists the classifiable buckets in tie-break order
var HaulTypes = []HaulType{HaulShort, HaulMedium, HaulLong}

// ClassifyHaul maps a block time to its haul bucket
func ClassifyHaul(durationMinutes int) HaulType {
	switch {
	case durationMinutes <= ShortHaulMaxMinutes:
		return HaulShort
	case durationMinutes <= MediumHaulMaxMinutes:
		return HaulMedium
	default:
		return HaulLong
	}
}

// ParseHaulType accepts short, medium, long and any (case-insensitive).
// The empty string parses to the empty HaulType.
func ParseHaulType(s string) (HaulType, error) {
	h := HaulType(strings.ToLower(strings.TrimSpace(s)))
	switch h {
	case "", HaulShort, HaulMedium, HaulLong, HaulAny:
		return h, nil
	}
	return "", fmt.Errorf("unknown haul type %q", s)
}

// HaulPreferences expresses the desired mix of haul lengths. Either set
// Preferred to a single bucket (or HaulAny), or leave it empty and weight
// the three buckets. Weights need not sum to 100.
type HaulPreferences struct {
	Short     float64  `json:"short" validate:"gte=0"`
	Medium    float64  `json:"medium" validate:"gte=0"`
	Long      float64  `json:"long" validate:"gte=0"`
	Preferred HaulType `json:"preferred,omitempty" validate:"omitempty,oneof=short medium long any"`
}

// PreferHaul builds single-bucket preferences
func PreferHaul(h HaulType) HaulPreferences {
	return HaulPreferences{Preferred: h}
}

// WeightedHaul builds weighted preferences
func WeightedHaul(short, medium, long float64) HaulPreferences {
	return HaulPreferences{Short: short, Medium: medium, Long: long}
}

// Weight returns the effective weight of a bucket
func (p HaulPreferences) Weight(h HaulType) float64 {
	switch p.Preferred {
	case HaulAny:
		return 1
	case HaulShort, HaulMedium, HaulLong:
		if h == p.Preferred {
			return 1
		}
		return 0
	}
	switch h {
	case HaulShort:
		return p.Short
	case HaulMedium:
		return p.Medium
	case HaulLong:
		return p.Long
	}
	return 0
}

// TotalWeight sums the effective weights of all buckets
func (p HaulPreferences) TotalWeight() float64 {
	var total float64
	for _, h := range HaulTypes {
		total += p.Weight(h)
	}
	return total
}

// Selectable reports whether at least one bucket can ever be picked
func (p HaulPreferences) Selectable() bool {
	return p.TotalWeight() > 0
}

// Dominant returns the single most preferred bucket. There is none for
// HaulAny or when the highest weight is shared.
func (p HaulPreferences) Dominant() (HaulType, bool) {
	if p.Preferred == HaulAny {
		return "", false
	}
	if p.Preferred != "" {
		return p.Preferred, true
	}

	var best HaulType
	bestWeight := 0.0
	shared := false
	for _, h := range HaulTypes {
		w := p.Weight(h)
		switch {
		case w > bestWeight:
			best, bestWeight, shared = h, w, false
		case w == bestWeight && w > 0:
			shared = true
		}
	}
	if bestWeight == 0 || shared {
		return "", false
	}
	return best, true
}
