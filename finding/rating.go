package finding

import (
	"fmt"
	"strings"
)

// Rating represents the severity rating Nipper assigns to a finding.
type Rating string

const (
	// RatingCritical indicates an issue requiring immediate attention.
	RatingCritical Rating = "critical"

	// RatingHigh indicates a high-impact issue.
	RatingHigh Rating = "high"

	// RatingMedium indicates a moderate issue.
	RatingMedium Rating = "medium"

	// RatingLow indicates a minor issue.
	RatingLow Rating = "low"

	// RatingInformational indicates a finding without direct security impact.
	RatingInformational Rating = "informational"
)

// ratingWeights maps ratings to numeric weights for ordering.
var ratingWeights = map[Rating]float64{
	RatingCritical:      10.0,
	RatingHigh:          7.5,
	RatingMedium:        5.0,
	RatingLow:           2.5,
	RatingInformational: 1.0,
}

// IsValid returns true if the rating is valid.
func (r Rating) IsValid() bool {
	_, ok := ratingWeights[r]
	return ok
}

// Weight returns the numeric weight of the rating, 0.0 for invalid ratings.
func (r Rating) Weight() float64 {
	return ratingWeights[r]
}

// String returns the string representation of the rating.
func (r Rating) String() string {
	return string(r)
}

// DisplayName returns the rating as Nipper prints it.
func (r Rating) DisplayName() string {
	switch r {
	case RatingCritical:
		return "Critical"
	case RatingHigh:
		return "High"
	case RatingMedium:
		return "Medium"
	case RatingLow:
		return "Low"
	case RatingInformational:
		return "Informational"
	default:
		return string(r)
	}
}

// ParseRating parses a rating case-insensitively. "Info" is accepted for
// informational.
func ParseRating(s string) (Rating, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "info" {
		return RatingInformational, nil
	}
	rating := Rating(v)
	if !rating.IsValid() {
		return "", fmt.Errorf("invalid rating: %q", s)
	}
	return rating, nil
}

// CompareRatings compares two ratings by weight.
// Returns:
//   - negative if r1 < r2
//   - zero if r1 == r2
//   - positive if r1 > r2
func CompareRatings(r1, r2 Rating) int {
	w1, w2 := r1.Weight(), r2.Weight()
	if w1 < w2 {
		return -1
	}
	if w1 > w2 {
		return 1
	}
	return 0
}

// AllRatings returns all valid ratings in order from critical to informational.
func AllRatings() []Rating {
	return []Rating{
		RatingCritical,
		RatingHigh,
		RatingMedium,
		RatingLow,
		RatingInformational,
	}
}
