package usecase

import (
	"sort"

	"doctor-directory/internal/domain/entity"
)

// FeaturedDoctorLimit caps the featured listing on the home page.
const FeaturedDoctorLimit = 6

// RankFeatured orders rating summaries by average rating descending with
// unrated doctors last, then by review count descending, then by doctor id,
// and keeps the first limit entries. The input is not modified.
func RankFeatured(summaries []entity.RatingSummary, limit int) []entity.RatingSummary {
	ranked := make([]entity.RatingSummary, len(summaries))
	copy(ranked, summaries)

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		switch {
		case a.AvgRating == nil && b.AvgRating != nil:
			return false
		case a.AvgRating != nil && b.AvgRating == nil:
			return true
		case a.AvgRating != nil && b.AvgRating != nil && *a.AvgRating != *b.AvgRating:
			return *a.AvgRating > *b.AvgRating
		}
		if a.ReviewCount != b.ReviewCount {
			return a.ReviewCount > b.ReviewCount
		}
		return a.DoctorID < b.DoctorID
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
