package engine

import (
	"github.com/kailas-cloud/roster/internal/domain/review"
	"github.com/kailas-cloud/roster/internal/domain/search/facet"
	"github.com/kailas-cloud/roster/internal/domain/search/filter"
	"github.com/kailas-cloud/roster/internal/domain/search/order"
	"github.com/kailas-cloud/roster/internal/domain/search/result"
)

type rev = review.Review

// DefaultReviewSort shows the nearest due dates first.
var DefaultReviewSort = order.Descriptor{Field: "dueDate", Direction: order.Asc}

// ReviewFields is the closed set of sortable review fields.
var ReviewFields = NewFields(DefaultReviewSort, map[string]Comparator[rev]{
	"employeeName": func(a, b *rev) int { return compareFold(a.EmployeeName, b.EmployeeName) },
	"reviewerName": func(a, b *rev) int { return compareFold(a.ReviewerName, b.ReviewerName) },
	"period":       func(a, b *rev) int { return compareFold(a.Period, b.Period) },
	"type":         func(a, b *rev) int { return compareFold(string(a.Type), string(b.Type)) },
	"status":       func(a, b *rev) int { return compareFold(string(a.Status), string(b.Status)) },
	"dueDate":      func(a, b *rev) int { return compareDate(a.DueDate, b.DueDate) },
	"score":        func(a, b *rev) int { return compareNumber(a.WeightedScore(), b.WeightedScore()) },
})

// FilterReviews runs the review pipeline and a stable sort.
func FilterReviews(
	records []review.Review, f filter.Review, sort order.Descriptor,
) (result.Result[review.Review], error) {
	if err := f.Validate(); err != nil {
		return result.Result[review.Review]{}, err
	}
	sort, err := sort.Normalize()
	if err != nil {
		return result.Result[review.Review]{}, err
	}
	return Run(records, ReviewStages(f), ReviewFields, sort), nil
}

// ReviewStages builds the active predicate stages for f, in pipeline order.
func ReviewStages(f filter.Review) []Stage[rev] {
	var stages []Stage[rev]

	if term := filter.Term(f.Search); term != "" {
		stages = append(stages, Stage[rev]{Name: "search", Keep: func(r *rev) bool {
			return containsAny(term, r.EmployeeName, r.ReviewerName, r.Period, string(r.Type), r.ID)
		}})
	}

	stages = setStage(stages, "status", f.Status, func(r *rev) string { return string(r.Status) })
	stages = setStage(stages, "type", f.Type, func(r *rev) string { return string(r.Type) })
	stages = setStage(stages, "period", f.Period, func(r *rev) string { return r.Period })

	if !f.DueDateRange.IsEmpty() {
		dr := f.DueDateRange
		stages = append(stages, Stage[rev]{Name: "dueDate", Keep: func(r *rev) bool {
			return dr.Contains(r.DueDate)
		}})
	}
	if !f.ScoreRange.IsEmpty() {
		sr := f.ScoreRange
		stages = append(stages, Stage[rev]{Name: "score", Keep: func(r *rev) bool {
			return sr.Contains(r.WeightedScore())
		}})
	}

	stages = exactStage(stages, "employee", f.EmployeeID, func(r *rev) string { return r.EmployeeID })
	return exactStage(stages, "reviewer", f.ReviewerID, func(r *rev) string { return r.ReviewerID })
}

// ComputeReviewStatistics summarizes the full review set. Only reviews with
// weighted criteria contribute to the score range.
func ComputeReviewStatistics(records []review.Review) facet.ReviewStatistics {
	statuses := facet.NewCounter()
	types := facet.NewCounter()
	var score facet.Accumulator
	completed := 0

	for i := range records {
		r := &records[i]
		statuses.Add(string(r.Status))
		types.Add(string(r.Type))
		if hasWeights(r) {
			score.Add(r.WeightedScore())
		}
		if r.Status == review.StatusCompleted {
			completed++
		}
	}

	return facet.ReviewStatistics{
		TotalReviews:    len(records),
		FilteredReviews: len(records),
		Statuses:        statuses.Buckets(),
		Types:           types.Buckets(),
		Score:           score.Range(),
		CompletionRate:  facet.Percent(float64(completed), float64(len(records))),
	}
}

func hasWeights(r *rev) bool {
	for _, c := range r.Criteria {
		if c.Weight > 0 {
			return true
		}
	}
	return false
}
