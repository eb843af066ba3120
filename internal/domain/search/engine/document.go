package engine

import (
	"cloud.google.com/go/civil"

	"github.com/kailas-cloud/roster/internal/domain/hrdoc"
	"github.com/kailas-cloud/roster/internal/domain/search/facet"
	"github.com/kailas-cloud/roster/internal/domain/search/filter"
	"github.com/kailas-cloud/roster/internal/domain/search/order"
	"github.com/kailas-cloud/roster/internal/domain/search/result"
)

type doc = hrdoc.Document

// DefaultDocumentSort shows the most recent uploads first.
var DefaultDocumentSort = order.Descriptor{Field: "uploadedAt", Direction: order.Desc}

// DocumentFields is the closed set of sortable document fields.
var DocumentFields = NewFields(DefaultDocumentSort, map[string]Comparator[doc]{
	"title":      func(a, b *doc) int { return compareFold(a.Title, b.Title) },
	"category":   func(a, b *doc) int { return compareFold(a.Category, b.Category) },
	"status":     func(a, b *doc) int { return compareFold(string(a.Status), string(b.Status)) },
	"ownerName":  func(a, b *doc) int { return compareFold(a.OwnerName, b.OwnerName) },
	"uploadedAt": func(a, b *doc) int { return compareTime(a.UploadedAt, b.UploadedAt) },
	"expiresOn":  func(a, b *doc) int { return compareDate(a.ExpiresOn, b.ExpiresOn) },
	"size":       func(a, b *doc) int { return compareNumber(a.SizeBytes, b.SizeBytes) },
})

// FilterDocuments runs the document pipeline and a stable sort.
// The upload range compares the calendar date of UploadedAt in its own location.
func FilterDocuments(
	records []hrdoc.Document, f filter.Document, sort order.Descriptor,
) (result.Result[hrdoc.Document], error) {
	if err := f.Validate(); err != nil {
		return result.Result[hrdoc.Document]{}, err
	}
	sort, err := sort.Normalize()
	if err != nil {
		return result.Result[hrdoc.Document]{}, err
	}
	return Run(records, DocumentStages(f), DocumentFields, sort), nil
}

// DocumentStages builds the active predicate stages for f, in pipeline order.
func DocumentStages(f filter.Document) []Stage[doc] {
	var stages []Stage[doc]

	if term := filter.Term(f.Search); term != "" {
		stages = append(stages, Stage[doc]{Name: "search", Keep: func(d *doc) bool {
			return containsAny(term, d.Title, d.Category, d.OwnerName, d.MimeType, d.ID) ||
				containsAny(term, d.Tags...)
		}})
	}

	stages = setStage(stages, "category", f.Category, func(d *doc) string { return d.Category })
	stages = setStage(stages, "status", f.Status, func(d *doc) string { return string(d.Status) })
	stages = setStage(stages, "mimeType", f.MimeType, func(d *doc) string { return d.MimeType })

	if !f.UploadedRange.IsEmpty() {
		r := f.UploadedRange
		stages = append(stages, Stage[doc]{Name: "uploadedAt", Keep: func(d *doc) bool {
			if d.UploadedAt.IsZero() {
				return false
			}
			return r.Contains(civil.DateOf(d.UploadedAt))
		}})
	}
	if !f.SizeRange.IsEmpty() {
		r := f.SizeRange
		stages = append(stages, Stage[doc]{Name: "size", Keep: func(d *doc) bool {
			return r.Contains(float64(d.SizeBytes))
		}})
	}

	return exactStage(stages, "owner", f.OwnerID, func(d *doc) string { return d.OwnerID })
}

// ComputeDocumentStatistics summarizes the full document set. today decides expiry.
func ComputeDocumentStatistics(records []hrdoc.Document, today civil.Date) facet.DocumentStatistics {
	categories := facet.NewCounter()
	statuses := facet.NewCounter()
	var size facet.Accumulator
	expired := 0

	for i := range records {
		d := &records[i]
		categories.Add(d.Category)
		statuses.Add(string(d.Status))
		size.Add(float64(d.SizeBytes))
		if d.IsExpired(today) {
			expired++
		}
	}

	return facet.DocumentStatistics{
		TotalDocuments:    len(records),
		FilteredDocuments: len(records),
		Categories:        categories.Buckets(),
		Statuses:          statuses.Buckets(),
		SizeBytes:         size.Range(),
		Expired:           expired,
	}
}
