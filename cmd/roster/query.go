package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/roster"
	"github.com/kailas-cloud/roster/internal/domain/search/order"
	"github.com/kailas-cloud/roster/internal/repository/fixture"
)

// queryOptions are the flags of the query command.
type queryOptions struct {
	fixture string
	kind    string
	filter  string
	sort    string
	today   string
}

func newQueryCmd() *cobra.Command {
	var opts queryOptions
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a filter and sort against a fixture file and print the result",
		Example: `  roster query --fixture config/seed.yaml --filter '{"department":["Engineering"]}' --sort salary:desc
  roster query --fixture config/seed.yaml --kind review --filter '{"scoreRange":{"min":4}}'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.fixture, "fixture", "", "YAML fixture file (required)")
	cmd.Flags().StringVar(&opts.kind, "kind", "employee", "record kind: employee, document or review")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "filter descriptor as JSON")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort as field[:asc|desc]")
	cmd.Flags().StringVar(&opts.today, "today", "", "reference date for document expiry (YYYY-MM-DD, default: now)")
	_ = cmd.MarkFlagRequired("fixture")
	return cmd
}

// queryOutput mirrors the HTTP search response.
type queryOutput struct {
	Result any `json:"result"`
	Facets any `json:"facets"`
}

func runQuery(w io.Writer, opts queryOptions) error {
	set, err := fixture.Load(opts.fixture)
	if err != nil {
		return err
	}
	sort, err := parseSort(opts.sort)
	if err != nil {
		return err
	}

	var out queryOutput
	switch opts.kind {
	case "employee", "employees":
		var f roster.EmployeeFilter
		if err := decodeFilter(opts.filter, &f); err != nil {
			return err
		}
		res, err := roster.FilterEmployees(set.Employees, f, sort)
		if err != nil {
			return err
		}
		out = queryOutput{Result: res, Facets: roster.ComputeFacetStatistics(set.Employees).WithFiltered(res.FilteredCount)}
	case "document", "documents":
		var f roster.DocumentFilter
		if err := decodeFilter(opts.filter, &f); err != nil {
			return err
		}
		today, err := parseToday(opts.today)
		if err != nil {
			return err
		}
		res, err := roster.FilterDocuments(set.Documents, f, sort)
		if err != nil {
			return err
		}
		out = queryOutput{Result: res, Facets: roster.ComputeDocumentStatistics(set.Documents, today).WithFiltered(res.FilteredCount)}
	case "review", "reviews":
		var f roster.ReviewFilter
		if err := decodeFilter(opts.filter, &f); err != nil {
			return err
		}
		res, err := roster.FilterReviews(set.Reviews, f, sort)
		if err != nil {
			return err
		}
		out = queryOutput{Result: res, Facets: roster.ComputeReviewStatistics(set.Reviews).WithFiltered(res.FilteredCount)}
	default:
		return fmt.Errorf("unknown kind %q (want employee, document or review)", opts.kind)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// parseSort reads "field" or "field:direction".
func parseSort(s string) (roster.Sort, error) {
	field, dir, _ := strings.Cut(s, ":")
	return order.New(field, dir)
}

func decodeFilter(raw string, v any) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid --filter: %w", err)
	}
	return nil
}

func parseToday(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --today: %w", err)
	}
	return t, nil
}
