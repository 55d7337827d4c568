package dataset

import (
	"sort"

	"mit-dashboard/internal/models"
)

// AgeBucketOrder is the canonical magnitude ordering of the shipment-age
// buckets. Vocabulary results follow this order, never a lexicographic
// sort; values outside it are tolerated in the data but never surfaced as
// filter options.
var AgeBucketOrder = []string{
	"<5 Days",
	"5-10 Days",
	"10-20 Days",
	"20-30 Days",
	"30-60 Days",
	">60 Days",
}

// lrStatusLabels is a static enumeration, not derived from the data.
var lrStatusLabels = []string{"LR Generated", "LR Not Generated"}

// Facets lists the selectable values for each dropdown filter.
type Facets struct {
	Divisions    []string `json:"divisions"`
	AgeBuckets   []string `json:"age_buckets"`
	Transporters []string `json:"transporters"`
	LRStatuses   []string `json:"lr_statuses"`
}

// Vocabulary derives the filter facets from a snapshot. Divisions and
// transporters are deduplicated, blank-filtered, and sorted; age buckets
// keep their canonical order. An empty table yields four empty lists.
func Vocabulary(t *Table) Facets {
	f := Facets{
		Divisions:    []string{},
		AgeBuckets:   []string{},
		Transporters: []string{},
		LRStatuses:   []string{},
	}
	if t.Len() == 0 {
		return f
	}

	divisions := make(map[string]bool)
	buckets := make(map[string]bool)
	transporters := make(map[string]bool)
	for _, row := range t.rows {
		if v := row.Division.String(); v != "" {
			divisions[v] = true
		}
		if v := row.AgeBucket.String(); v != "" {
			buckets[v] = true
		}
		if v := row.TransporterName.String(); v != "" {
			transporters[v] = true
		}
	}

	f.Divisions = sortedKeys(divisions)
	f.Transporters = sortedKeys(transporters)
	for _, b := range AgeBucketOrder {
		if buckets[b] {
			f.AgeBuckets = append(f.AgeBuckets, b)
		}
	}
	f.LRStatuses = append(f.LRStatuses, lrStatusLabels...)
	return f
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Summary aggregates a result set for the dashboard's stat cards.
type Summary struct {
	TotalRecords   int           `json:"total_records"`
	LRGenerated    int           `json:"lr_generated"`
	LRNotGenerated int           `json:"lr_not_generated"`
	AgeBuckets     []BucketCount `json:"age_buckets"`
}

type BucketCount struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

// Summarize counts LR status and age-bucket membership over a result set.
// Bucket counts follow the canonical order and include only buckets seen
// in the rows.
func Summarize(rows []models.Shipment) Summary {
	s := Summary{TotalRecords: len(rows), AgeBuckets: []BucketCount{}}
	counts := make(map[string]int)
	for _, row := range rows {
		if row.LRGenerated() {
			s.LRGenerated++
		} else {
			s.LRNotGenerated++
		}
		if b := row.AgeBucket.String(); b != "" {
			counts[b]++
		}
	}
	for _, b := range AgeBucketOrder {
		if counts[b] > 0 {
			s.AgeBuckets = append(s.AgeBuckets, BucketCount{Bucket: b, Count: counts[b]})
		}
	}
	return s
}
