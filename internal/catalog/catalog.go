package catalog

import "github.com/holycityautospa/booking-hub/internal/schema"

// DefaultDuration sizes a slot when no catalog entry applies.
const DefaultDuration schema.Hours = 2

// SizeClasses is the number of vehicle size buckets (0 = compact, 4 = XL).
const SizeClasses = 5

// Entry holds the durations for one service. BySize is indexed by vehicle
// size class and must be non-decreasing; Flat applies to every size class
// when BySize is empty.
type Entry struct {
	Service string
	BySize  []schema.Hours
	Flat    schema.Hours
}

type Table struct {
	entries map[string]Entry
}

// New returns the static service catalog. Loaded once at startup, never
// mutated afterwards.
func New() *Table {
	entries := []Entry{
		{Service: "mini-detail", BySize: []schema.Hours{1.5, 2, 2, 2.5, 3}},
		{Service: "interior-detail", BySize: []schema.Hours{2, 2.5, 3, 3.5, 4}},
		{Service: "exterior-detail", BySize: []schema.Hours{2, 2, 2.5, 3, 3.5}},
		{Service: "full-detail", BySize: []schema.Hours{3, 3.5, 4, 4.5, 5}},
		{Service: "rejuvenation", BySize: []schema.Hours{4.5, 5, 5.5, 6, 6.5}},
		{Service: "paint-correction", BySize: []schema.Hours{5, 6, 7, 7.5, 8}},

		// Three business days of elapsed shop time. The slot model books a
		// single contiguous window, so this stays a flat 24h block until
		// multi-day scheduling is decided on the product side.
		{Service: "ceramic-coating", Flat: 24},
	}

	table := &Table{entries: make(map[string]Entry, len(entries))}
	for _, entry := range entries {
		table.entries[entry.Service] = entry
	}

	return table
}

// Lookup resolves the duration for a service and vehicle size class.
// Unknown services and out-of-range size classes get DefaultDuration;
// lookups are best-effort and never fail.
func (t *Table) Lookup(service string, sizeClass int) schema.Hours {
	entry, ok := t.entries[service]
	if !ok {
		return DefaultDuration
	}

	if entry.Flat > 0 {
		return entry.Flat
	}

	if sizeClass < 0 || sizeClass >= len(entry.BySize) {
		return DefaultDuration
	}

	return entry.BySize[sizeClass]
}

// Entries exposes the catalog for data-invariant tests.
func (t *Table) Entries() []Entry {
	all := make([]Entry, 0, len(t.entries))
	for _, entry := range t.entries {
		all = append(all, entry)
	}

	return all
}
