package domain

import (
	"maps"
	"slices"
)

// Record is one row of a dataset: a flat mapping from field name to value.
type Record map[string]Value

// Get returns the value of field, or undefined when the record lacks it.
func (r Record) Get(field string) Value {
	return r[field]
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Dataset is an immutable ordered sequence of records. It is built once at
// startup and shared read-only by every request, so no accessor hands out the
// backing slices.
type Dataset struct {
	fields  []string
	records []Record
}

// NewDataset builds a Dataset from records. fields lists the field names in
// display order; when empty it is derived from the first record in sorted
// order. Records are cloned so later changes by the caller are not observed.
func NewDataset(fields []string, records []Record) Dataset {
	ds := Dataset{
		fields:  append([]string(nil), fields...),
		records: make([]Record, len(records)),
	}
	for i, r := range records {
		ds.records[i] = r.Clone()
	}
	if len(ds.fields) == 0 && len(records) > 0 {
		ds.fields = slices.Sorted(maps.Keys(records[0]))
	}
	return ds
}

// Len returns the number of records.
func (d Dataset) Len() int { return len(d.records) }

// Fields returns the field names in display order.
func (d Dataset) Fields() []string {
	return append([]string(nil), d.fields...)
}

// Records returns the records in dataset order. The returned slice is a copy;
// the records themselves must be treated as read-only.
func (d Dataset) Records() []Record {
	return append([]Record(nil), d.records...)
}
