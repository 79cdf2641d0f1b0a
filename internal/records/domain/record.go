// Package domain defines records, the resources they belong to and the field schemas
// records are validated against.
//
// A record is a flat set of named fields. Every record belongs to exactly one resource,
// and the resource's schema decides which field names exist, which are required and
// what type each value must have.
package domain

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Fields holds the decoded JSON values of a record, keyed by field name.
type Fields map[string]any

// Record is one stored instance of a resource.
type Record struct {
	ID        uuid.UUID
	Resource  string
	Fields    Fields
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Merge overwrites the stored fields with the supplied ones and returns the result.
// Fields not named in patch keep their stored value.
func (r *Record) Merge(patch Fields) Fields {
	merged := make(Fields, len(r.Fields)+len(patch))
	maps.Copy(merged, r.Fields)
	maps.Copy(merged, patch)
	return merged
}
