// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	recordsDomain "github.com/allisson/modelgate/internal/records/domain"
)

// RecordResponse is a record's fields flattened together with id, created_at and
// updated_at.
type RecordResponse map[string]any

// MapRecordToResponse converts a domain record to an API response.
func MapRecordToResponse(record *recordsDomain.Record) RecordResponse {
	response := make(RecordResponse, len(record.Fields)+3)
	for name, value := range record.Fields {
		response[name] = value
	}
	response["id"] = record.ID.String()
	response["created_at"] = record.CreatedAt.UTC().Format(time.RFC3339Nano)
	response["updated_at"] = record.UpdatedAt.UTC().Format(time.RFC3339Nano)
	return response
}

// MapRecordsToResponse converts a slice of domain records to API responses.
func MapRecordsToResponse(records []*recordsDomain.Record) []RecordResponse {
	responses := make([]RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, MapRecordToResponse(record))
	}
	return responses
}

// DeleteResponse reports how many records were removed.
type DeleteResponse struct {
	Deleted int64 `json:"deleted"`
}
