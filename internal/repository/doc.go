// Package repository implements data access for the studyMate collections on
// PostgreSQL. Each collection is a table carrying its business-key columns
// plus a jsonb document with the remaining fields; upserts key on the
// documented business key of each entity.
package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/studymate/studymate-api/pkg/errors"
	"github.com/studymate/studymate-api/pkg/metrics"
)

// observe records duration and outcome metrics for a store operation.
func observe(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.DBOperationDuration.WithLabelValues(operation, status).Observe(metrics.MeasureDuration(start))
	metrics.DBOperationTotal.WithLabelValues(operation, status).Inc()
}

// parseID validates an opaque document id from a route parameter.
func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", apperrors.InvalidInputError("id", "must be a valid document id")
	}
	return parsed.String(), nil
}

// marshalDoc serializes a document for the jsonb column. Callers blank the
// id field first; the id lives in its own column.
func marshalDoc(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return data, nil
}
