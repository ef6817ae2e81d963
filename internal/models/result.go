package models

// WriteResult is the single response envelope for every mutation, replacing
// the raw store result objects the first version of this API leaked to
// clients.
type WriteResult struct {
	Ok       bool   `json:"ok"`
	ID       string `json:"id,omitempty"`
	Matched  int64  `json:"matched"`
	Modified int64  `json:"modified"`
}

// Inserted builds a WriteResult for a fresh insert.
func Inserted(id string) *WriteResult {
	return &WriteResult{Ok: true, ID: id, Matched: 0, Modified: 1}
}

// Updated builds a WriteResult for an update of an existing document.
func Updated(id string, modified int64) *WriteResult {
	return &WriteResult{Ok: true, ID: id, Matched: 1, Modified: modified}
}
