package models

// Note is a personal study note, owned by (studentEmail, id).
type Note struct {
	ID           string `json:"_id,omitempty"`
	StudentEmail string `json:"studentEmail"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Timestamp    int64  `json:"timestamp,omitempty"`
}

// CreateNoteRequest is the POST /create-note payload.
type CreateNoteRequest struct {
	StudentEmail string `json:"studentEmail" binding:"required,email"`
	Title        string `json:"title" binding:"required,max=200"`
	Description  string `json:"description" binding:"max=10000"`
}

// UpdateNoteRequest is the PUT /note/:email/:id payload. The owner and id
// come from the route, never the body.
type UpdateNoteRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=10000"`
}
