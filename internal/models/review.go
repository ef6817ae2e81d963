package models

// Review is a student review of a study session. Keyed by
// (sessionId, studentEmail): a second submission from the same student for
// the same session replaces the first.
type Review struct {
	ID           string `json:"_id,omitempty"`
	SessionID    string `json:"sessionId"`
	StudentEmail string `json:"studentEmail"`
	StudentName  string `json:"studentName,omitempty"`
	Rating       int    `json:"rating,omitempty"`
	Comment      string `json:"comment,omitempty"`
	Timestamp    int64  `json:"timestamp,omitempty"`
}

// SubmitReviewRequest is the POST /review payload.
type SubmitReviewRequest struct {
	SessionID    string `json:"sessionId" binding:"required,uuid"`
	StudentEmail string `json:"studentEmail" binding:"required,email"`
	StudentName  string `json:"studentName"`
	Rating       int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment      string `json:"comment" binding:"max=5000"`
}
