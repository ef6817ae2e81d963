package models

// BookedSession records a student booking a study session. The identity key
// is (studentEmail, sessionId): booking the same session twice updates the
// existing record instead of creating a second one.
type BookedSession struct {
	ID           string  `json:"_id,omitempty"`
	StudentEmail string  `json:"studentEmail"`
	SessionID    string  `json:"sessionId"`
	TutorEmail   string  `json:"tutorEmail"`
	SessionTitle string  `json:"sessionTitle"`
	Fee          float64 `json:"registrationFee,omitempty"`
	Timestamp    int64   `json:"timestamp,omitempty"`
}

// BookSessionRequest is the POST /book-session payload. Role is carried by
// the client payload; admin and tutor roles are rejected outright.
type BookSessionRequest struct {
	StudentEmail string  `json:"studentEmail" binding:"required,email"`
	SessionID    string  `json:"sessionId" binding:"required,uuid"`
	TutorEmail   string  `json:"tutorEmail" binding:"required,email"`
	SessionTitle string  `json:"sessionTitle" binding:"required,max=200"`
	Fee          float64 `json:"registrationFee"`
	Role         string  `json:"role"`
}
