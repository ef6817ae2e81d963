package models

// Study session statuses. Tutors create sessions as pending; admins approve
// or reject them.
const (
	SessionPending  = "pending"
	SessionApproved = "approved"
	SessionRejected = "rejected"
)

// StudySession is a tutoring session document. Ownership is the tutorEmail
// field; mutations always filter on (tutorEmail, id).
type StudySession struct {
	ID                string  `json:"_id,omitempty"`
	TutorEmail        string  `json:"tutorEmail"`
	TutorName         string  `json:"tutorName,omitempty"`
	Title             string  `json:"title"`
	Description       string  `json:"description,omitempty"`
	Status            string  `json:"status,omitempty"`
	RegistrationStart string  `json:"registrationStartDate,omitempty"`
	RegistrationEnd   string  `json:"registrationEndDate,omitempty"`
	ClassStart        string  `json:"classStartDate,omitempty"`
	ClassEnd          string  `json:"classEndDate,omitempty"`
	Duration          string  `json:"sessionDuration,omitempty"`
	RegistrationFee   float64 `json:"registrationFee,omitempty"`
	Image             string  `json:"image,omitempty"`
	Timestamp         int64   `json:"timestamp,omitempty"`
}

// CreateSessionRequest is the POST /create-session/:email payload.
type CreateSessionRequest struct {
	Title             string  `json:"title" binding:"required,max=200"`
	TutorName         string  `json:"tutorName"`
	Description       string  `json:"description" binding:"max=5000"`
	Status            string  `json:"status" binding:"omitempty,oneof=pending approved rejected"`
	RegistrationStart string  `json:"registrationStartDate"`
	RegistrationEnd   string  `json:"registrationEndDate"`
	ClassStart        string  `json:"classStartDate"`
	ClassEnd          string  `json:"classEndDate"`
	Duration          string  `json:"sessionDuration"`
	RegistrationFee   float64 `json:"registrationFee"`
	Image             string  `json:"image"`
}
