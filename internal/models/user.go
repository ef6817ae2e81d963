package models

// User roles as stored in the users collection
const (
	RoleStudent = "student"
	RoleTutor   = "tutor"
	RoleAdmin   = "admin"
)

// User statuses. "Requested" marks a pending role-change request,
// "Verified" an approved tutor.
const (
	StatusNone      = "none"
	StatusRequested = "Requested"
	StatusVerified  = "Verified"
)

// User is a user document, created on first login and upserted by email.
type User struct {
	ID        string `json:"_id,omitempty"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	PhotoURL  string `json:"photoURL,omitempty"`
	Role      string `json:"role,omitempty"`
	Status    string `json:"status,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// SaveUserRequest is the PUT /user payload. Email is the upsert key.
type SaveUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
	Role     string `json:"role" binding:"omitempty,oneof=student tutor admin"`
	Status   string `json:"status" binding:"omitempty,oneof=none Requested Verified"`
}

// UploadAvatarRequest carries a base64-encoded avatar image.
type UploadAvatarRequest struct {
	ImageData   string `json:"imageData" binding:"required"`
	FileName    string `json:"fileName" binding:"required,max=255"`
	ContentType string `json:"contentType" binding:"required"`
}
