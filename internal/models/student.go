package models

// StudentStatus marks a roster entry as active or inactive.
type StudentStatus string

const (
	StudentActive   StudentStatus = "active"
	StudentInactive StudentStatus = "inactive"
)

// Student is a roster entry managed from the admin dashboard.
type Student struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Grade          PaperGrade    `json:"grade"`
	EnrollmentDate string        `json:"enrollmentDate"`
	ProfileImage   string        `json:"profileImage,omitempty"`
	Status         StudentStatus `json:"status"`
}

// StudentFilter narrows roster listings. Zero-valued fields are not applied.
type StudentFilter struct {
	Grade  PaperGrade `json:"grade,omitempty" form:"grade"`
	Search string     `json:"search,omitempty" form:"search"`
}
