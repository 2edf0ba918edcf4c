package models

// UserRole is the closed set of roles understood by the role gate.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleStudent UserRole = "student"
)

// Valid reports whether the role is a member of the closed enumeration.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent:
		return true
	}
	return false
}

// User is an identity record. The password hash never serialises; the
// persisted session record contains exactly the remaining fields.
type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Role         UserRole `json:"role"`
	ProfileImage string   `json:"profileImage,omitempty"`
	PasswordHash string   `json:"-"`
}

// Sanitized returns a copy safe for persistence and API responses.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// Session holds at most one active user plus a loading flag covering
// in-flight authentication work.
type Session struct {
	User    *User `json:"user"`
	Loading bool  `json:"loading"`
}

// IsAuthenticated reports whether a user is present. Derived on every call,
// never cached independently of session state.
func (s Session) IsAuthenticated() bool {
	return s.User != nil
}

// IsAdmin reports whether the session user carries the admin role.
func (s Session) IsAdmin() bool {
	return s.User != nil && s.User.Role == RoleAdmin
}

// IsStudent reports whether the session user carries the student role.
func (s Session) IsStudent() bool {
	return s.User != nil && s.User.Role == RoleStudent
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
