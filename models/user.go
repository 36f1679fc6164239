package models

// Role is the authorization role attached to an identity.
type Role string

const (
	RoleUser   Role = "user"
	RoleWinery Role = "winery"
	RoleAdmin  Role = "admin"
)

// User is the subset of an account this service reads.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	FCMToken string `json:"-"`
}

// Caller is the authenticated identity of a request.
type Caller struct {
	UserID string
	Role   Role
}
