package model

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"

	// Spring-style prefixed spelling that some backend responses use.
	RoleAdminPrefixed = "ROLE_ADMIN"
)

// User is an operator account. Only admins can see or manage these.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	Enabled  bool   `json:"enabled"`
}

// UserProfile is the slice of account data kept in the local session:
// just enough to label the navbar and resolve the operator's role.
type UserProfile struct {
	UserID      int64  `json:"userId"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
}
